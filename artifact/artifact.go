// Package artifact defines how job artifacts are named and stored
package artifact

import (
	"context"
	"path"
	"strings"
)

// Store uploads and downloads job artifacts. Implemented by gcs.Client and s3store.Client.
type Store interface {
	UploadJobArtifact(ctx context.Context, jobID, filename string, data []byte) (string, error)
	GetJobArtifact(ctx context.Context, jobID, filename string) ([]byte, error)
	Close() error
}

// Well-known artifact names
const (
	ReportName   = "report.json"
	ConvertedDir = "converted"
)

// ObjectPath returns the object key of a job artifact
func ObjectPath(jobID, filename string) string {
	return path.Join("jobs", jobID, filename)
}

// ConvertedName returns the artifact name of a converted input file
func ConvertedName(file string) string {
	return path.Join(ConvertedDir, path.Base(strings.ReplaceAll(file, "\\", "/")))
}

// ContentType guesses the content type from the file name
func ContentType(filename string) string {
	switch {
	case strings.HasSuffix(filename, ".json"):
		return "application/json"
	case strings.HasSuffix(filename, ".txt"):
		return "text/plain; charset=utf-8"
	}
	return "application/octet-stream"
}
