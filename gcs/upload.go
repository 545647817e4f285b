// Package gcs provides Cloud Storage upload functionality for converted hands
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/zetsnotdead/hand-converter/artifact"
)

// Options configures the storage client
type Options struct {
	CredentialsFile string
	// Endpoint points the client at an emulator or a private endpoint
	Endpoint string
}

var _ artifact.Store = (*Client)(nil)

// Client wraps a GCS storage client
type Client struct {
	client     *storage.Client
	bucket     *storage.BucketHandle
	bucketName string
}

// NewClient creates a new GCS client for the specified bucket
func NewClient(ctx context.Context, bucketName string, opts Options) (*Client, error) {
	var clientOpts []option.ClientOption
	if opts.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint), option.WithoutAuthentication())
	}

	client, err := storage.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &Client{
		client:     client,
		bucket:     client.Bucket(bucketName),
		bucketName: bucketName,
	}, nil
}

// Close releases the underlying client
func (c *Client) Close() error {
	return c.client.Close()
}

// UploadJobArtifact uploads an artifact for a job
func (c *Client) UploadJobArtifact(ctx context.Context, jobID, filename string, data []byte) (string, error) {
	objectPath := artifact.ObjectPath(jobID, filename)
	obj := c.bucket.Object(objectPath)

	writer := obj.NewWriter(ctx)
	writer.ContentType = artifact.ContentType(filename)
	writer.Metadata = map[string]string{
		"jobId": jobID,
	}

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to write to GCS: %w", err)
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close GCS writer: %w", err)
	}

	return fmt.Sprintf("gs://%s/%s", c.bucketName, objectPath), nil
}

// GetJobArtifact downloads an artifact for a job. A missing object returns nil data and no error.
func (c *Client) GetJobArtifact(ctx context.Context, jobID, filename string) ([]byte, error) {
	obj := c.bucket.Object(artifact.ObjectPath(jobID, filename))

	reader, err := obj.NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open object: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}

	return data, nil
}
