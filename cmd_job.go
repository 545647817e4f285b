package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/zetsnotdead/hand-converter/api"
	"github.com/zetsnotdead/hand-converter/artifact"
	"github.com/zetsnotdead/hand-converter/config"
	"github.com/zetsnotdead/hand-converter/converter"
	"github.com/zetsnotdead/hand-converter/gcs"
	"github.com/zetsnotdead/hand-converter/s3store"
	"github.com/zetsnotdead/hand-converter/types"
)

func newJobCmd(g *globalFlags) *cobra.Command {
	var o config.Overrides
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Convert the hand files of a job and upload them to object storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load(o)
			if err != nil {
				return err
			}
			if err := cfg.ValidateJob(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			logger := newLogger(cfg.LogLevel)

			// Optional - for status updates
			var apiClient *api.Client
			if cfg.API.URL != "" {
				apiClient = api.NewClient(cfg.API.URL, cfg.API.AuthToken, cfg.API.WorkerSecret)
			}

			store, err := openStore(ctx, cfg)
			if err != nil {
				return handleError(ctx, apiClient, cfg.JobID, logger, fmt.Errorf("failed to create storage client: %w", err))
			}
			defer store.Close()

			return runJob(ctx, cfg, store, apiClient, logger)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.JobID, "job-id", "", "job identifier (env JOB_ID)")
	f.StringVar(&o.LogsDir, "logs-dir", "", "directory holding the job's hand files (env LOGS_DIR)")
	f.StringVar(&o.Backend, "backend", "", "storage backend: gcs or s3 (env STORAGE_BACKEND)")
	f.BoolVar(&o.Resume, "resume", false, "skip files whose converted artifact already exists")
	return cmd
}

// jobFile is one input file split into hands
type jobFile struct {
	path string
	file converter.HandFile
}

// runJob converts the job's hand files and uploads the results to store.
// apiClient may be nil.
func runJob(ctx context.Context, cfg config.Config, store artifact.Store, apiClient *api.Client, logger *log.Logger) error {
	logger.Info("Starting hand conversion", "job", cfg.JobID, "logsDir", cfg.LogsDir, "backend", cfg.Backend, "bucket", cfg.Bucket())

	// The job's parallelism applies unless workers were set explicitly
	if apiClient != nil {
		if job, err := apiClient.GetJob(ctx, cfg.JobID); err != nil {
			logger.Warn("Failed to fetch job", "err", err)
		} else if job.Parallelism > 0 && cfg.Sources["workers"] == "" {
			cfg.Workers = job.Parallelism
		}
	}

	// Step 1: Read hand files
	logger.Info("Step 1: Reading hand files...")
	files, totalHands, err := readJobFiles(cfg.LogsDir, cfg.JobID, logger)
	if err != nil {
		return handleError(ctx, apiClient, cfg.JobID, logger, fmt.Errorf("failed to read hand files: %w", err))
	}
	if totalHands == 0 {
		return handleError(ctx, apiClient, cfg.JobID, logger, fmt.Errorf("no hands found in %s", cfg.LogsDir))
	}
	logger.Info("Found hands", "files", len(files), "hands", totalHands)

	if apiClient != nil {
		if err := apiClient.PatchJobStatus(ctx, cfg.JobID, api.StatusRunning, ""); err != nil {
			logger.Warn("Failed to update job status", "err", err)
		}
	}

	// Step 2: Convert and upload each file
	logger.Info("Step 2: Converting hands...")
	conv := newConverter(cfg)
	report := types.ConversionReport{JobID: cfg.JobID}
	converted := 0
	for _, f := range files {
		fileReport, err := convertJobFile(ctx, conv, cfg, store, f, logger)
		if err != nil {
			return handleError(ctx, apiClient, cfg.JobID, logger, err)
		}
		report.Add(fileReport)
		converted += fileReport.Hands

		if apiClient != nil {
			if err := apiClient.PatchJobProgress(ctx, cfg.JobID, converted, totalHands); err != nil {
				logger.Warn("Failed to update job progress", "err", err)
			}
		}
	}
	logger.Info("Converted hands", "hands", report.TotalHands, "unscaled", report.Unscaled)

	// Step 3: Upload report
	logger.Info("Step 3: Uploading report...")
	reportJSON, _ := json.MarshalIndent(report, "", "  ")
	reportURI, err := store.UploadJobArtifact(ctx, cfg.JobID, artifact.ReportName, reportJSON)
	if err != nil {
		return handleError(ctx, apiClient, cfg.JobID, logger, fmt.Errorf("failed to upload %s: %w", artifact.ReportName, err))
	}
	logger.Info("Uploaded report", "uri", reportURI)

	// Step 4: Update job status
	if apiClient != nil {
		if err := apiClient.PatchJobCompleted(ctx, cfg.JobID, &report, reportURI); err != nil {
			// Don't fail - artifacts are uploaded
			logger.Warn("Failed to update job status", "err", err)
		} else {
			logger.Info("Job status updated to COMPLETED")
		}
	}

	logger.Info("Hand conversion completed", "job", cfg.JobID)
	return nil
}

func convertJobFile(ctx context.Context, conv *converter.Converter, cfg config.Config, store artifact.Store, f jobFile, logger *log.Logger) (types.FileReport, error) {
	name := filepath.Base(f.path)
	dst := artifact.ConvertedName(f.path)

	if cfg.Resume {
		existing, err := store.GetJobArtifact(ctx, cfg.JobID, dst)
		if err != nil {
			return types.FileReport{}, fmt.Errorf("failed to check %s: %w", dst, err)
		}
		if existing != nil {
			logger.Info("Already converted, skipping", "file", name)
			return types.FileReport{Name: name, Hands: len(f.file.Hands)}, nil
		}
	}

	out, report, err := convertHands(ctx, conv, cfg.Workers, name, f.file.Hands, logger)
	if err != nil {
		return report, err
	}

	uri, err := store.UploadJobArtifact(ctx, cfg.JobID, dst, []byte(f.file.WithHands(out).String()))
	if err != nil {
		return report, fmt.Errorf("failed to upload %s: %w", name, err)
	}
	report.OutputURI = uri
	logger.Debug("Uploaded converted file", "file", name, "uri", uri)
	return report, nil
}

func openStore(ctx context.Context, cfg config.Config) (artifact.Store, error) {
	switch cfg.Backend {
	case config.BackendS3:
		return s3store.NewClient(ctx, cfg.S3.Bucket, s3store.Options{
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		})
	case config.BackendGCS:
		return gcs.NewClient(ctx, cfg.GCS.Bucket, gcs.Options{
			CredentialsFile: cfg.GCS.CredentialsFile,
			Endpoint:        cfg.GCS.Endpoint,
		})
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Backend)
}

// readJobFiles reads every hand file for the job and splits it into hands
func readJobFiles(logsDir, jobID string, logger *log.Logger) ([]jobFile, int, error) {
	// Prefer files named after the job, fall back to any .txt file
	files, err := filepath.Glob(filepath.Join(logsDir, fmt.Sprintf("*%s*.txt", jobID)))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to glob hand files: %w", err)
	}
	if len(files) == 0 {
		files, err = filepath.Glob(filepath.Join(logsDir, "*.txt"))
		if err != nil {
			return nil, 0, fmt.Errorf("failed to glob hand files: %w", err)
		}
	}

	// Sort files to ensure consistent ordering
	sort.Strings(files)

	var out []jobFile
	total := 0
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			logger.Warn("Failed to read file", "file", file, "err", err)
			continue
		}
		hf := converter.ParseHandFile(string(content))
		if len(hf.Hands) == 0 {
			continue
		}
		out = append(out, jobFile{path: file, file: hf})
		total += len(hf.Hands)
	}
	return out, total, nil
}

// handleError logs an error, marks the job failed if an API client is set
// and returns err
func handleError(ctx context.Context, apiClient *api.Client, jobID string, logger *log.Logger, err error) error {
	logger.Error("Job failed", "job", jobID, "err", err)
	if apiClient != nil {
		// The job context may already be cancelled
		if perr := apiClient.PatchJobFailed(context.WithoutCancel(ctx), jobID, err.Error()); perr != nil {
			logger.Error("Failed to update job status", "err", perr)
		}
	}
	return err
}
