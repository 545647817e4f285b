package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// clearEnv unsets every variable Load reads for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"JOB_ID", "LOGS_DIR", "OUTPUT_DIR", "STORAGE_BACKEND", "LOG_LEVEL",
		"GCS_BUCKET", "GOOGLE_APPLICATION_CREDENTIALS", "GCS_ENDPOINT",
		"S3_BUCKET", "AWS_REGION", "AWS_ENDPOINT", "AWS_ACCESS_KEY", "AWS_SECRET_KEY",
		"API_URL", "AUTH_TOKEN", "WORKER_SECRET", "WORKERS", "SUMMARY_POTS",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load(LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Backend != BackendGCS || cfg.Workers != 4 || cfg.LogsDir != "/app/logs" || cfg.LogLevel != "info" {
		t.Errorf("Load() defaults = %+v", cfg)
	}
	if len(cfg.Sources) != 0 {
		t.Errorf("Load() sources = %v, want none", cfg.Sources)
	}
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "handconv.yaml", `
job_id: from-yaml
workers: 8
summary_pots: true
storage_backend: gcs
gcs:
  bucket: yaml-bucket
api:
  url: http://yaml
`)
	t.Setenv("WORKERS", "6")
	t.Setenv("API_URL", "http://env")

	cfg, err := Load(LoadOptions{
		ConfigPath: path,
		Overrides:  Overrides{JobID: "from-cli", Backend: "S3"},
	})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	cases := []struct {
		key  string
		got  any
		want any
		src  ValueSource
	}{
		{"job_id", cfg.JobID, "from-cli", SourceCLI},
		{"workers", cfg.Workers, 6, SourceEnv},
		{"summary_pots", cfg.SummaryPots, true, SourceConfig},
		{"storage_backend", cfg.Backend, BackendS3, SourceCLI},
		{"gcs.bucket", cfg.GCS.Bucket, "yaml-bucket", SourceConfig},
		{"api.url", cfg.API.URL, "http://env", SourceEnv},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.key, c.got, c.want)
		}
		if cfg.Sources[c.key] != c.src {
			t.Errorf("%s source = %s, want %s", c.key, cfg.Sources[c.key], c.src)
		}
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := writeFile(t, dir, "test.env", "S3_BUCKET=dotenv-bucket\nAWS_REGION=eu-central-1\n")

	cfg, err := Load(LoadOptions{ConfigPath: writeFile(t, dir, "empty.yaml", ""), EnvFile: envFile})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.S3.Bucket != "dotenv-bucket" || cfg.S3.Region != "eu-central-1" {
		t.Errorf("Load() s3 = %+v", cfg.S3)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	if _, err := Load(LoadOptions{ConfigPath: filepath.Join(dir, "missing.yaml")}); err == nil {
		t.Error("expected error for an explicit missing config file")
	}
	bad := writeFile(t, dir, "bad.yaml", "workers: [1, 2")
	if _, err := Load(LoadOptions{ConfigPath: bad}); err == nil {
		t.Error("expected error for invalid yaml")
	}
	if _, err := Load(LoadOptions{ConfigPath: writeFile(t, dir, "ok.yaml", ""), EnvFile: filepath.Join(dir, "missing.env")}); err == nil {
		t.Error("expected error for an explicit missing env file")
	}
}

func TestValidateJob(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want error
	}{
		{"ok gcs", Config{JobID: "j", Backend: BackendGCS, GCS: GCSConfig{Bucket: "b"}}, nil},
		{"ok s3", Config{JobID: "j", Backend: BackendS3, S3: S3Config{Bucket: "b"}}, nil},
		{"no job", Config{Backend: BackendGCS, GCS: GCSConfig{Bucket: "b"}}, ErrMissingJobID},
		{"no bucket", Config{JobID: "j", Backend: BackendS3, GCS: GCSConfig{Bucket: "b"}}, ErrMissingBucket},
		{"bad backend", Config{JobID: "j", Backend: "azure"}, ErrUnknownBackend},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.cfg.ValidateJob()
			if c.want == nil && err != nil {
				t.Errorf("ValidateJob() = %v, want nil", err)
			}
			if c.want != nil && !errors.Is(err, c.want) {
				t.Errorf("ValidateJob() = %v, want %v", err, c.want)
			}
		})
	}
}
