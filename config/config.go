// Package config resolves run settings from a YAML file, the environment and CLI flags
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	ErrMissingJobID   = errors.New("job id is required")
	ErrMissingBucket  = errors.New("bucket is required")
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// Storage backends
const (
	BackendGCS = "gcs"
	BackendS3  = "s3"
)

const DefaultConfigPath = "handconv.yaml"

type ValueSource string

const (
	SourceDefault ValueSource = "default"
	SourceConfig  ValueSource = "config"
	SourceEnv     ValueSource = "env"
	SourceCLI     ValueSource = "cli"
)

// Config holds everything the CLI needs
type Config struct {
	JobID       string
	LogsDir     string
	OutputDir   string
	Backend     string
	Workers     int
	SummaryPots bool
	Resume      bool
	LogLevel    string

	GCS GCSConfig
	S3  S3Config
	API APIConfig

	// Sources records where each non-default value came from
	Sources map[string]ValueSource
}

type GCSConfig struct {
	Bucket          string `yaml:"bucket"`
	CredentialsFile string `yaml:"credentials_file"`
	Endpoint        string `yaml:"endpoint"`
}

type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

type APIConfig struct {
	URL          string `yaml:"url"`
	AuthToken    string `yaml:"auth_token"`
	WorkerSecret string `yaml:"worker_secret"`
}

type fileConfig struct {
	JobID       string    `yaml:"job_id"`
	LogsDir     string    `yaml:"logs_dir"`
	OutputDir   string    `yaml:"output_dir"`
	Backend     string    `yaml:"storage_backend"`
	Workers     int       `yaml:"workers"`
	SummaryPots *bool     `yaml:"summary_pots"`
	LogLevel    string    `yaml:"log_level"`
	GCS         GCSConfig `yaml:"gcs"`
	S3          S3Config  `yaml:"s3"`
	API         APIConfig `yaml:"api"`
}

// Overrides are CLI flag values; zero values are ignored
type Overrides struct {
	JobID       string
	LogsDir     string
	OutputDir   string
	Backend     string
	Workers     int
	SummaryPots bool
	Resume      bool
	LogLevel    string
}

// LoadOptions controls where Load looks
type LoadOptions struct {
	ConfigPath string
	EnvFile    string
	Overrides  Overrides
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		LogsDir:  "/app/logs",
		Backend:  BackendGCS,
		Workers:  4,
		LogLevel: "info",
		Sources:  map[string]ValueSource{},
	}
}

// Load resolves the configuration: defaults, then the YAML file, then the
// environment (after loading the .env file if present), then CLI overrides.
func Load(opts LoadOptions) (Config, error) {
	cfg := Defaults()

	path := strings.TrimSpace(opts.ConfigPath)
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}
	fc, err := loadFile(path, explicit)
	if err != nil {
		return cfg, err
	}
	if fc != nil {
		cfg.applyFile(fc)
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && opts.EnvFile != "" {
		return cfg, fmt.Errorf("failed to load env file %s: %w", envFile, err)
	}
	cfg.applyEnv()
	cfg.applyOverrides(opts.Overrides)

	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	return cfg, nil
}

func loadFile(path string, required bool) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &fc, nil
}

func (c *Config) setString(key string, dst *string, v string, src ValueSource) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
		c.Sources[key] = src
	}
}

func (c *Config) applyFile(fc *fileConfig) {
	c.setString("job_id", &c.JobID, fc.JobID, SourceConfig)
	c.setString("logs_dir", &c.LogsDir, fc.LogsDir, SourceConfig)
	c.setString("output_dir", &c.OutputDir, fc.OutputDir, SourceConfig)
	c.setString("storage_backend", &c.Backend, fc.Backend, SourceConfig)
	c.setString("log_level", &c.LogLevel, fc.LogLevel, SourceConfig)
	if fc.Workers > 0 {
		c.Workers = fc.Workers
		c.Sources["workers"] = SourceConfig
	}
	if fc.SummaryPots != nil {
		c.SummaryPots = *fc.SummaryPots
		c.Sources["summary_pots"] = SourceConfig
	}

	c.setString("gcs.bucket", &c.GCS.Bucket, fc.GCS.Bucket, SourceConfig)
	c.setString("gcs.credentials_file", &c.GCS.CredentialsFile, fc.GCS.CredentialsFile, SourceConfig)
	c.setString("gcs.endpoint", &c.GCS.Endpoint, fc.GCS.Endpoint, SourceConfig)

	c.setString("s3.bucket", &c.S3.Bucket, fc.S3.Bucket, SourceConfig)
	c.setString("s3.region", &c.S3.Region, fc.S3.Region, SourceConfig)
	c.setString("s3.endpoint", &c.S3.Endpoint, fc.S3.Endpoint, SourceConfig)
	c.setString("s3.access_key", &c.S3.AccessKey, fc.S3.AccessKey, SourceConfig)
	c.setString("s3.secret_key", &c.S3.SecretKey, fc.S3.SecretKey, SourceConfig)

	c.setString("api.url", &c.API.URL, fc.API.URL, SourceConfig)
	c.setString("api.auth_token", &c.API.AuthToken, fc.API.AuthToken, SourceConfig)
	c.setString("api.worker_secret", &c.API.WorkerSecret, fc.API.WorkerSecret, SourceConfig)
}

func (c *Config) applyEnv() {
	env := func(key string, dst *string, name string) {
		c.setString(key, dst, os.Getenv(name), SourceEnv)
	}
	env("job_id", &c.JobID, "JOB_ID")
	env("logs_dir", &c.LogsDir, "LOGS_DIR")
	env("output_dir", &c.OutputDir, "OUTPUT_DIR")
	env("storage_backend", &c.Backend, "STORAGE_BACKEND")
	env("log_level", &c.LogLevel, "LOG_LEVEL")

	env("gcs.bucket", &c.GCS.Bucket, "GCS_BUCKET")
	env("gcs.credentials_file", &c.GCS.CredentialsFile, "GOOGLE_APPLICATION_CREDENTIALS")
	env("gcs.endpoint", &c.GCS.Endpoint, "GCS_ENDPOINT")

	env("s3.bucket", &c.S3.Bucket, "S3_BUCKET")
	env("s3.region", &c.S3.Region, "AWS_REGION")
	env("s3.endpoint", &c.S3.Endpoint, "AWS_ENDPOINT")
	env("s3.access_key", &c.S3.AccessKey, "AWS_ACCESS_KEY")
	env("s3.secret_key", &c.S3.SecretKey, "AWS_SECRET_KEY")

	env("api.url", &c.API.URL, "API_URL")
	env("api.auth_token", &c.API.AuthToken, "AUTH_TOKEN")
	env("api.worker_secret", &c.API.WorkerSecret, "WORKER_SECRET")

	if v, ok := os.LookupEnv("WORKERS"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			c.Workers = n
			c.Sources["workers"] = SourceEnv
		}
	}
	if v, ok := os.LookupEnv("SUMMARY_POTS"); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			c.SummaryPots = b
			c.Sources["summary_pots"] = SourceEnv
		}
	}
}

func (c *Config) applyOverrides(o Overrides) {
	c.setString("job_id", &c.JobID, o.JobID, SourceCLI)
	c.setString("logs_dir", &c.LogsDir, o.LogsDir, SourceCLI)
	c.setString("output_dir", &c.OutputDir, o.OutputDir, SourceCLI)
	c.setString("storage_backend", &c.Backend, o.Backend, SourceCLI)
	c.setString("log_level", &c.LogLevel, o.LogLevel, SourceCLI)
	if o.Workers > 0 {
		c.Workers = o.Workers
		c.Sources["workers"] = SourceCLI
	}
	if o.SummaryPots {
		c.SummaryPots = true
		c.Sources["summary_pots"] = SourceCLI
	}
	if o.Resume {
		c.Resume = true
		c.Sources["resume"] = SourceCLI
	}
}

// Bucket returns the bucket of the selected backend
func (c Config) Bucket() string {
	if c.Backend == BackendS3 {
		return c.S3.Bucket
	}
	return c.GCS.Bucket
}

// ValidateJob checks the settings required by job mode
func (c Config) ValidateJob() error {
	if c.JobID == "" {
		return ErrMissingJobID
	}
	switch c.Backend {
	case BackendGCS, BackendS3:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
	if c.Bucket() == "" {
		return fmt.Errorf("%w for backend %s", ErrMissingBucket, c.Backend)
	}
	return nil
}
