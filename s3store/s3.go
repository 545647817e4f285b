// Package s3store stores job artifacts in an S3-compatible bucket
package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/zetsnotdead/hand-converter/artifact"
)

// Options configures the S3 client
type Options struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

var _ artifact.Store = (*Client)(nil)

// Client uploads and downloads job artifacts
type Client struct {
	s3     *s3.Client
	bucket string
}

// NewClient creates a client for bucket. Static credentials are used when
// both keys are set, otherwise the default AWS credential chain applies.
func NewClient(ctx context.Context, bucket string, opts Options) (*Client, error) {
	loadOpts := []func(*config.LoadOptions) error{}
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	if opts.Endpoint != "" {
		loadOpts = append(loadOpts, config.WithBaseEndpoint(opts.Endpoint))
	}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = opts.Endpoint != ""
	})
	return &Client{s3: client, bucket: bucket}, nil
}

// UploadJobArtifact uploads an artifact for a job and returns its URI
func (c *Client) UploadJobArtifact(ctx context.Context, jobID, filename string, data []byte) (string, error) {
	key := artifact.ObjectPath(jobID, filename)
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(artifact.ContentType(filename)),
		Metadata:    map[string]string{"jobId": jobID},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return fmt.Sprintf("s3://%s/%s", c.bucket, key), nil
}

// GetJobArtifact downloads an artifact for a job. A missing object returns nil data and no error.
func (c *Client) GetJobArtifact(ctx context.Context, jobID, filename string) ([]byte, error) {
	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(artifact.ObjectPath(jobID, filename)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get file from S3: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file contents: %w", err)
	}
	return data, nil
}

// Close is a no-op; the SDK client holds no resources that need releasing
func (c *Client) Close() error {
	return nil
}
