// Package api provides HTTP client for the orchestrator API
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/zetsnotdead/hand-converter/types"
)

// Job statuses
const (
	StatusRunning   = "RUNNING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// Client wraps HTTP client for API calls
type Client struct {
	baseURL      string
	httpClient   *http.Client
	authToken    string
	workerSecret string
}

// NewClient creates a new API client. authToken and workerSecret are optional.
func NewClient(baseURL, authToken, workerSecret string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		authToken:    authToken,
		workerSecret: workerSecret,
	}
}

func (c *Client) jobURL(jobID string) string {
	return fmt.Sprintf("%s/api/jobs/%s", c.baseURL, jobID)
}

func (c *Client) do(ctx context.Context, method, url string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
	if c.workerSecret != "" {
		req.Header.Set("X-Worker-Secret", c.workerSecret)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// GetJob fetches job details from the API
func (c *Client) GetJob(ctx context.Context, jobID string) (*types.JobData, error) {
	var job types.JobData
	if err := c.do(ctx, http.MethodGet, c.jobURL(jobID), nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// PatchJobStatus updates the job status
func (c *Client) PatchJobStatus(ctx context.Context, jobID, status, errorMessage string) error {
	payload := map[string]any{
		"status": status,
	}
	if errorMessage != "" {
		payload["errorMessage"] = errorMessage
	}
	return c.do(ctx, http.MethodPatch, c.jobURL(jobID), payload, nil)
}

// PatchJobCompleted marks the job as completed and attaches the report URI
func (c *Client) PatchJobCompleted(ctx context.Context, jobID string, report *types.ConversionReport, reportURI string) error {
	payload := map[string]any{
		"status": StatusCompleted,
	}
	if report != nil {
		payload["handsConverted"] = report.TotalHands
		payload["handsUnscaled"] = report.Unscaled
	}
	if reportURI != "" {
		payload["reportUri"] = reportURI
	}
	return c.do(ctx, http.MethodPatch, c.jobURL(jobID), payload, nil)
}

// PatchJobFailed marks the job as failed
func (c *Client) PatchJobFailed(ctx context.Context, jobID, errorMessage string) error {
	return c.PatchJobStatus(ctx, jobID, StatusFailed, errorMessage)
}

// PatchJobProgress updates the job progress
func (c *Client) PatchJobProgress(ctx context.Context, jobID string, handsConverted, totalHands int) error {
	payload := map[string]any{
		"handsConverted": handsConverted,
		"totalHands":     totalHands,
	}
	return c.do(ctx, http.MethodPatch, c.jobURL(jobID), payload, nil)
}
