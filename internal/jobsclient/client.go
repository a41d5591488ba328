// Package jobsclient talks to the job service's REST API. The scheduler
// only needs one operation from it: creating a Job from a series
// instance.
package jobsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tracklawn/scheduler/internal/models"
)

const defaultTimeout = 10 * time.Second

// Client calls the job service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a job service client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// CreateJob posts a job creation request and returns the created Job.
// Non-2xx responses are surfaced as errors carrying the job service's
// error message when it sends one.
func (c *Client) CreateJob(ctx context.Context, jobReq models.JobRequest) (*models.Job, error) {
	body, err := json.Marshal(jobReq)
	if err != nil {
		return nil, fmt.Errorf("marshal job request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/jobs", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorResp struct {
			Error string `json:"error"`
		}
		if jsonErr := json.Unmarshal(respBody, &errorResp); jsonErr == nil && errorResp.Error != "" {
			return nil, fmt.Errorf("job service error: %s", errorResp.Error)
		}
		return nil, fmt.Errorf("job service error: status %d", resp.StatusCode)
	}

	var job models.Job
	if err := json.Unmarshal(respBody, &job); err != nil {
		return nil, fmt.Errorf("parse job response: %w", err)
	}
	if job.ID == "" {
		return nil, fmt.Errorf("job service returned a job without an id")
	}

	return &job, nil
}
