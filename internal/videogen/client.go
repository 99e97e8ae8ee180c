// Package videogen is the client for the asynchronous video-generation
// backend. Submissions return an opaque operation handle immediately; the
// caller polls until the render reaches a terminal state, then materializes
// the result to a local file.
package videogen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"
)

// Sentinel errors for backend failures.
var (
	ErrUnreachable = errors.New("video backend unreachable")
	ErrTimeout     = errors.New("video backend timeout")
	ErrBackend     = errors.New("video backend error")
	ErrNoOperation = errors.New("video backend returned no operation handle")
)

// Render states reported by the backend.
const (
	StatePending   = "pending"
	StateSucceeded = "succeeded"
	StateFailed    = "failed"
)

// SubmitRequest carries the per-scene render parameters.
type SubmitRequest struct {
	Prompt          string `json:"prompt"`
	Model           string `json:"model"`
	DurationSeconds int    `json:"duration_seconds"`
	Resolution      string `json:"resolution"`
	AspectRatio     string `json:"aspect_ratio"`

	// PreviousOperationName chains this render onto an earlier one; set only
	// on extend submissions.
	PreviousOperationName string `json:"previous_operation_name,omitempty"`
}

// OperationStatus is one poll observation.
type OperationStatus struct {
	State string `json:"state"`
	Error string `json:"error,omitempty"`
}

// Client is the interface for the video-generation backend.
type Client interface {
	// SubmitNew starts a fresh text-to-video sequence.
	SubmitNew(ctx context.Context, req SubmitRequest) (string, error)
	// SubmitExtend continues the render identified by req.PreviousOperationName.
	SubmitExtend(ctx context.Context, req SubmitRequest) (string, error)
	// Poll reports the current state of an operation.
	Poll(ctx context.Context, operationName string) (OperationStatus, error)
	// MaterializeLocal asks the backend to write the finished render to disk
	// and returns the resulting file path.
	MaterializeLocal(ctx context.Context, operationName string) (string, error)
}

// HTTPClient implements Client against the backend's HTTP API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a new backend HTTP client.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) SubmitNew(ctx context.Context, req SubmitRequest) (string, error) {
	req.PreviousOperationName = ""
	return c.submit(ctx, "/text_to_video", req)
}

func (c *HTTPClient) SubmitExtend(ctx context.Context, req SubmitRequest) (string, error) {
	if req.PreviousOperationName == "" {
		return "", fmt.Errorf("%w: extend requires a previous operation", ErrBackend)
	}
	return c.submit(ctx, "/extend_video", req)
}

func (c *HTTPClient) submit(ctx context.Context, path string, req SubmitRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal submit request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", classifyError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: submit status %d", ErrBackend, resp.StatusCode)
	}

	var submitResp struct {
		OperationName string `json:"operation_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&submitResp); err != nil {
		return "", fmt.Errorf("decoding submit response: %w", err)
	}
	if submitResp.OperationName == "" {
		return "", ErrNoOperation
	}
	return submitResp.OperationName, nil
}

func (c *HTTPClient) Poll(ctx context.Context, operationName string) (OperationStatus, error) {
	u := fmt.Sprintf("%s/status/%s", c.baseURL, url.PathEscape(operationName))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return OperationStatus{}, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return OperationStatus{}, classifyError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return OperationStatus{}, fmt.Errorf("%w: status endpoint returned %d", ErrBackend, resp.StatusCode)
	}

	var status OperationStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return OperationStatus{}, fmt.Errorf("decoding status response: %w", err)
	}
	return status, nil
}

func (c *HTTPClient) MaterializeLocal(ctx context.Context, operationName string) (string, error) {
	u := fmt.Sprintf("%s/save_local/%s", c.baseURL, url.PathEscape(operationName))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", classifyError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: save_local status %d", ErrBackend, resp.StatusCode)
	}

	var saveResp struct {
		FilePath string `json:"file_path"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&saveResp); err != nil {
		return "", fmt.Errorf("decoding save_local response: %w", err)
	}
	if saveResp.FilePath == "" {
		return "", fmt.Errorf("%w: save_local returned empty file path", ErrBackend)
	}
	return saveResp.FilePath, nil
}

// classifyError maps transport-level errors to sentinel errors.
func classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	return fmt.Errorf("%w: %v", ErrUnreachable, err)
}

// Compile-time check that HTTPClient implements Client.
var _ Client = (*HTTPClient)(nil)
