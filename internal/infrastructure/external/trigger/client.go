package trigger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/johnquangdev/customer-pulse/internal/domain/entities"
	"github.com/johnquangdev/customer-pulse/pkg/config"
	"github.com/johnquangdev/customer-pulse/pkg/jobcontext"
)

// Client triggers tasks on a Trigger.dev compatible task runner
type Client struct {
	baseURL         string
	client          *http.Client
	logger          *zap.Logger
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsed      time.Duration
}

// triggerRequest is the body of POST /api/v1/tasks/{id}/trigger
type triggerRequest struct {
	Payload interface{}     `json:"payload"`
	Options *triggerOptions `json:"options,omitempty"`
}

type triggerOptions struct {
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
}

// triggerResponse carries the run handle
type triggerResponse struct {
	ID string `json:"id"`
}

// statusError is a non-2xx response from the task runner
type statusError struct {
	StatusCode int
	Body       string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("task runner returned status %d: %s", e.StatusCode, e.Body)
}

// NewClient creates a task runner client authenticated with the secret key as a bearer token
func NewClient(cfg *config.TriggerConfig, logger *zap.Logger) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.APIKey})
	httpClient := oauth2.NewClient(context.Background(), ts)
	httpClient.Timeout = cfg.Timeout
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	maxElapsed := cfg.MaxElapsedTime
	if maxElapsed <= 0 {
		maxElapsed = 30 * time.Second
	}

	return &Client{
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		client:          httpClient,
		logger:          logger,
		initialInterval: 1 * time.Second,
		maxInterval:     10 * time.Second,
		maxElapsed:      maxElapsed,
	}
}

// Dispatch triggers the task and returns the run ID. Transient failures are retried
// with exponential backoff; 4xx responses other than 429 fail immediately.
func (c *Client) Dispatch(ctx context.Context, cmd entities.TaskCommand) (string, error) {
	body := triggerRequest{Payload: cmd.Payload}
	if cmd.IdempotencyKey != "" {
		body.Options = &triggerOptions{IdempotencyKey: cmd.IdempotencyKey}
	}
	b, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode trigger payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/v1/tasks/%s/trigger", c.baseURL, url.PathEscape(cmd.TaskID))

	var runID string
	attempt := 0
	triggerFn := func() error {
		attempt++
		id, err := c.post(ctx, endpoint, b)
		if err != nil {
			var se *statusError
			if errors.As(err, &se) {
				if !retryableStatus(se.StatusCode) {
					return backoff.Permanent(err)
				}
			} else if !jobcontext.IsRetryableError(err) {
				return backoff.Permanent(err)
			}
			if c.logger != nil {
				c.logger.Warn("⚠️ Task trigger attempt failed",
					zap.String("task_id", cmd.TaskID),
					zap.Int("attempt", attempt),
					zap.Error(err),
				)
			}
			return err
		}
		runID = id
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.initialInterval
	bo.MaxInterval = c.maxInterval
	bo.MaxElapsedTime = c.maxElapsed

	if err := backoff.Retry(triggerFn, backoff.WithContext(bo, ctx)); err != nil {
		return "", fmt.Errorf("trigger task %s: %w", cmd.TaskID, err)
	}

	if c.logger != nil {
		c.logger.Info("✅ Task triggered",
			zap.String("task_id", cmd.TaskID),
			zap.String("run_id", runID),
			zap.Int("attempts", attempt),
		)
	}
	return runID, nil
}

func (c *Client) post(ctx context.Context, endpoint string, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	payload, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return "", &statusError{StatusCode: resp.StatusCode, Body: string(payload)}
	}

	var tr triggerResponse
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &tr); err != nil {
			return "", fmt.Errorf("decode trigger response: %w", err)
		}
	}
	return tr.ID, nil
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}
