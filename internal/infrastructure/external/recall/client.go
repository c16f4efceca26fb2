package recall

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

	"github.com/johnquangdev/customer-pulse/pkg/config"
)

// ErrNotFound is matched by errors.Is for vendor 404 responses
var ErrNotFound = errors.New("recall: resource not found")

// APIError is a non-2xx response from the vendor
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("recall api returned status %d: %s", e.StatusCode, e.Body)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client is a minimal Recall.ai REST client
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates a client using the provided config
func NewClient(cfg *config.RecallConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// GetBot fetches a bot with its status history and recordings
func (c *Client) GetBot(ctx context.Context, botID string) (*Bot, error) {
	body, err := c.do(ctx, http.MethodGet, c.endpoint("bot", botID), nil, true)
	if err != nil {
		return nil, err
	}
	var bot Bot
	if err := json.Unmarshal(body, &bot); err != nil {
		return nil, fmt.Errorf("decode bot %s: %w", botID, err)
	}
	bot.Raw = body
	return &bot, nil
}

// GetTranscript fetches transcript metadata by transcript ID
func (c *Client) GetTranscript(ctx context.Context, transcriptID string) (*Artifact, error) {
	body, err := c.do(ctx, http.MethodGet, c.endpoint("transcript", transcriptID), nil, false)
	if err != nil {
		return nil, err
	}
	var t Artifact
	if err := json.Unmarshal(body, &t); err != nil {
		return nil, fmt.Errorf("decode transcript %s: %w", transcriptID, err)
	}
	return &t, nil
}

// FindTranscriptByBot lists transcripts for a bot and returns the first one with a download URL.
// When transcripts exist but none is downloadable yet, the first one is returned as is.
// Only an empty listing is reported as ErrNotFound.
func (c *Client) FindTranscriptByBot(ctx context.Context, botID string) (*Artifact, error) {
	u := c.endpoint("transcript") + "?bot_id=" + url.QueryEscape(botID)
	body, err := c.do(ctx, http.MethodGet, u, nil, false)
	if err != nil {
		return nil, err
	}
	var list transcriptList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decode transcript list for bot %s: %w", botID, err)
	}
	if len(list.Results) == 0 {
		return nil, &APIError{StatusCode: http.StatusNotFound, Body: "no transcript for bot " + botID}
	}
	for i := range list.Results {
		if list.Results[i].DownloadURL() != "" {
			return &list.Results[i], nil
		}
	}
	return &list.Results[0], nil
}

// DownloadTranscript fetches and decodes the transcript segments at downloadURL
func (c *Client) DownloadTranscript(ctx context.Context, downloadURL string) ([]Segment, error) {
	body, err := c.do(ctx, http.MethodGet, downloadURL, nil, false)
	if err != nil {
		return nil, err
	}
	var segments []Segment
	if err := json.Unmarshal(body, &segments); err != nil {
		return nil, fmt.Errorf("decode transcript payload: %w", err)
	}
	return segments, nil
}

// DeleteMedia asks the vendor to delete all media of a bot
func (c *Client) DeleteMedia(ctx context.Context, botID string) error {
	_, err := c.do(ctx, http.MethodPost, c.endpoint("bot", botID, "delete_media"), bytes.NewReader([]byte("{}")), false)
	return err
}

func (c *Client) endpoint(parts ...string) string {
	escaped := make([]string, 0, len(parts))
	for _, p := range parts {
		escaped = append(escaped, url.PathEscape(p))
	}
	return c.baseURL + "/" + strings.Join(escaped, "/") + "/"
}

// do executes an authenticated request and records it when a recorder is attached to ctx
func (c *Client) do(ctx context.Context, method, target string, body io.Reader, keepPayload bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	call := APICall{URL: target, Method: method, Timestamp: started.UTC()}
	defer func() {
		call.DurationMs = time.Since(started).Milliseconds()
		recordCall(ctx, call)
	}()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	call.Status = resp.StatusCode

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read recall response: %w", err)
	}
	if keepPayload && json.Valid(payload) {
		call.Response = json.RawMessage(payload)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: truncate(string(payload), 512)}
	}
	return payload, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
