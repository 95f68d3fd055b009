// Package parseclient talks to the markdown parse endpoint of the admin site.
package parseclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"probimport/internal/config"
	"probimport/internal/domain"
	"probimport/internal/logger"
)

const (
	parsePath      = "parse-markdown/"
	addSuffix      = "/add/"
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 4 << 20
)

// Client implements port.ParseClient over HTTP.
type Client struct {
	endpoint string
	token    string
	client   *http.Client
	log      *zap.Logger
}

// NewClient creates a client for the parse endpoint derived from cfg.PageBase.
func NewClient(cfg *config.ImporterConfig, log *zap.Logger) *Client {
	return newClient(cfg, EndpointFor(cfg.PageBase), log)
}

// NewClientWithEndpoint creates a client posting to a fixed endpoint (for testing).
func NewClientWithEndpoint(cfg *config.ImporterConfig, endpoint string, log *zap.Logger) *Client {
	return newClient(cfg, endpoint, log)
}

func newClient(cfg *config.ImporterConfig, endpoint string, log *zap.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		endpoint: endpoint,
		token:    cfg.Token,
		client:   &http.Client{Timeout: timeout},
		log:      logger.OrNop(log),
	}
}

// Endpoint returns the URL the client posts to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// EndpointFor derives the parse endpoint from the page the import is started
// on. An add page ".../add/" maps to ".../parse-markdown/"; a change page
// ".../<id>/change/" or any other base gets "parse-markdown/" appended to its
// directory.
func EndpointFor(pageBase string) string {
	base := pageBase
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}
	switch {
	case strings.HasSuffix(base, addSuffix):
		base = strings.TrimSuffix(base, addSuffix) + "/"
	case strings.HasSuffix(base, "/change/"):
		base = strings.TrimSuffix(base, "change/")
	case !strings.HasSuffix(base, "/"):
		base += "/"
	}
	return base + parsePath
}

// Parse submits text and returns the parsed document. Blank text fails with
// domain.ErrEmptyInput before any request is made; every other failure is a
// *domain.RemoteError carrying a user-facing message.
func (c *Client) Parse(ctx context.Context, text string) (*domain.StructuredDocument, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyInput
	}

	form := url.Values{"markdown_text": {text}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, domain.NewRemoteError("could not build parse request", 0, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warn("parseclient: request failed", zap.String("endpoint", c.endpoint), zap.Error(err))
		return nil, domain.NewRemoteError("network error, could not reach parse service", 0, fmt.Errorf("calling parse endpoint: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, domain.NewRemoteError("network error, could not read parse response", resp.StatusCode, fmt.Errorf("reading response: %w", err))
	}

	c.log.Debug("parseclient: response received",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := errorMessage(body)
		if msg == "" {
			msg = fmt.Sprintf("network or server error: %d", resp.StatusCode)
		}
		rerr := domain.NewRemoteError(msg, resp.StatusCode,
			fmt.Errorf("parse endpoint status %d: %s", resp.StatusCode, truncate(string(body), 200)))
		rerr.RetryAfter = time.Duration(retryAfterSeconds(resp.Header.Get("Retry-After"))) * time.Second
		return nil, rerr
	}

	return decodeSuccess(body, resp.StatusCode)
}

// envelope is the parse endpoint's response shape.
type envelope struct {
	Success bool                    `json:"success"`
	Data    *domain.DocumentPayload `json:"data"`
	Message string                  `json:"message"`
	Error   json.RawMessage         `json:"error"`
}

func decodeSuccess(body []byte, status int) (*domain.StructuredDocument, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, domain.NewRemoteError("malformed response from parse service", status, fmt.Errorf("unmarshaling response: %w", err))
	}
	if !env.Success {
		msg := errorText(env.Error)
		if msg == "" {
			msg = "unknown error"
		}
		return nil, domain.NewRemoteError(msg, status, nil)
	}
	if env.Data == nil {
		return nil, domain.NewRemoteError("malformed response from parse service", status, fmt.Errorf("response has no data"))
	}
	return env.Data.Document(), nil
}

// errorMessage extracts the "error" field from a failure body, or "".
func errorMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	return errorText(env.Error)
}

// errorText accepts both {"error": "msg"} and {"error": {"message": "msg"}}.
func errorText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Message
	}
	return ""
}

// retryAfterSeconds parses a Retry-After header given in seconds; anything
// else yields 0.
func retryAfterSeconds(val string) int {
	if val == "" {
		return 0
	}
	secs, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil || secs < 0 {
		return 0
	}
	return secs
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
