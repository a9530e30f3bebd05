// Package render talks to the Shotstack render API: it submits edits and
// looks up the status of the resulting jobs.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	v1 "framecraft/internal/contracts/render/v1"
	"framecraft/internal/pkg/errors"
	"framecraft/internal/pkg/logger"
)

// Provider is the name reported in remote errors.
const Provider = "shotstack"

// APIKeyHeader carries the render provider credentials.
const APIKeyHeader = "x-api-key"

const maxResponseBytes = 4 << 20

// Client submits edits and fetches job status. Both methods return the
// provider's "response" payload untouched.
type Client interface {
	Submit(ctx context.Context, edit v1.Edit) (json.RawMessage, error)
	Status(ctx context.Context, id string) (json.RawMessage, error)
}

// Options configures HTTPClient.
type Options struct {
	// BaseURL is the API root including the stage, e.g.
	// https://api.shotstack.io/stage.
	BaseURL string
	APIKey  string
	// StatusData asks the provider to echo the edit on status lookups.
	StatusData bool
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     *logger.Logger
}

// HTTPClient is the Client backed by the provider's REST API.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	statusData bool
	client     *http.Client
	log        *logger.Logger
}

// envelope wraps every provider response.
type envelope struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Response json.RawMessage `json:"response"`
}

func NewHTTPClient(opts Options) *HTTPClient {
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 20 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		apiKey:     strings.TrimSpace(opts.APIKey),
		statusData: opts.StatusData,
		client:     client,
		log:        log.WithComponent("render"),
	}
}

// Submit posts edit to /render.
func (c *HTTPClient) Submit(ctx context.Context, edit v1.Edit) (json.RawMessage, error) {
	body, err := json.Marshal(edit)
	if err != nil {
		return nil, errors.Wrap(err, "render.submit", "failed to encode edit")
	}
	return c.do(ctx, "render.submit", http.MethodPost, c.baseURL+"/render", body)
}

// Status fetches /render/{id}.
func (c *HTTPClient) Status(ctx context.Context, id string) (json.RawMessage, error) {
	endpoint := c.baseURL + "/render/" + url.PathEscape(id)
	if c.statusData {
		endpoint += "?data=true"
	}
	return c.do(ctx, "render.status", http.MethodGet, endpoint, nil)
}

func (c *HTTPClient) do(ctx context.Context, op, method, endpoint string, body []byte) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, errors.Wrap(err, op, "failed to build render request")
	}
	req.Header.Set(APIKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	res, err := c.client.Do(req)
	if err != nil {
		c.log.FromContext(ctx).Warn("render request failed", "op", op, "error", err.Error())
		return nil, transportError(ctx, op, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return nil, transportError(ctx, op, err)
	}

	c.log.FromContext(ctx).Debug("render response",
		"op", op,
		"status", res.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg := strings.TrimSpace(env.Message)
		if decodeErr != nil || msg == "" {
			msg = fmt.Sprintf("render provider returned http %d", res.StatusCode)
		}
		rerr := errors.Remote(Provider, res.StatusCode, msg, nil).WithOp(op)
		if decodeErr == nil && len(env.Response) > 0 {
			rerr.WithField("response", env.Response)
		}
		return nil, rerr
	}

	if decodeErr != nil {
		return nil, errors.Remote(Provider, res.StatusCode, "render provider returned malformed json", decodeErr).WithOp(op)
	}
	if len(env.Response) == 0 || string(env.Response) == "null" {
		return nil, errors.Remote(Provider, res.StatusCode, "render provider returned an empty response", nil).WithOp(op)
	}

	return env.Response, nil
}

// transportError classifies a failed round trip. A request that ran out of
// time is a TIMEOUT; anything else is a REMOTE_ERROR.
func transportError(ctx context.Context, op string, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return errors.WrapWithCode(err, errors.CodeTimeout, op, "render provider timed out").
			WithField("provider", Provider)
	}
	return errors.Remote(Provider, 0, "render provider request failed", err).WithOp(op)
}
