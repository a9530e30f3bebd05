// Package search queries the Pexels photo search API.
package search

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

	"framecraft/internal/pkg/errors"
	"framecraft/internal/pkg/logger"
)

// Provider is the name reported in remote errors.
const Provider = "pexels"

const (
	defaultBaseURL   = "https://api.pexels.com/v1"
	maxResponseBytes = 4 << 20
)

// Query is one page of a photo search.
type Query struct {
	Text    string
	PerPage int
	Page    int
}

// Result is the decoded search response.
type Result struct {
	TotalResults int     `json:"total_results"`
	Page         int     `json:"page"`
	PerPage      int     `json:"per_page"`
	Photos       []Photo `json:"photos"`
	NextPage     string  `json:"next_page,omitempty"`
}

type Photo struct {
	ID           int64    `json:"id"`
	Width        int      `json:"width"`
	Height       int      `json:"height"`
	URL          string   `json:"url"`
	Photographer string   `json:"photographer"`
	Src          PhotoSrc `json:"src"`
}

// PhotoSrc lists the available renditions of a photo.
type PhotoSrc struct {
	Original  string `json:"original"`
	Large2x   string `json:"large2x,omitempty"`
	Large     string `json:"large,omitempty"`
	Medium    string `json:"medium,omitempty"`
	Small     string `json:"small,omitempty"`
	Portrait  string `json:"portrait,omitempty"`
	Landscape string `json:"landscape,omitempty"`
	Tiny      string `json:"tiny,omitempty"`
}

// Searcher runs photo searches.
type Searcher interface {
	Search(ctx context.Context, q Query) (*Result, error)
}

// Options configures PexelsClient.
type Options struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     *logger.Logger
}

// PexelsClient is the Searcher backed by the Pexels REST API.
type PexelsClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	log     *logger.Logger
}

func NewPexelsClient(opts Options) *PexelsClient {
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 20 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	return &PexelsClient{
		apiKey:  strings.TrimSpace(opts.APIKey),
		baseURL: baseURL,
		client:  client,
		log:     log.WithComponent("search"),
	}
}

// Search calls GET /search.
func (c *PexelsClient) Search(ctx context.Context, q Query) (*Result, error) {
	params := url.Values{}
	params.Set("query", q.Text)
	if q.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(q.PerPage))
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "search.query", "failed to build search request")
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	res, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.WrapWithCode(err, errors.CodeTimeout, "search.query", "search provider timed out").
				WithField("provider", Provider)
		}
		return nil, errors.Remote(Provider, 0, "search provider request failed", err).WithOp("search.query")
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.Remote(Provider, 0, "search provider request failed", err).WithOp("search.query")
	}

	c.log.FromContext(ctx).Debug("search response",
		"query", q.Text,
		"status", res.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, errors.Remote(Provider, res.StatusCode, providerMessage(raw, res.StatusCode), nil).WithOp("search.query")
	}

	var out Result
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errors.Remote(Provider, res.StatusCode, "search provider returned malformed json", err).WithOp("search.query")
	}
	return &out, nil
}

// providerMessage extracts {"error": "..."} from an error body.
func providerMessage(raw []byte, status int) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && strings.TrimSpace(body.Error) != "" {
		return strings.TrimSpace(body.Error)
	}
	return fmt.Sprintf("search provider returned http %d", status)
}
