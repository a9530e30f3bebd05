package poller

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

	"framecraft/internal/composer"
	v1 "framecraft/internal/contracts/render/v1"
	"framecraft/internal/httpkit"
	"framecraft/internal/pkg/errors"
)

// Service is the name reported in errors raised by APIClient.
const Service = "composer"

const maxResponseBytes = 1 << 20

// Client is the composer as seen by the poller.
type Client interface {
	// Submit returns the id of the queued render job.
	Submit(ctx context.Context, sub composer.Submission) (string, error)
	Status(ctx context.Context, id string) (v1.Job, error)
}

// APIClient calls the composer HTTP API.
type APIClient struct {
	endpoint string
	client   *http.Client
}

// NewAPIClient returns a client for the render endpoint, e.g.
// http://localhost:8080/shotstack.
func NewAPIClient(endpoint string, httpClient *http.Client) *APIClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &APIClient{
		endpoint: strings.TrimRight(strings.TrimSpace(endpoint), "/"),
		client:   httpClient,
	}
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *APIClient) Submit(ctx context.Context, sub composer.Submission) (string, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return "", errors.Wrap(err, "poller.submit", "failed to encode submission")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "poller.submit", "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")

	data, err := c.do(req, "poller.submit")
	if err != nil {
		return "", err
	}

	var queued v1.Queued
	if err := json.Unmarshal(data, &queued); err != nil || queued.ID == "" {
		return "", errors.Remote(Service, http.StatusOK, "composer response carries no job id", err).WithOp("poller.submit")
	}
	return queued.ID, nil
}

func (c *APIClient) Status(ctx context.Context, id string) (v1.Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/"+url.PathEscape(id), nil)
	if err != nil {
		return v1.Job{}, errors.Wrap(err, "poller.status", "failed to build request")
	}

	data, err := c.do(req, "poller.status")
	if err != nil {
		return v1.Job{}, err
	}

	var job v1.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return v1.Job{}, errors.Remote(Service, http.StatusOK, "composer returned a malformed job", err).WithOp("poller.status")
	}
	return job, nil
}

// do sends req and unwraps the response envelope. Error envelopes are
// turned back into *errors.Error with their code and field details.
func (c *APIClient) do(req *http.Request, op string) (json.RawMessage, error) {
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		if req.Context().Err() == context.DeadlineExceeded {
			return nil, errors.WrapWithCode(err, errors.CodeTimeout, op, "composer request timed out")
		}
		return nil, errors.Remote(Service, 0, "composer request failed", err).WithOp(op)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.Remote(Service, res.StatusCode, "composer request failed", err).WithOp(op)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, errors.Remote(Service, res.StatusCode, fmt.Sprintf("composer returned http %d", res.StatusCode), err).WithOp(op)
	}

	if env.Status == httpkit.StatusSuccess && res.StatusCode < 300 {
		return env.Data, nil
	}

	var data httpkit.ErrorData
	_ = json.Unmarshal(env.Data, &data)

	code := errors.Code(data.Code)
	if code == "" {
		code = errors.CodeRemote
	}
	e := errors.New(code, env.Message).WithOp(op).WithField("http_status", res.StatusCode)
	if len(data.Details) > 0 {
		e.WithField("details", data.Details)
	}
	if data.Provider != "" {
		e.WithField("provider", data.Provider)
	}
	return nil, e
}
