// AngelaMos | 2026
// client.go

package apiclient

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

	"go.opentelemetry.io/otel/attribute"

	"github.com/baytalsudani/console/internal/config"
	"github.com/baytalsudani/console/internal/core"
	"github.com/baytalsudani/console/internal/metrics"
)

const (
	DefaultTimeout = 30 * time.Second
	maxErrorBody   = 4 << 10
)

// Client talks JSON to the marketplace API. Every call carries the
// configured timeout and is never retried.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(cfg config.RemoteAPIConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
}

// Unwrap places the status in the error taxonomy.
func (e *StatusError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return core.ErrUnauthenticated
	case http.StatusForbidden:
		return core.ErrForbidden
	case http.StatusNotFound:
		return core.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return core.ErrValidation
	case http.StatusConflict:
		return core.ErrDuplicateIdentity
	default:
		return core.ErrServer
	}
}

// Ping checks that the API answers at all. Any HTTP status counts as alive.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/stats", nil)
	if err != nil {
		return fmt.Errorf("build ping: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ping: %w: %w", core.ErrConnectivity, err)
	}
	_ = resp.Body.Close() //nolint:errcheck // body unused
	return nil
}

func (c *Client) do(
	ctx context.Context,
	method, path string,
	query url.Values,
	body, out any,
) (err error) {
	ctx, span := core.StartSpan(ctx, "apiclient "+method,
		attribute.String("http.method", method),
		attribute.String("url.path", path),
	)
	defer func() { core.EndSpan(span, err) }()

	track := metrics.TrackRemoteCall(method, resourceOf(path))
	status := 0
	defer func() { track(status) }()

	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", method, path, core.ErrConnectivity, err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	status = resp.StatusCode
	span.SetAttributes(attribute.Int("http.status_code", status))

	if status < 200 || status > 299 {
		return &StatusError{
			Method:  method,
			Path:    path,
			Status:  status,
			Message: errorMessage(resp.Body),
		}
	}

	if out == nil || status == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode %s %s: %w: %w", method, path, core.ErrServer, err)
	}
	return nil
}

func errorMessage(body io.Reader) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || json.Unmarshal(raw, &payload) != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}

// resourceOf keeps metric labels bounded: "/orders/12/status" -> "orders".
func resourceOf(path string) string {
	first, _, _ := strings.Cut(strings.Trim(path, "/"), "/")
	return first
}

func idPath(base string, id int64, rest ...string) string {
	p := fmt.Sprintf("%s/%d", base, id)
	for _, r := range rest {
		p += "/" + r
	}
	return p
}
