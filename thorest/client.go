// Package thorest is the HTTP adapter to a Thor-style chain node's REST
// API. It implements every node capability the SDK consumes: revision-scoped
// state reads, block/transaction/receipt lookups, indexed log queries, the
// atomic multi-clause explain call, and the websocket head subscription.
//
// Transport failures (unreachable node, 5xx, undecodable payloads) are
// reported as errors wrapping ErrTransport. "Well-formed but unknown" block,
// transaction, and receipt lookups are not failures: the node answers those
// with a literal null body and the client returns a nil result.
package thorest

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

	"github.com/vireolabs/thorlink/internal/pkg/telemetry"
	"github.com/vireolabs/thorlink/internal/pkg/transport/httpclient"

	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/otel/codes"
)

// ErrTransport reports that the node could not be reached or answered
// outside its contract. It is always propagated, never silently retried
// beyond the HTTP client's own short backoff.
var ErrTransport = errors.New("thorest: transport failure")

// Client talks to one node endpoint. Safe for concurrent use; requests are
// independent and carry no session with the node.
type Client struct {
	base   *url.URL
	http   *retryablehttp.Client
	dialer wsDialer
}

// config holds construction options for a Client.
type config struct {
	http   *retryablehttp.Client
	dialer wsDialer
}

// Option configures a Client.
type Option func(*config)

// WithHTTPClient replaces the default retrying HTTP client.
func WithHTTPClient(c *retryablehttp.Client) Option {
	return func(cfg *config) {
		cfg.http = c
	}
}

// New builds a client for the node at baseURL (e.g. "https://node.example").
func New(baseURL string, opts ...Option) (*Client, error) {
	cfg := config{
		http:   httpclient.New(),
		dialer: defaultWSDialer{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	base, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("thorest: invalid base url %q: %w", baseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("thorest: unsupported scheme %q", base.Scheme)
	}

	return &Client{
		base:   base,
		http:   cfg.http,
		dialer: cfg.dialer,
	}, nil
}

// endpoint joins the base URL with a path and query values.
func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do performs one round-trip, wrapped in a client span named after the
// operation. Non-2xx statuses are returned as a statusError so callers can
// map node-reported conditions (e.g. the log page cap) before the generic
// ErrTransport wrapping applies.
func (c *Client) do(ctx context.Context, op, method, rawURL string, body []byte) ([]byte, error) {
	ctx, span := telemetry.Tracer("thorlink/thorest").Start(ctx, op)
	defer span.End()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: reading response: %v", ErrTransport, err)
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		err := &statusError{status: res.StatusCode, body: strings.TrimSpace(string(payload))}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return payload, nil
}

// statusError is a non-2xx node response.
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("thorest: node returned %d: %s", e.status, e.body)
}

// Unwrap makes every status error match ErrTransport.
func (e *statusError) Unwrap() error { return ErrTransport }

// getJSON issues a GET and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, op, rawURL string, out any) error {
	payload, err := c.do(ctx, op, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	return decodeJSON(payload, out)
}

// postJSON issues a POST with a JSON body and decodes the response into out.
func (c *Client) postJSON(ctx context.Context, op, rawURL string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%w: encoding request: %v", ErrTransport, err)
	}

	payload, err := c.do(ctx, op, http.MethodPost, rawURL, body)
	if err != nil {
		return err
	}
	return decodeJSON(payload, out)
}

func decodeJSON(payload []byte, out any) error {
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrTransport, err)
	}
	return nil
}

// isNull reports whether the node answered with a literal JSON null, its
// signal for "well-formed query, confirmed absent".
func isNull(payload []byte) bool {
	return string(bytes.TrimSpace(payload)) == "null"
}
