// Package transport performs the HTTP exchange for endpoint descriptors and
// hands the body back for decoding.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/elnormous/contenttype"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/him0/swift-Sample-GitHubSearch-2016/internal/logger"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-Id"

// DefaultMaxBodyBytes bounds response bodies read by Client.
const DefaultMaxBodyBytes int64 = 16 << 20

// Doer executes one request and returns the full 2xx response body.
// Implementations report failures as *Error.
type Doer interface {
	Do(ctx context.Context, req *http.Request) ([]byte, error)
}

// DoerFunc adapts a function to Doer.
type DoerFunc func(ctx context.Context, req *http.Request) ([]byte, error)

func (f DoerFunc) Do(ctx context.Context, req *http.Request) ([]byte, error) { return f(ctx, req) }

// Client is the net/http implementation of Doer.
type Client struct {
	http      *http.Client
	log       *logger.Logger
	token     string
	userAgent string
	maxBody   int64
	timeout   *time.Duration
	newID     func() string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client. nil keeps the default.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the whole-exchange timeout. It applies to a copy of the
// underlying client regardless of option order.
func WithTimeout(d time.Duration) Option { return func(c *Client) { c.timeout = &d } }

// WithLogger sets the logger; the default discards.
func WithLogger(l *logger.Logger) Option { return func(c *Client) { c.log = l } }

// WithToken sends "Authorization: token <t>" unless the request sets its own.
func WithToken(t string) Option { return func(c *Client) { c.token = t } }

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option { return func(c *Client) { c.userAgent = ua } }

// WithMaxBodyBytes bounds the response body. n <= 0 means unlimited.
func WithMaxBodyBytes(n int64) Option { return func(c *Client) { c.maxBody = n } }

// NewClient returns a Client with http.DefaultClient semantics and no timeout
// unless configured.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{},
		log:     logger.NewNop(),
		maxBody: DefaultMaxBodyBytes,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout != nil {
		hc := *c.http
		hc.Timeout = *c.timeout
		c.http = &hc
	}
	return c
}

// Do sends req bound to ctx. Non-2xx responses and non-JSON bodies become
// *Error. There are no retries.
func (c *Client) Do(ctx context.Context, req *http.Request) ([]byte, error) {
	req = req.Clone(ctx)
	id := c.newID()
	req.Header.Set(RequestIDHeader, id)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.token != "" && req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	fields := map[string]interface{}{
		"request_id": id,
		"method":     req.Method,
		"url":        req.URL.Redacted(),
	}
	fail := func(e *Error) ([]byte, error) {
		e.Method, e.URL, e.RequestID = req.Method, req.URL.Redacted(), id
		c.log.Warn("request failed", e, fields)
		return nil, e
	}

	c.log.Debug("request started", nil, fields)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return fail(&Error{Cause: err})
	}
	defer resp.Body.Close()

	body, err := c.readBody(resp.Body)
	if err != nil {
		return fail(&Error{StatusCode: resp.StatusCode, Status: resp.Status, Cause: err})
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(&Error{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       excerpt(body),
			Message:    apiMessage(body),
		})
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !isJSON(ct) {
		return fail(&Error{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       excerpt(body),
			Cause:      fmt.Errorf("%w %q", ErrUnexpectedContentType, ct),
		})
	}

	c.log.Debug("request finished", nil, fields, map[string]interface{}{
		"status":   resp.StatusCode,
		"bytes":    len(body),
		"duration": time.Since(start),
	})
	return body, nil
}

func (c *Client) readBody(r io.Reader) ([]byte, error) {
	if c.maxBody <= 0 {
		return io.ReadAll(r)
	}
	body, err := io.ReadAll(io.LimitReader(r, c.maxBody+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, c.maxBody)
	}
	return body, nil
}

var jsonMediaType = contenttype.NewMediaType("application/json")

// isJSON accepts application/json and structured +json subtypes.
func isJSON(header string) bool {
	mt := contenttype.NewMediaType(header)
	if mt.Type == "" {
		return false
	}
	return mt.Matches(jsonMediaType) ||
		(strings.EqualFold(mt.Type, "application") && strings.HasSuffix(strings.ToLower(mt.Subtype), "+json"))
}

// apiMessage extracts the top-level "message" of an error body.
func apiMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}

var errNilDoer = errors.New("transport: nil Doer")
