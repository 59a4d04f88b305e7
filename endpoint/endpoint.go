// Package endpoint describes API calls as immutable values: method, relative
// path, ordered query parameters, static headers and the decoder for the
// response body. An Endpoint performs no I/O; see package transport.
package endpoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	ghsearch "github.com/him0/swift-Sample-GitHubSearch-2016"
)

// ErrMalformedPath is returned when an endpoint path cannot be joined to a
// base URL.
var ErrMalformedPath = errors.New("endpoint: malformed path")

// Param is one query parameter. Parameters keep declaration order.
type Param struct {
	Key   string
	Value string
}

// shape is the request description shared by every Endpoint[T].
type shape struct {
	method   string
	path     string
	name     string
	query    []Param
	header   http.Header
	parseOpt []ghsearch.ParseOpt
}

// Option customizes an endpoint at construction.
type Option func(*shape)

// WithQuery appends a query parameter.
func WithQuery(key, value string) Option {
	return func(s *shape) { s.query = append(s.query, Param{Key: key, Value: value}) }
}

// WithHeader sets a static header, replacing earlier values for key.
func WithHeader(key, value string) Option {
	return func(s *shape) { s.header.Set(key, value) }
}

// WithName overrides the label used for logs and metrics (default: path).
func WithName(name string) Option {
	return func(s *shape) { s.name = name }
}

// WithParseOpt sets the limits used when parsing the response body.
func WithParseOpt(opt ghsearch.ParseOpt) Option {
	return func(s *shape) { s.parseOpt = []ghsearch.ParseOpt{opt} }
}

// Endpoint is an immutable description of one API call whose response decodes
// into T. Two endpoints built from equal inputs produce identical requests.
type Endpoint[T any] struct {
	shape
	decode ghsearch.DecodeFunc[T]
}

// New builds an endpoint whose response body is decoded by decode.
func New[T any](method, path string, decode ghsearch.DecodeFunc[T], opts ...Option) Endpoint[T] {
	s := shape{method: method, path: path, header: http.Header{}}
	for _, opt := range opts {
		opt(&s)
	}
	return Endpoint[T]{shape: s, decode: decode}
}

// Get builds a GET endpoint decoding its response with ghsearch.Decode[T].
func Get[T any](path string, opts ...Option) Endpoint[T] {
	return New(http.MethodGet, path, ghsearch.Decode[T], opts...)
}

// With returns a copy of e with additional options applied. e is unchanged.
func (e Endpoint[T]) With(opts ...Option) Endpoint[T] {
	s := e.shape
	s.query = e.Query()
	s.header = e.Header()
	for _, opt := range opts {
		opt(&s)
	}
	return Endpoint[T]{shape: s, decode: e.decode}
}

func (e Endpoint[T]) Method() string { return e.method }
func (e Endpoint[T]) Path() string   { return e.path }

// Name is the label used in logs and metrics.
func (e Endpoint[T]) Name() string {
	if e.name != "" {
		return e.name
	}
	return e.path
}

// Query returns a copy of the query parameters in declaration order.
func (e Endpoint[T]) Query() []Param {
	if len(e.query) == 0 {
		return nil
	}
	return append([]Param(nil), e.query...)
}

// Header returns a copy of the static headers.
func (e Endpoint[T]) Header() http.Header { return e.header.Clone() }

// EncodeQuery serializes the query parameters in declaration order.
func (e Endpoint[T]) EncodeQuery() string {
	b := &strings.Builder{}
	for i, p := range e.query {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// URL joins base with the endpoint path and attaches the query. The path must
// be relative; a leading slash is ignored so base path prefixes survive.
func (e Endpoint[T]) URL(base *url.URL) (*url.URL, error) {
	if base == nil || !base.IsAbs() {
		return nil, fmt.Errorf("%w: base URL must be absolute", ErrMalformedPath)
	}
	rel, err := url.Parse(strings.TrimPrefix(e.path, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrMalformedPath, e.path, err)
	}
	if rel.IsAbs() || rel.Host != "" || strings.HasPrefix(rel.Path, "/") {
		return nil, fmt.Errorf("%w: %q is not relative", ErrMalformedPath, e.path)
	}
	if rel.RawQuery != "" || rel.Fragment != "" {
		return nil, fmt.Errorf("%w: %q carries a query or fragment; use WithQuery", ErrMalformedPath, e.path)
	}
	b := *base
	b.RawQuery, b.Fragment = "", ""
	if !strings.HasSuffix(b.Path, "/") {
		b.Path += "/"
		if b.RawPath != "" {
			b.RawPath += "/"
		}
	}
	u := b.ResolveReference(rel)
	u.RawQuery = e.EncodeQuery()
	return u, nil
}

// Request builds the HTTP request for base. The request has no body.
func (e Endpoint[T]) Request(ctx context.Context, base *url.URL) (*http.Request, error) {
	u, err := e.URL(base)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, e.method, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("endpoint: build request: %w", err)
	}
	req.Header = e.Header()
	return req, nil
}

// Signature renders "METHOD URL" deterministically, for logs and tests.
func (e Endpoint[T]) Signature(base *url.URL) (string, error) {
	u, err := e.URL(base)
	if err != nil {
		return "", err
	}
	return e.method + " " + u.String(), nil
}

// Decode parses a raw response body and decodes it into T.
func (e Endpoint[T]) Decode(body []byte) (T, error) {
	var zero T
	v, err := ghsearch.Parse(body, e.parseOpt...)
	if err != nil {
		return zero, err
	}
	if e.decode == nil {
		return zero, ghsearch.Unsupported("", fmt.Sprintf("%T", zero))
	}
	return e.decode(v)
}
