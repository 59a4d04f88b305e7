package transport

import (
	"context"
	"net/url"
	"time"

	ghsearch "github.com/him0/swift-Sample-GitHubSearch-2016"
	"github.com/him0/swift-Sample-GitHubSearch-2016/endpoint"
	"github.com/him0/swift-Sample-GitHubSearch-2016/internal/metrics"
)

// Recorder receives per-call measurements. *metrics.Metrics implements it.
type Recorder interface {
	IncrementRequests(endpoint, outcome string)
	RecordRequestDuration(start time.Time, endpoint string)
	IncrementDecodeErrors(code string)
}

var _ Recorder = (*metrics.Metrics)(nil)

// SendOption configures one Send call.
type SendOption func(*sendConfig)

type sendConfig struct {
	rec Recorder
}

// WithRecorder records request outcome, latency and decode error codes.
func WithRecorder(r Recorder) SendOption { return func(c *sendConfig) { c.rec = r } }

// Send builds ep's request against base, executes it through d and decodes the
// body. Transport failures come back as *Error; decode failures come back as
// the *ghsearch.DecodeError itself. A result is never returned once ctx is
// done.
func Send[T any](ctx context.Context, d Doer, base *url.URL, ep endpoint.Endpoint[T], opts ...SendOption) (T, error) {
	var zero T
	var cfg sendConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if d == nil {
		return zero, errNilDoer
	}
	name := ep.Name()
	record := func(outcome string) {
		if cfg.rec != nil {
			cfg.rec.IncrementRequests(name, outcome)
		}
	}
	if cfg.rec != nil {
		defer cfg.rec.RecordRequestDuration(time.Now(), name)
	}

	req, err := ep.Request(ctx, base)
	if err != nil {
		return zero, err
	}
	body, err := d.Do(ctx, req)
	if err != nil {
		record(metrics.OutcomeTransportError)
		return zero, err
	}
	if err := ctx.Err(); err != nil {
		record(metrics.OutcomeTransportError)
		return zero, &Error{Method: req.Method, URL: req.URL.Redacted(), Cause: err}
	}
	v, err := ep.Decode(body)
	if err != nil {
		record(metrics.OutcomeDecodeError)
		if cfg.rec != nil {
			code := ghsearch.CodeUnexpectedValue
			if de, ok := ghsearch.AsDecodeError(err); ok {
				code = de.Code
			}
			cfg.rec.IncrementDecodeErrors(code)
		}
		return zero, err
	}
	record(metrics.OutcomeSuccess)
	return v, nil
}
