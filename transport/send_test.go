package transport

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ghsearch "github.com/him0/swift-Sample-GitHubSearch-2016"
	"github.com/him0/swift-Sample-GitHubSearch-2016/endpoint"
	"github.com/him0/swift-Sample-GitHubSearch-2016/internal/metrics"
)

type item struct {
	Name string
}

func (i *item) DecodeObject(obj ghsearch.Object) (err error) {
	i.Name, err = ghsearch.Field[string](obj, "name")
	return err
}

type fakeRecorder struct {
	outcomes  []string
	codes     []string
	durations int
}

func (f *fakeRecorder) IncrementRequests(_, outcome string)     { f.outcomes = append(f.outcomes, outcome) }
func (f *fakeRecorder) RecordRequestDuration(time.Time, string) { f.durations++ }
func (f *fakeRecorder) IncrementDecodeErrors(code string)       { f.codes = append(f.codes, code) }

func staticDoer(body string, err error) (Doer, *[]*http.Request) {
	var seen []*http.Request
	return DoerFunc(func(ctx context.Context, req *http.Request) ([]byte, error) {
		seen = append(seen, req)
		if err != nil {
			return nil, err
		}
		return []byte(body), nil
	}), &seen
}

var base, _ = url.Parse("https://api.github.com")

func TestSend_Decodes(t *testing.T) {
	d, seen := staticDoer(`{"name":"swift"}`, nil)
	rec := &fakeRecorder{}
	ep := endpoint.Get[item]("repos/apple/swift", endpoint.WithHeader("Accept", "application/json"))

	v, err := Send(context.Background(), d, base, ep, WithRecorder(rec))
	require.NoError(t, err)
	assert.Equal(t, "swift", v.Name)
	require.Len(t, *seen, 1)
	assert.Equal(t, "https://api.github.com/repos/apple/swift", (*seen)[0].URL.String())
	assert.Equal(t, "application/json", (*seen)[0].Header.Get("Accept"))
	assert.Equal(t, []string{metrics.OutcomeSuccess}, rec.outcomes)
	assert.Equal(t, 1, rec.durations)
}

func TestSend_DecodeErrorIsNotWrapped(t *testing.T) {
	d, _ := staticDoer(`{"name":5}`, nil)
	rec := &fakeRecorder{}

	_, err := Send(context.Background(), d, base, endpoint.Get[item]("x"), WithRecorder(rec))
	require.Error(t, err)
	de, ok := ghsearch.AsDecodeError(err)
	require.True(t, ok)
	assert.Equal(t, ghsearch.CodeTypeMismatch, de.Code)
	assert.Equal(t, "/name", de.Pointer())
	_, isTransport := AsError(err)
	assert.False(t, isTransport)
	assert.Equal(t, []string{metrics.OutcomeDecodeError}, rec.outcomes)
	assert.Equal(t, []string{ghsearch.CodeTypeMismatch}, rec.codes)
}

func TestSend_InvalidJSONBody(t *testing.T) {
	d, _ := staticDoer(`{"name":`, nil)
	_, err := Send(context.Background(), d, base, endpoint.Get[item]("x"))
	assert.True(t, errors.Is(err, ghsearch.ErrInvalidJSON))
}

func TestSend_MalformedBodyNeverBecomesRecord(t *testing.T) {
	for _, body := range []string{`{"name":"swift",}`, `{"name" "swift"}`, `{"name":"swift" "x":1}`} {
		d, _ := staticDoer(body, nil)
		rec := &fakeRecorder{}
		v, err := Send(context.Background(), d, base, endpoint.Get[item]("x"), WithRecorder(rec))
		require.Error(t, err, body)
		assert.True(t, errors.Is(err, ghsearch.ErrInvalidJSON), body)
		assert.Equal(t, item{}, v)
		assert.Equal(t, []string{ghsearch.CodeInvalidJSON}, rec.codes)
	}
}

func TestSend_TransportErrorPassesThrough(t *testing.T) {
	want := &Error{StatusCode: 503, Status: "503 Service Unavailable"}
	d, _ := staticDoer("", want)
	rec := &fakeRecorder{}

	_, err := Send(context.Background(), d, base, endpoint.Get[item]("x"), WithRecorder(rec))
	te, ok := AsError(err)
	require.True(t, ok)
	assert.Same(t, want, te)
	_, isDecode := ghsearch.AsDecodeError(err)
	assert.False(t, isDecode)
	assert.Equal(t, []string{metrics.OutcomeTransportError}, rec.outcomes)
	assert.Empty(t, rec.codes)
}

func TestSend_CancelledAfterResponseDiscardsResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := DoerFunc(func(context.Context, *http.Request) ([]byte, error) {
		cancel()
		return []byte(`{"name":"late"}`), nil
	})

	v, err := Send(ctx, d, base, endpoint.Get[item]("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, item{}, v)
}

func TestSend_MalformedPathNeverCallsDoer(t *testing.T) {
	d, seen := staticDoer(`{}`, nil)
	_, err := Send(context.Background(), d, base, endpoint.Get[item]("https://evil.example.com/x"))
	assert.True(t, errors.Is(err, endpoint.ErrMalformedPath))
	assert.Empty(t, *seen)
}

func TestSend_NilDoer(t *testing.T) {
	_, err := Send[item](context.Background(), nil, base, endpoint.Get[item]("x"))
	assert.Error(t, err)
}

func TestSend_PrometheusRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg, "")
	d, _ := staticDoer(`{}`, nil)

	_, err := Send(context.Background(), d, base, endpoint.Get[item]("x", endpoint.WithName("lookup")), WithRecorder(m))
	require.Error(t, err)

	n, err := testutil.GatherAndCount(reg, "ghsearch_decode_errors_total", "ghsearch_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
