package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, "")

	m.IncrementRequests("search/repositories", OutcomeSuccess)
	m.IncrementRequests("search/repositories", OutcomeSuccess)
	m.IncrementRequests("search/repositories", OutcomeDecodeError)
	m.IncrementDecodeErrors("type_mismatch")
	m.RecordRequestDuration(time.Now().Add(-time.Second), "search/repositories")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("search/repositories", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("search/repositories", OutcomeDecodeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.decodeErrors.WithLabelValues("type_mismatch")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.requestDuration))

	n, err := testutil.GatherAndCount(reg, "ghsearch_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestServiceLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, "cli")
	m.IncrementDecodeErrors("missing_key")

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	labels := families[0].GetMetric()[0].GetLabel()
	found := false
	for _, l := range labels {
		if l.GetName() == "service" && l.GetValue() == "cli" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestNilIsNoop(t *testing.T) {
	var m *Metrics
	m.IncrementRequests("x", OutcomeSuccess)
	m.IncrementDecodeErrors("x")
	m.RecordRequestDuration(time.Now(), "x")
}

func TestUnregistered(t *testing.T) {
	m := New(nil, "")
	m.IncrementRequests("x", OutcomeSuccess)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("x", OutcomeSuccess)))
}
