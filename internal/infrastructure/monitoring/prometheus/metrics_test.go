package prometheus

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Exposition(t *testing.T) {
	m := New()

	m.TasksSubmitted.Inc()
	m.TasksFinished.WithLabelValues("completed").Inc()
	m.TasksRejected.Inc()
	m.StageDuration.WithLabelValues("extract").Observe(0.25)
	m.QueueDepth.Set(3)
	m.ActiveWorkers.Set(1)
	m.HTTPDuration.WithLabelValues("POST", "/api/v1/patents/upload", "202").Observe(0.05)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(body)
	assert.Contains(t, text, "chempatent_tasks_submitted_total 1")
	assert.Contains(t, text, `chempatent_tasks_finished_total{status="completed"} 1`)
	assert.Contains(t, text, "chempatent_queue_depth 3")
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	// Two instances must not collide on registration.
	a := New()
	b := New()
	a.TasksSubmitted.Inc()
	b.TasksSubmitted.Inc()
	assert.NotSame(t, a.registry, b.registry)
}
