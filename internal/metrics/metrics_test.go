package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m := New()
	require.NotNil(t, m)

	m.EngineEventsTotal.WithLabelValues("chunk").Inc()
	m.NotificationsTotal.Inc()
	m.ViewsRegistered.Set(2)
	m.StreamingSessions.Set(1)
}

func TestHandler(t *testing.T) {
	m := New()
	m.EngineEventsTotal.WithLabelValues("send_start").Inc()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	m.Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "switchboard_engine_events_total")
	assert.Contains(t, body, `type="send_start"`)
}
