package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RoomCreated()
	m.RoomCreated()
	m.RoomDeleted()
	m.CommentOrphaned()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.roomsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.roomsDeleted))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.commentsAdded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.commentsOrphan))
}

func TestObserveRequest(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveRequest(http.MethodGet, "/api/rooms/{roomId}", http.StatusOK, 5*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/rooms/{roomId}", http.StatusOK, 7*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "/api/rooms/{roomId}", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "unmatched", "404")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.CommentAdded()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "roomly_comments_added_total 1")
}
