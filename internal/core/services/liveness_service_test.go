package services

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"turfbook/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLivenessService_PingSuccess(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := metrics.NewUnregistered()
	s := NewLivenessService(srv.URL+"/health", time.Second, m)

	require.NoError(t, s.Ping(context.Background()))
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LivenessPings.WithLabelValues(metrics.ResultSuccess)))
	assert.Equal(t, 200.0, testutil.ToFloat64(m.LivenessLastStatus))
}

func TestLivenessService_PingBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	m := metrics.NewUnregistered()
	s := NewLivenessService(srv.URL, time.Second, m)

	err := s.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LivenessPings.WithLabelValues(metrics.ResultFailure)))
}

func TestLivenessService_PingTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	s := NewLivenessService(srv.URL, 50*time.Millisecond, nil)

	started := time.Now()
	err := s.Ping(context.Background())
	require.Error(t, err)
	assert.Less(t, time.Since(started), 2*time.Second)
}

func TestLivenessService_PingUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	s := NewLivenessService(url, 200*time.Millisecond, nil)
	assert.Error(t, s.Ping(context.Background()))
}

func TestLivenessService_CancelledContext(t *testing.T) {
	s := NewLivenessService("http://127.0.0.1:1", time.Second, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Ping(ctx), context.Canceled)
}

func TestNewLivenessService_DefaultTimeout(t *testing.T) {
	s := NewLivenessService("http://localhost:4000/health", 0, nil)
	assert.Equal(t, DefaultPingTimeout, s.timeout)
	assert.Equal(t, "http://localhost:4000/health", s.URL())
}

func TestLivenessService_ScheduledFailureLoggedOnce(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	m := metrics.NewUnregistered()
	s := NewLivenessService(srv.URL, time.Second, m)

	scheduler := NewScheduler(SchedulerConfig{Location: time.UTC})
	require.NoError(t, scheduler.Register(Job{
		Name:       s.Name(),
		Schedule:   "@every 1h",
		RunOnStart: true,
		Run:        s.RunJob,
	}))

	scheduler.Start()
	failures := m.LivenessPings.WithLabelValues(metrics.ResultFailure)
	assert.Eventually(t, func() bool { return testutil.ToFloat64(failures) == 1 }, 3*time.Second, 20*time.Millisecond)
	require.NoError(t, scheduler.Stop(context.Background()))

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "Liveness ping to "+srv.URL), out)
	assert.NotContains(t, out, "Job liveness-ping failed")
}
