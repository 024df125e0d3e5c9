package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"turfbook/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"
)

// DefaultPingTimeout bounds a single health-check request
const DefaultPingTimeout = 5 * time.Second

// LivenessService pings the service's own health endpoint so hosting platforms
// that suspend idle instances see traffic.
type LivenessService struct {
	url     string
	timeout time.Duration
	metrics *metrics.Metrics
}

// NewLivenessService creates a new liveness service
func NewLivenessService(url string, timeout time.Duration, m *metrics.Metrics) *LivenessService {
	if timeout <= 0 {
		timeout = DefaultPingTimeout
	}
	if m == nil {
		m = metrics.NewUnregistered()
	}
	return &LivenessService{
		url:     url,
		timeout: timeout,
		metrics: m,
	}
}

// Name identifies the job in logs
func (s *LivenessService) Name() string {
	return "liveness-ping"
}

// URL returns the endpoint being pinged
func (s *LivenessService) URL() string {
	return s.url
}

// Ping issues one GET against the health endpoint. Failures are logged and
// returned; callers on the schedule ignore them.
func (s *LivenessService) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	timeout := s.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	agent := fiber.Get(s.url)
	agent.Timeout(timeout)
	code, _, errs := agent.Bytes()

	s.metrics.LivenessLastStatus.Set(float64(code))

	if len(errs) > 0 {
		s.metrics.LivenessPings.WithLabelValues(metrics.ResultFailure).Inc()
		log.Printf("❌ Liveness ping to %s failed: %v", s.url, errs[0])
		return fmt.Errorf("ping %s: %w", s.url, errs[0])
	}

	if code < 200 || code > 299 {
		s.metrics.LivenessPings.WithLabelValues(metrics.ResultFailure).Inc()
		log.Printf("⚠️ Liveness ping to %s returned status %d", s.url, code)
		return fmt.Errorf("ping %s: unexpected status %d", s.url, code)
	}

	s.metrics.LivenessPings.WithLabelValues(metrics.ResultSuccess).Inc()
	log.Printf("💓 Liveness ping ok [%s %d]", s.url, code)
	return nil
}

// RunJob adapts Ping to the scheduler. Ping already logs and counts failures,
// so the scheduler is handed nil to keep each failure to one log line.
func (s *LivenessService) RunJob(ctx context.Context) error {
	_ = s.Ping(ctx)
	return nil
}
