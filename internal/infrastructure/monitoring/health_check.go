package monitoring

import (
	"context"
	"fmt"
	"sync"
	"time"

	"rillid/pkg/streamid"
)

type HealthChecker struct {
	checks []HealthCheck
	mu     sync.RWMutex
}

type HealthCheck struct {
	Name    string
	Check   func(ctx context.Context) (bool, error)
	Timeout time.Duration
}

type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		checks: make([]HealthCheck, 0),
	}
}

func (h *HealthChecker) AddCheck(name string, check func(ctx context.Context) (bool, error), timeout time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.checks = append(h.checks, HealthCheck{
		Name:    name,
		Check:   check,
		Timeout: timeout,
	})
}

func (h *HealthChecker) CheckAll(ctx context.Context) HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
	}

	for _, check := range h.checks {
		checkCtx, cancel := context.WithTimeout(ctx, check.Timeout)
		healthy, err := check.Check(checkCtx)
		cancel()

		switch {
		case err != nil:
			status.Status = "unhealthy"
			status.Checks[check.Name] = err.Error()
		case !healthy:
			status.Status = "unhealthy"
			status.Checks[check.Name] = "check failed"
		default:
			status.Checks[check.Name] = "healthy"
		}
	}

	return status
}

// CodecSelfCheck round-trips one id of each role through the text envelope.
func CodecSelfCheck(ctx context.Context) (bool, error) {
	samples := []streamid.StreamID{
		streamid.NewPublisher(streamid.MaxVersion, 0xFFFF),
		streamid.NewSubscriber(1, 2, 3, streamid.TrackCommentaryAudio),
	}
	for _, id := range samples {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		decoded, err := streamid.DecodeString(streamid.EncodeString(id))
		if err != nil {
			return false, fmt.Errorf("round trip of %v: %w", id, err)
		}
		if !decoded.Equal(id) {
			return false, fmt.Errorf("round trip of %v returned %v", id, decoded)
		}
	}
	return true, nil
}
