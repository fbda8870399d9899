package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"seatmap-service/internal/backend"
)

// ============================================================
// Upstream readiness
// ============================================================

// ErrNotReady — апстрим не ответил за отведенные попытки.
// Клиенту предлагается ручной повтор инициализации.
var ErrNotReady = errors.New("upstream is not ready")

// Readiness опрашивает апстрим ограниченным числом попыток с фиксированной
// паузой. Это ожидание ресурса перед открытием сессий, не конкурентность.
type Readiness struct {
	api      *backend.Client
	attempts int
	backoff  time.Duration

	mu    sync.Mutex
	ready bool
}

func NewReadiness(api *backend.Client, attempts int, backoff time.Duration) *Readiness {
	if attempts <= 0 {
		attempts = 5
	}
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}
	return &Readiness{api: api, attempts: attempts, backoff: backoff}
}

// Ready сообщает, прошла ли инициализация.
func (r *Readiness) Ready() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ready
}

// Ensure выполняет опрос, если готовность еще не достигнута.
func (r *Readiness) Ensure(ctx context.Context) error {
	r.mu.Lock()
	if r.ready {
		r.mu.Unlock()
		return nil
	}
	r.mu.Unlock()

	var lastErr error
	for attempt := 1; attempt <= r.attempts; attempt++ {
		if err := r.api.Ping(ctx); err == nil {
			r.mu.Lock()
			r.ready = true
			r.mu.Unlock()
			return nil
		} else {
			lastErr = err
			log.Printf("[EDITOR] upstream not ready (attempt %d/%d): %v", attempt, r.attempts, err)
		}

		if attempt == r.attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.backoff):
		}
	}

	return fmt.Errorf("%w: %v", ErrNotReady, lastErr)
}

// Retry сбрасывает состояние и запускает опрос заново (ручной повтор).
func (r *Readiness) Retry(ctx context.Context) error {
	r.mu.Lock()
	r.ready = false
	r.mu.Unlock()
	return r.Ensure(ctx)
}
