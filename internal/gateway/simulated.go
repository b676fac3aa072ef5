// Package gateway simulates the network call that submits an order.
package gateway

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/Lixing-Zhang/foodie-express/internal/models"
)

var (
	ErrSubmissionFailed = errors.New("order submission failed")
)

// Simulated accepts or rejects orders after a fixed delay.
//
// The delay is not cancellable once started: the context is ignored while
// waiting so a disconnecting client cannot abort a submission half way.
type Simulated struct {
	delay       time.Duration
	failureRate float64
	log         *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulated creates a gateway that waits delay and fails with the given
// probability (0 never fails, 1 always fails)
func NewSimulated(delay time.Duration, failureRate float64, log *slog.Logger) *Simulated {
	return &Simulated{
		delay:       delay,
		failureRate: failureRate,
		log:         log,
		rng:         rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}
}

// Submit waits the configured delay and then accepts or rejects order
func (s *Simulated) Submit(_ context.Context, order *models.Order) error {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	if s.shouldFail() {
		s.log.Warn("simulated order submission failed", "order_id", order.ID)
		return ErrSubmissionFailed
	}

	s.log.Debug("simulated order submission accepted", "order_id", order.ID)
	return nil
}

func (s *Simulated) shouldFail() bool {
	if s.failureRate <= 0 {
		return false
	}
	if s.failureRate >= 1 {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64() < s.failureRate
}
