package service

import (
	"errors"
	"time"

	"wanderbot/internal/plan"
	"wanderbot/internal/trip"
)

var (
	ErrMissingCredential = errors.New("api key is not set")
	ErrEmptyQuestion     = errors.New("question must not be empty")
	ErrNoActiveTrip      = errors.New("no active trip to ask about")
)

const (
	DefaultPlanMaxTokens = 8192
	DefaultChatMaxTokens = 1024
)

// PlanResult is one successful generation. It is replaced as a whole, never patched.
type PlanResult struct {
	Plan        *plan.Itinerary
	Warnings    []plan.Warning
	Request     trip.Request
	Trip        trip.Context
	DateRange   string
	TotalBudget float64
	CreatedAt   time.Time
}

// RetryPolicy bounds retries of transient gateway failures. MaxAttempts <= 1 disables retry.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

func (p RetryPolicy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// delay is BaseDelay doubled per completed attempt.
func (p RetryPolicy) delay(attempt int) time.Duration {
	d := p.BaseDelay
	for i := 1; i < attempt; i++ {
		d *= 2
	}
	return d
}
