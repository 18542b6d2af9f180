// README: TripPlanner generates itineraries and answers follow-up questions for the held trip.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"wanderbot/internal/ai"
	"wanderbot/internal/chat"
	"wanderbot/internal/credential"
	"wanderbot/internal/plan"
	"wanderbot/internal/prompt"
	"wanderbot/internal/trip"
)

// TripPlanner holds a single user's current plan and conversation.
type TripPlanner struct {
	store      credential.Store
	generator  ai.Generator
	transcript *chat.Transcript

	planTokens int
	chatTokens int
	retry      RetryPolicy
	now        func() time.Time
	sleep      func(ctx context.Context, d time.Duration) error

	mu      sync.RWMutex
	current *PlanResult
}

type Option func(*TripPlanner)

func WithPlanMaxTokens(n int) Option {
	return func(p *TripPlanner) {
		if n > 0 {
			p.planTokens = n
		}
	}
}

func WithChatMaxTokens(n int) Option {
	return func(p *TripPlanner) {
		if n > 0 {
			p.chatTokens = n
		}
	}
}

func WithRetry(policy RetryPolicy) Option {
	return func(p *TripPlanner) { p.retry = policy }
}

func WithTranscript(t *chat.Transcript) Option {
	return func(p *TripPlanner) {
		if t != nil {
			p.transcript = t
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *TripPlanner) {
		if now != nil {
			p.now = now
		}
	}
}

// NewTripPlanner creates a TripPlanner with initialized dependencies.
func NewTripPlanner(store credential.Store, generator ai.Generator, opts ...Option) *TripPlanner {
	p := &TripPlanner{
		store:      store,
		generator:  generator,
		planTokens: DefaultPlanMaxTokens,
		chatTokens: DefaultChatMaxTokens,
		retry:      RetryPolicy{MaxAttempts: 1},
		now:        time.Now,
		sleep:      sleepContext,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.transcript == nil {
		p.transcript = chat.NewTranscript()
	}
	return p
}

// GeneratePlan validates req, asks the model for an itinerary and, on success,
// makes it the current plan and starts a fresh conversation.
func (p *TripPlanner) GeneratePlan(ctx context.Context, req trip.Request) (*PlanResult, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	apiKey, err := p.apiKey(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := p.generate(ctx, prompt.Plan(req), apiKey, p.planTokens)
	if err != nil {
		return nil, err
	}

	itinerary, err := plan.Parse(raw)
	if err != nil {
		var perr *plan.ParseError
		if errors.As(err, &perr) {
			log.Printf("plan parse failed for %s: %v\nraw response:\n%s", req.Destination, perr, perr.Raw)
		}
		return nil, err
	}

	warnings := plan.Check(itinerary, req.Budget)
	for _, w := range warnings {
		log.Printf("plan warning for %s: %s", req.Destination, w.Message)
	}

	tc := req.Context()
	result := &PlanResult{
		Plan:        itinerary,
		Warnings:    warnings,
		Request:     req,
		Trip:        tc,
		DateRange:   tc.DateRangeLabel(),
		TotalBudget: plan.TotalBudget(itinerary),
		CreatedAt:   p.now(),
	}

	p.mu.Lock()
	p.current = result
	p.transcript.Reset()
	p.mu.Unlock()
	return result, nil
}

// Ask sends a follow-up question about tc and records both sides in the transcript.
// On failure only the question is recorded. If the conversation is reset while
// the answer is pending, the answer is returned but not recorded.
func (p *TripPlanner) Ask(ctx context.Context, tc trip.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}
	if strings.TrimSpace(tc.Destination) == "" {
		return "", ErrNoActiveTrip
	}
	apiKey, err := p.apiKey(ctx)
	if err != nil {
		return "", err
	}

	asked := p.transcript.Append(chat.SenderUser, question)
	answer, err := p.generate(ctx, prompt.FollowUp(tc, question), apiKey, p.chatTokens)
	if err != nil {
		log.Printf("follow-up failed for %s: %v", tc.Destination, err)
		return "", err
	}
	if _, ok := p.transcript.Reply(asked, chat.SenderAssistant, answer); !ok {
		log.Printf("conversation reset while answering %s question; answer not recorded", tc.Destination)
	}
	return answer, nil
}

// AskCurrent asks about the current plan's trip.
func (p *TripPlanner) AskCurrent(ctx context.Context, question string) (string, error) {
	cur := p.Current()
	if cur == nil {
		return "", ErrNoActiveTrip
	}
	return p.Ask(ctx, cur.Trip, question)
}

// Current returns the held plan, or nil before the first successful generation.
func (p *TripPlanner) Current() *PlanResult {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Reset forgets the current plan and clears the conversation.
func (p *TripPlanner) Reset() {
	p.mu.Lock()
	p.current = nil
	p.transcript.Reset()
	p.mu.Unlock()
}

func (p *TripPlanner) Messages() []chat.Message {
	return p.transcript.Messages()
}

// HasCredential reports whether an API key is stored.
func (p *TripPlanner) HasCredential(ctx context.Context) (bool, error) {
	_, ok, err := p.store.Get(ctx)
	return ok, err
}

func (p *TripPlanner) SetCredential(ctx context.Context, key string) error {
	return p.store.Set(ctx, strings.TrimSpace(key))
}

func (p *TripPlanner) apiKey(ctx context.Context) (string, error) {
	key, ok, err := p.store.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("read api key: %w", err)
	}
	if !ok || strings.TrimSpace(key) == "" {
		return "", ErrMissingCredential
	}
	return key, nil
}

func (p *TripPlanner) generate(ctx context.Context, text, apiKey string, maxTokens int) (string, error) {
	attempts := p.retry.attempts()
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		var out string
		out, err = p.generator.Generate(ctx, text, apiKey, maxTokens)
		if err == nil {
			return out, nil
		}
		if attempt == attempts || !ai.IsTransient(err) {
			break
		}
		wait := p.retry.delay(attempt)
		log.Printf("generation attempt %d/%d failed: %v; retrying in %s", attempt, attempts, err, wait)
		if serr := p.sleep(ctx, wait); serr != nil {
			return "", serr
		}
	}
	return "", err
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
