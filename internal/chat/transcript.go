// README: Conversation transcript for follow-up questions about the current trip.
package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

const WelcomeText = "Have any questions about your trip? Ask me about activities, food, transportation and more."

type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// Transcript is safe for concurrent use.
type Transcript struct {
	mu       sync.Mutex
	messages []Message
	now      func() time.Time
}

type Option func(*Transcript)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(t *Transcript) {
		if now != nil {
			t.now = now
		}
	}
}

// NewTranscript returns a transcript holding only the welcome message.
func NewTranscript(opts ...Option) *Transcript {
	t := &Transcript{now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	t.messages = []Message{t.newMessage(SenderAssistant, WelcomeText)}
	return t
}

func (t *Transcript) newMessage(sender Sender, text string) Message {
	return Message{
		ID:        string(sender) + "-" + uuid.NewString(),
		Text:      text,
		Sender:    sender,
		Timestamp: t.now(),
	}
}

func (t *Transcript) Append(sender Sender, text string) Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	m := t.newMessage(sender, text)
	t.messages = append(t.messages, m)
	return m
}

// Reply appends a message answering prev. It reports false and appends
// nothing when prev is no longer in the transcript, e.g. after a Reset.
func (t *Transcript) Reply(prev Message, sender Sender, text string) (Message, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, m := range t.messages {
		if m.ID == prev.ID {
			r := t.newMessage(sender, text)
			t.messages = append(t.messages, r)
			return r, true
		}
	}
	return Message{}, false
}

// Messages returns a copy of the transcript in insertion order.
func (t *Transcript) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Reset drops everything except a fresh welcome message.
func (t *Transcript) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = []Message{t.newMessage(SenderAssistant, WelcomeText)}
}
