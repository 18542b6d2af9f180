package chat

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscript_StartsWithWelcome(t *testing.T) {
	at := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	tr := NewTranscript(WithClock(func() time.Time { return at }))

	msgs := tr.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, SenderAssistant, msgs[0].Sender)
	assert.Equal(t, WelcomeText, msgs[0].Text)
	assert.Equal(t, at, msgs[0].Timestamp)
	assert.True(t, strings.HasPrefix(msgs[0].ID, "assistant-"))
}

func TestTranscript_AppendKeepsOrder(t *testing.T) {
	tr := NewTranscript()
	u := tr.Append(SenderUser, "Where should we eat?")
	a := tr.Append(SenderAssistant, "Try the pastelarias in Belém.")

	msgs := tr.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, u, msgs[1])
	assert.Equal(t, a, msgs[2])
	assert.True(t, strings.HasPrefix(u.ID, "user-"))
	assert.NotEqual(t, u.ID, a.ID)
}

func TestTranscript_MessagesIsCopy(t *testing.T) {
	tr := NewTranscript()
	msgs := tr.Messages()
	msgs[0].Text = "changed"
	assert.Equal(t, WelcomeText, tr.Messages()[0].Text)
}

func TestTranscript_Reset(t *testing.T) {
	tr := NewTranscript()
	first := tr.Messages()[0]
	tr.Append(SenderUser, "q")
	tr.Append(SenderAssistant, "a")

	tr.Reset()
	msgs := tr.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, WelcomeText, msgs[0].Text)
	assert.NotEqual(t, first.ID, msgs[0].ID)
}

func TestTranscript_Reply(t *testing.T) {
	tr := NewTranscript()
	q := tr.Append(SenderUser, "q")

	a, ok := tr.Reply(q, SenderAssistant, "a")
	require.True(t, ok)
	assert.Equal(t, SenderAssistant, a.Sender)
	require.Len(t, tr.Messages(), 3)

	stale := tr.Append(SenderUser, "before reset")
	tr.Reset()
	_, ok = tr.Reply(stale, SenderAssistant, "late")
	assert.False(t, ok)
	require.Len(t, tr.Messages(), 1)
	assert.Equal(t, WelcomeText, tr.Messages()[0].Text)
}

func TestTranscript_ConcurrentAppend(t *testing.T) {
	tr := NewTranscript()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Append(SenderUser, "hello")
		}()
	}
	wg.Wait()

	msgs := tr.Messages()
	assert.Len(t, msgs, 51)
	seen := map[string]bool{}
	for _, m := range msgs {
		assert.False(t, seen[m.ID])
		seen[m.ID] = true
	}
}
