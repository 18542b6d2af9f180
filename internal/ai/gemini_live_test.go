// README: Live Gemini calls for both gateways; skipped unless GEMINI_API_KEY is available (env or .env).
package ai

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func liveAPIKey(t *testing.T) string {
	t.Helper()
	loadDotEnv()
	key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if key == "" {
		t.Skip("GEMINI_API_KEY not set; skipping live gateway test")
	}
	return key
}

// loadDotEnv loads the nearest .env walking up from the package directory.
func loadDotEnv() {
	dir, err := os.Getwd()
	if err != nil {
		return
	}
	for i := 0; i < 8; i++ {
		candidate := filepath.Join(dir, ".env")
		if _, err := os.Stat(candidate); err == nil {
			_ = godotenv.Load(candidate)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

func TestLive_Gateways(t *testing.T) {
	key := liveAPIKey(t)

	gateways := map[string]Generator{
		"http": NewGeminiGateway(WithModel(os.Getenv("WANDERBOT_GEMINI_MODEL"))),
		"sdk":  NewSDKGateway(os.Getenv("WANDERBOT_GEMINI_MODEL")),
	}
	for name, g := range gateways {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			text, err := g.Generate(ctx, "Say hello in one short sentence.", key, 64)
			require.NoError(t, err)
			assert.NotEmpty(t, strings.TrimSpace(text))
			t.Logf("[%s] reply: %s", name, text)
		})
	}
}

func TestLive_InvalidKey(t *testing.T) {
	liveAPIKey(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := NewGeminiGateway().Generate(ctx, "hello", "not-a-real-key", 16)
	var gerr *GatewayError
	require.ErrorAs(t, err, &gerr)
	assert.NotZero(t, gerr.StatusCode)
	assert.NotEmpty(t, gerr.Message)
}
