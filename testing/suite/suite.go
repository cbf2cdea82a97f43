package suite

import (
	"context"
	"log/slog"
	"math/rand"
	"os"
	"testing"
	"time"
)

const (
	maxWaitDuration = 30 * time.Second
	defaultSeed     = 42
)

type Suite struct {
	*testing.T
	Logger *slog.Logger

	// Rand is seeded, so bots and coin flips repeat between runs.
	Rand *rand.Rand
}

func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	return NewWithSeed(t, defaultSeed)
}

func NewWithSeed(t *testing.T, seed int64) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	return ctx, &Suite{
		T:      t,
		Logger: logger,
		Rand:   rand.New(rand.NewSource(seed)), //nolint: gosec // deterministic tests
	}
}
