package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"go.uber.org/zap"
)

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Store is a string key/value cache with expiry.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// CachedGenerator answers repeated prompts from a cache. Cache failures are
// logged and otherwise ignored.
type CachedGenerator struct {
	next   Generator
	store  Store
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedGenerator wraps next with a cache of generated text.
func NewCachedGenerator(next Generator, store Store, ttl time.Duration, logger *zap.Logger) *CachedGenerator {
	return &CachedGenerator{next: next, store: store, ttl: ttl, logger: logger}
}

// Generate returns the cached text for prompt or asks the wrapped generator.
func (g *CachedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	key := PromptKey(prompt)

	if text, ok, err := g.store.Get(ctx, key); err != nil {
		g.logger.Warn("generation cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		g.logger.Debug("generation cache hit", zap.String("key", key))
		return text, nil
	}

	text, err := g.next.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	if err := g.store.Set(ctx, key, text, g.ttl); err != nil {
		g.logger.Warn("generation cache write failed", zap.String("key", key), zap.Error(err))
	}
	return text, nil
}

// PromptKey is the cache key for a prompt.
func PromptKey(prompt string) string {
	hash := sha256.Sum256([]byte(prompt))
	return "generation:" + hex.EncodeToString(hash[:])
}
