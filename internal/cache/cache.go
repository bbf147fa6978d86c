// Package cache memoizes sentence analysis. Analysis is a pure function
// of the sentence text and the rule table, so results can be shared
// across documents, workers and runs.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/copycop/internal/model"
)

const keyPrefix = "copycop:v1:"

// Store is a byte-level key/value layer
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// SentenceKey derives the cache key for a sentence. scope separates
// results produced under different rule tables; empty scope hashes the
// sentence alone.
func SentenceKey(scope, sentence string) string {
	input := sentence
	if scope != "" {
		input = scope + "\x00" + sentence
	}
	hash := sha256.Sum256([]byte(input))
	return keyPrefix + hex.EncodeToString(hash[:])
}

// keyHash strips the prefix, leaving the hex digest
func keyHash(key string) string {
	return strings.TrimPrefix(key, keyPrefix)
}

// Results stores SentenceResults as JSON in a Store
type Results struct {
	store Store
	scope string
	ttl   time.Duration
}

// NewResults wraps a store. ttl of zero defers to the store's default.
func NewResults(store Store, scope string, ttl time.Duration) *Results {
	return &Results{store: store, scope: scope, ttl: ttl}
}

// Lookup returns the cached result for a sentence. Undecodable entries
// count as misses and are removed.
func (r *Results) Lookup(sentence string) (model.SentenceResult, bool) {
	key := SentenceKey(r.scope, sentence)

	data, ok := r.store.Get(key)
	if !ok {
		return model.SentenceResult{}, false
	}

	var result model.SentenceResult
	if err := json.Unmarshal(data, &result); err != nil {
		_ = r.store.Delete(key)
		return model.SentenceResult{}, false
	}
	return result, true
}

// Remember caches a result. Degraded results are never cached.
func (r *Results) Remember(sentence string, result model.SentenceResult) error {
	if result.Degraded {
		return nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := r.store.Set(SentenceKey(r.scope, sentence), data, r.ttl); err != nil {
		return fmt.Errorf("cache result: %w", err)
	}
	return nil
}

// Clear drops every cached result
func (r *Results) Clear() error {
	return r.store.Clear()
}
