// Package revocation keeps the process-local set of tokens that were logged
// out before their natural expiry.
//
// The registry lives in memory only. A restart forgets every entry and a
// second instance never sees the first one's revocations; a revoked token
// stays usable there until it expires.
package revocation

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// FallbackTTL is applied when a revoked token carries no readable expiry.
const FallbackTTL = 7 * 24 * time.Hour

// DefaultSweepInterval is how often Run purges expired entries.
const DefaultSweepInterval = time.Minute

// Registry maps token value to the instant after which the entry is
// meaningless. Entries with expiry <= now are treated as absent.
type Registry struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
	log     *zap.Logger
}

type Option func(*Registry)

// WithClock injects the time source used for every expiry comparison.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) { r.log = l }
}

func New(opts ...Option) *Registry {
	r := &Registry{
		entries: make(map[string]time.Time),
		now:     time.Now,
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Blacklist inserts or overwrites the entry for token. A zero expiry gets
// FallbackTTL from now.
func (r *Registry) Blacklist(token string, expiry time.Time) {
	if token == "" {
		return
	}
	if expiry.IsZero() {
		expiry = r.now().Add(FallbackTTL)
	}
	r.mu.Lock()
	r.entries[token] = expiry
	r.mu.Unlock()
}

// IsRevoked reports whether token is blacklisted and not yet expired. An
// expired entry is evicted on the spot and reported as not revoked.
func (r *Registry) IsRevoked(token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	exp, ok := r.entries[token]
	if !ok {
		return false
	}
	if !exp.After(r.now()) {
		delete(r.entries, token)
		return false
	}
	return true
}

// Sweep removes every expired entry and returns how many were dropped.
func (r *Registry) Sweep() int {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for tok, exp := range r.entries {
		if !exp.After(now) {
			delete(r.entries, tok)
			n++
		}
	}
	return n
}

// Len is the number of stored entries, expired ones included.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Run sweeps every interval until ctx is cancelled.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := r.Sweep(); n > 0 {
				r.log.Debug("revocation sweep", zap.Int("removed", n), zap.Int("remaining", r.Len()))
			}
		}
	}
}
