// Package persist mirrors the store into the local key-value surface.
// It is a registered observer: every store mutation schedules a trailing-
// edge debounced save, and the flush serializes whatever the store holds
// at fire time. Storage failures are logged and swallowed; the session
// simply degrades to in-memory-only.
package persist

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"myfi/internal/log"
	"myfi/internal/store"
)

// StateKey is the single key the full snapshot lives under.
const StateKey = "my-fi-app-state"

// DefaultQuietWindow is the debounce window: a burst of mutations
// produces one write, after the burst has been quiet this long.
const DefaultQuietWindow = time.Second

// KV is the storage surface the bridge writes to.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Load reads and decodes the persisted snapshot. A missing key or an
// unparseable payload both report absent; parse failures are logged but
// never returned, so startup proceeds with default state.
func Load(ctx context.Context, kv KV, logger *log.Logger) (store.Snapshot, bool) {
	raw, ok, err := kv.Get(ctx, StateKey)
	if err != nil {
		logger.Warn("failed to read persisted state", "error", err)
		return store.Snapshot{}, false
	}
	if !ok {
		return store.Snapshot{}, false
	}

	var snap store.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		logger.Warn("persisted state is malformed, starting fresh", "error", err)
		return store.Snapshot{}, false
	}
	return snap, true
}

// Bridge owns the debounce timer. Notify restarts the timer; when it
// fires, the bridge pulls a fresh snapshot from its source and writes it.
type Bridge struct {
	kv     KV
	source func() store.Snapshot
	quiet  time.Duration
	logger *log.Logger

	mu    sync.Mutex
	timer *time.Timer
}

func NewBridge(kv KV, source func() store.Snapshot, quiet time.Duration, logger *log.Logger) *Bridge {
	if quiet <= 0 {
		quiet = DefaultQuietWindow
	}
	return &Bridge{kv: kv, source: source, quiet: quiet, logger: logger}
}

// Attach subscribes the bridge to the store's change notifications.
func (b *Bridge) Attach(s *store.Store) {
	s.Subscribe(b.Notify)
}

// Notify schedules a save. A notification arriving while a save is
// already pending cancels and restarts the timer, so only the trailing
// edge of a burst writes.
func (b *Bridge) Notify() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.quiet, b.fire)
}

func (b *Bridge) fire() {
	b.mu.Lock()
	b.timer = nil
	b.mu.Unlock()
	b.save(context.Background())
}

// Flush writes immediately if a save is pending, cancelling the timer.
// Call on shutdown so the trailing edge is not lost.
func (b *Bridge) Flush(ctx context.Context) {
	b.mu.Lock()
	pending := b.timer != nil
	if pending {
		b.timer.Stop()
		b.timer = nil
	}
	b.mu.Unlock()

	if pending {
		b.save(ctx)
	}
}

func (b *Bridge) save(ctx context.Context) {
	snap := b.source()
	raw, err := json.Marshal(snap)
	if err != nil {
		b.logger.Error("failed to serialize state", "error", err)
		return
	}
	if err := b.kv.Set(ctx, StateKey, raw); err != nil {
		b.logger.Error("failed to persist state, continuing in memory", "error", err)
		return
	}
	b.logger.Debug("state persisted", "bytes", len(raw))
}
