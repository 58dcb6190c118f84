package journal

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"trade-journal-go/internal/storage"
)

// blob is one JSON value persisted under a single storage key. Mutations run as a
// read-modify-write under mu, so two updates never interleave on the same key.
type blob[T any] struct {
	store storage.Store
	key   string
	mu    sync.Mutex
}

func newBlob[T any](store storage.Store, key string) *blob[T] {
	return &blob[T]{store: store, key: key}
}

// get returns the stored value, or the zero value of T if the key was never saved.
func (b *blob[T]) get(ctx context.Context) (T, error) {
	var v T
	_, err := storage.LoadJSON(ctx, b.store, b.key, &v)
	return v, err
}

// update loads the current value, applies fn and saves the result. Nothing is
// written when fn or the load fails.
func (b *blob[T]) update(ctx context.Context, fn func(v T) (T, error)) (T, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	current, err := b.get(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	next, err := fn(current)
	if err != nil {
		var zero T
		return zero, err
	}
	if err := storage.SaveJSON(ctx, b.store, b.key, next); err != nil {
		var zero T
		return zero, err
	}
	return next, nil
}

// set replaces the stored value unconditionally.
func (b *blob[T]) set(ctx context.Context, v T) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return storage.SaveJSON(ctx, b.store, b.key, v)
}

// newID builds a collision-resistant id: prefix, creation time in milliseconds and a random suffix.
func newID(prefix string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return prefix + "_" + strconv.FormatInt(now.UnixMilli(), 10) + "_" + suffix
}
