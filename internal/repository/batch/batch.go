package batch

import (
	"context"
	"sync"
	"time"

	"github.com/etkecc/go-apm"
)

// Batch buffers items and flushes them in chunks
type Batch[T any] struct {
	mu        sync.Mutex
	flushfunc func(ctx context.Context, items []T)
	data      []T
	size      int
}

// New creates new batch object
func New[T any](size int, flushfunc func(ctx context.Context, items []T)) *Batch[T] {
	return &Batch[T]{
		data:      make([]T, 0, size),
		flushfunc: flushfunc,
		size:      size,
	}
}

// Add item to batch and automatically flush it when the batch is full
func (b *Batch[T]) Add(ctx context.Context, item T) {
	b.mu.Lock()
	b.data = append(b.data, item)
	full := len(b.data) >= b.size
	b.mu.Unlock()

	if full {
		b.Flush(ctx)
	}
}

// Flush / store batch
func (b *Batch[T]) Flush(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.data) == 0 {
		return
	}

	log := apm.Log(ctx)
	started := time.Now().UTC()
	log.Debug().Int("len", len(b.data)).Msg("storing data batch")
	b.flushfunc(ctx, b.data)
	log.Debug().Int("len", len(b.data)).Str("took", time.Since(started).String()).Msg("stored data batch")
	b.data = make([]T, 0, b.size)
}

// Len returns the amount of buffered items
func (b *Batch[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.data)
}
