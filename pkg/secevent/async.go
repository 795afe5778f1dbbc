package secevent

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// Writer delivers a batch of events to a backend. Implementations may block
// up to the context deadline and must not retain the slice.
type Writer interface {
	Write(ctx context.Context, events []Event) error
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(ctx context.Context, events []Event) error

func (f WriterFunc) Write(ctx context.Context, events []Event) error { return f(ctx, events) }

// AsyncOptions configures buffering and batching of an Async sink.
type AsyncOptions struct {
	BufferSize   int           // events queued before Emit starts dropping
	BatchSize    int           // events per Write call
	BatchTimeout time.Duration // longest a partial batch waits
	WriteTimeout time.Duration // deadline for each Write call
	// OnError receives write failures wrapped in ErrWriteFailed. Called from
	// the worker goroutine.
	OnError func(error)
}

// Async is a Sink that hands events to a background worker. Emit never
// blocks: when the buffer is full the event is dropped and counted.
type Async struct {
	writer  Writer
	events  chan Event
	done    chan struct{}
	wg      sync.WaitGroup
	options AsyncOptions

	// mu orders Emit against Close: once closed is set no send can reach
	// the buffer, so the worker's final drain sees every queued event.
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	dropped   atomic.Uint64
}

// NewAsync starts the worker. Call Close during shutdown to flush.
func NewAsync(w Writer, opts AsyncOptions) *Async {
	if w == nil {
		panic("secevent: writer cannot be nil")
	}

	if opts.BufferSize <= 0 {
		opts.BufferSize = 1024
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 64
	}
	if opts.BatchTimeout <= 0 {
		opts.BatchTimeout = 250 * time.Millisecond
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 2 * time.Second
	}

	a := &Async{
		writer:  w,
		events:  make(chan Event, opts.BufferSize),
		done:    make(chan struct{}),
		options: opts,
	}

	a.wg.Add(1)
	go a.worker()

	return a
}

// Emit queues e, or drops it when the buffer is full or the sink is closed.
func (a *Async) Emit(e Event) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		a.dropped.Add(1)
		return
	}
	select {
	case a.events <- e:
	default:
		a.dropped.Add(1)
	}
}

// Dropped returns how many events were discarded so far.
func (a *Async) Dropped() uint64 {
	return a.dropped.Load()
}

func (a *Async) worker() {
	defer a.wg.Done()

	batch := make([]Event, 0, a.options.BatchSize)
	ticker := time.NewTicker(a.options.BatchTimeout)
	defer ticker.Stop()

	// Writes use their own deadline so a slow backend cannot stall shutdown
	// past WriteTimeout per batch.
	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), a.options.WriteTimeout)
		err := a.writer.Write(ctx, batch)
		cancel()
		if err != nil && a.options.OnError != nil {
			a.options.OnError(errors.Join(ErrWriteFailed, err))
		}
		clear(batch)
		batch = batch[:0]
	}

	for {
		select {
		case e := <-a.events:
			batch = append(batch, e)
			if len(batch) >= a.options.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()

		case <-a.done:
			for {
				select {
				case e := <-a.events:
					batch = append(batch, e)
					if len(batch) >= a.options.BatchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		}
	}
}

// Close stops accepting events and flushes what is queued. ctx bounds the
// wait; on expiry queued events may be lost. A second Close returns
// ErrSinkClosed.
func (a *Async) Close(ctx context.Context) error {
	first := false
	a.closeOnce.Do(func() {
		first = true
		a.mu.Lock()
		a.closed = true
		a.mu.Unlock()
		close(a.done)
	})
	if !first {
		return ErrSinkClosed
	}

	finished := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
