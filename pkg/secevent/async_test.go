package secevent_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/inputguard/pkg/patterns"
	"github.com/dmitrymomot/inputguard/pkg/secevent"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) Write(ctx context.Context, events []secevent.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func event(id string) secevent.Event {
	return secevent.New(patterns.FamilyPromptInjection, patterns.SeverityReject, secevent.ActionReject, secevent.WithPatternID(id))
}

// recorder collects every event it receives.
type recorder struct {
	mu     sync.Mutex
	events []secevent.Event
	calls  int
}

func (r *recorder) Write(_ context.Context, events []secevent.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
	r.calls++
	return nil
}

func (r *recorder) snapshot() ([]secevent.Event, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]secevent.Event(nil), r.events...), r.calls
}

func TestAsync_FlushesOnClose(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	a := secevent.NewAsync(rec, secevent.AsyncOptions{BatchSize: 100, BatchTimeout: time.Hour})

	for _, id := range []string{"a", "b", "c"} {
		a.Emit(event(id))
	}
	require.NoError(t, a.Close(context.Background()))

	events, _ := rec.snapshot()
	require.Len(t, events, 3)
	assert.Equal(t, "a", events[0].PatternID)
	assert.Equal(t, "c", events[2].PatternID)
	assert.Zero(t, a.Dropped())
}

func TestAsync_BatchesBySize(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	a := secevent.NewAsync(rec, secevent.AsyncOptions{BatchSize: 2, BatchTimeout: time.Hour})

	for i := 0; i < 4; i++ {
		a.Emit(event("x"))
	}
	require.NoError(t, a.Close(context.Background()))

	events, calls := rec.snapshot()
	assert.Len(t, events, 4)
	assert.Equal(t, 2, calls)
}

func TestAsync_FlushesOnTimeout(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	a := secevent.NewAsync(rec, secevent.AsyncOptions{BatchSize: 100, BatchTimeout: 10 * time.Millisecond})
	t.Cleanup(func() { _ = a.Close(context.Background()) })

	a.Emit(event("x"))

	assert.Eventually(t, func() bool {
		events, _ := rec.snapshot()
		return len(events) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestAsync_DropsWhenFull(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	var mu sync.Mutex
	var written int

	w := secevent.WriterFunc(func(_ context.Context, events []secevent.Event) error {
		once.Do(func() { close(started) })
		<-release
		mu.Lock()
		written += len(events)
		mu.Unlock()
		return nil
	})

	a := secevent.NewAsync(w, secevent.AsyncOptions{BufferSize: 1, BatchSize: 1, BatchTimeout: time.Hour})

	a.Emit(event("first"))
	<-started // worker is now blocked inside Write

	a.Emit(event("queued"))
	a.Emit(event("dropped"))
	assert.Equal(t, uint64(1), a.Dropped())

	close(release)
	require.NoError(t, a.Close(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, written)
}

func TestAsync_EmitAfterCloseIsDropped(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	a := secevent.NewAsync(rec, secevent.AsyncOptions{})
	require.NoError(t, a.Close(context.Background()))

	assert.NotPanics(t, func() { a.Emit(event("late")) })
	assert.Equal(t, uint64(1), a.Dropped())
}

func TestAsync_CloseTwice(t *testing.T) {
	t.Parallel()

	a := secevent.NewAsync(&recorder{}, secevent.AsyncOptions{})
	require.NoError(t, a.Close(context.Background()))
	assert.ErrorIs(t, a.Close(context.Background()), secevent.ErrSinkClosed)
}

func TestAsync_CloseRespectsContext(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	defer close(release)

	w := secevent.WriterFunc(func(context.Context, []secevent.Event) error {
		<-release
		return nil
	})
	a := secevent.NewAsync(w, secevent.AsyncOptions{BatchSize: 1})
	a.Emit(event("slow"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, a.Close(ctx), context.DeadlineExceeded)
}

func TestAsync_ReportsWriteErrors(t *testing.T) {
	t.Parallel()

	storageErr := errors.New("backend down")
	w := new(MockWriter)
	w.On("Write", mock.Anything, mock.Anything).Return(storageErr)

	var mu sync.Mutex
	var got error
	a := secevent.NewAsync(w, secevent.AsyncOptions{
		OnError: func(err error) {
			mu.Lock()
			got = err
			mu.Unlock()
		},
	})

	a.Emit(event("x"))
	require.NoError(t, a.Close(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.ErrorIs(t, got, secevent.ErrWriteFailed)
	assert.ErrorIs(t, got, storageErr)
	w.AssertCalled(t, "Write", mock.Anything, mock.Anything)
}

func TestNewAsync_NilWriterPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { secevent.NewAsync(nil, secevent.AsyncOptions{}) })
}

func TestAsync_CloseDuringEmitAccountsForEveryEvent(t *testing.T) {
	t.Parallel()

	const emitters, perEmitter = 8, 200

	rec := &recorder{}
	a := secevent.NewAsync(rec, secevent.AsyncOptions{BufferSize: 64, BatchSize: 16, BatchTimeout: time.Millisecond})

	var wg sync.WaitGroup
	start := make(chan struct{})
	for range emitters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for range perEmitter {
				a.Emit(event("race"))
			}
		}()
	}

	close(start)
	require.NoError(t, a.Close(context.Background()))
	wg.Wait()

	events, _ := rec.snapshot()
	assert.Equal(t, uint64(emitters*perEmitter), uint64(len(events))+a.Dropped())
}
