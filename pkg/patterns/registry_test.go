package patterns_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/inputguard/pkg/patterns"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	first := patterns.Default()
	second := patterns.MustCompile("v2", nil)

	reg := patterns.NewRegistry(first)
	assert.Same(t, first, reg.Load())

	prev, err := reg.Swap(second)
	require.NoError(t, err)
	assert.Same(t, first, prev)
	assert.Same(t, second, reg.Load())

	_, err = reg.Swap(nil)
	assert.ErrorIs(t, err, patterns.ErrNilTable)
	assert.Same(t, second, reg.Load())

	assert.Panics(t, func() { patterns.NewRegistry(nil) })
}

func TestRegistryConcurrentSwap(t *testing.T) {
	t.Parallel()

	a := patterns.MustCompile("a", nil)
	b := patterns.MustCompile("b", nil)
	reg := patterns.NewRegistry(a)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				if i%2 == 0 {
					_, _ = reg.Swap(b)
				}
				v := reg.Load().Version()
				assert.Contains(t, []string{"a", "b"}, v)
			}
		}()
	}
	wg.Wait()
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()
	assert.Equal(t, patterns.DefaultVersion, patterns.DefaultRegistry().Load().Version())
}
