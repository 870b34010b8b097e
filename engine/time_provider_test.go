package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonotonicTimeProvider(t *testing.T) {
	provider := NewMonotonicTimeProvider()

	t1 := provider.Now()
	time.Sleep(5 * time.Millisecond)
	t2 := provider.Now()

	assert.True(t, t2.After(t1), "t1=%v t2=%v", t1, t2)
	assert.GreaterOrEqual(t, t2.Sub(t1), 5*time.Millisecond)
}

func TestMockTimeProvider(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(start)
	assert.True(t, mock.Now().Equal(start))

	mock.Advance(16 * time.Millisecond)
	mock.Advance(17 * time.Millisecond)
	assert.True(t, mock.Now().Equal(start.Add(33*time.Millisecond)))

	jump := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	mock.SetTime(jump)
	assert.True(t, mock.Now().Equal(jump))
}

func TestMockTimeProviderConcurrency(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(start)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = mock.Now()
			}
		}()
	}
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				mock.Advance(time.Millisecond)
			}
		}()
	}
	wg.Wait()

	assert.True(t, mock.Now().Equal(start.Add(250*time.Millisecond)))
}

func TestTimeProviderInterface(t *testing.T) {
	var _ TimeProvider = &MonotonicTimeProvider{}
	var _ TimeProvider = &MockTimeProvider{}
}
