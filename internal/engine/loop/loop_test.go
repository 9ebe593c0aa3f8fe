package loop_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ikon/internal/engine/loop"
)

func TestLoop_PostRunsInOrder(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		l := loop.New()
		defer l.Close()

		var got []int
		for i := range 5 {
			require.True(t, l.Post(func() { got = append(got, i) }))
		}

		synctest.Wait()
		assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
	})
}

func TestLoop_PostIsNeverSynchronous(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		l := loop.New()
		defer l.Close()

		ran := false
		done := make(chan struct{})
		l.Post(func() {
			l.Post(func() { ran = true })
			assert.False(t, ran)
			close(done)
		})

		<-done
		synctest.Wait()
		assert.True(t, ran)
	})
}

func TestLoop_AfterFunc(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		l := loop.New()
		defer l.Close()

		var mu sync.Mutex
		fired := false
		l.AfterFunc(750*time.Millisecond, func() {
			mu.Lock()
			fired = true
			mu.Unlock()
		})

		time.Sleep(749 * time.Millisecond)
		synctest.Wait()
		mu.Lock()
		assert.False(t, fired)
		mu.Unlock()

		time.Sleep(time.Millisecond)
		synctest.Wait()
		mu.Lock()
		assert.True(t, fired)
		mu.Unlock()
	})
}

func TestLoop_TimerStop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		l := loop.New()
		defer l.Close()

		fired := false
		timer := l.AfterFunc(time.Second, func() { fired = true })
		timer.Stop()

		time.Sleep(2 * time.Second)
		synctest.Wait()
		assert.False(t, fired)

		var nilTimer *loop.Timer
		assert.NotPanics(t, nilTimer.Stop)
	})
}

func TestLoop_StopAfterPost(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		l := loop.New()
		defer l.Close()

		fired := false
		var timer *loop.Timer
		block := make(chan struct{})

		// Hold the loop busy so the timer callback is queued but not yet run.
		l.Post(func() { <-block })
		timer = l.AfterFunc(time.Millisecond, func() { fired = true })
		time.Sleep(2 * time.Millisecond)
		timer.Stop()
		close(block)

		synctest.Wait()
		assert.False(t, fired)
	})
}

func TestLoop_Close(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		l := loop.New()
		l.Close()
		l.Close()

		assert.False(t, l.Post(func() {}))
	})
}
