package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool { t.stopped = true; return true }

func withFakeTimers(t *testing.T) *[]*fakeTimer {
	t.Helper()
	var timers []*fakeTimer
	orig := afterFunc
	afterFunc = func(d time.Duration, f func()) stopper {
		ft := &fakeTimer{d: d, f: f}
		timers = append(timers, ft)
		return ft
	}
	t.Cleanup(func() { afterFunc = orig })
	return &timers
}

func TestNotifier_ShowAndExpire(t *testing.T) {
	timers := withFakeTimers(t)
	n := New(5*time.Second, nil)

	n.Success("saved")
	b, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, Success, b.Kind)
	assert.Equal(t, "saved", b.Message)

	require.Len(t, *timers, 1)
	assert.Equal(t, 5*time.Second, (*timers)[0].d)

	(*timers)[0].f()
	_, ok = n.Current()
	assert.False(t, ok)
}

func TestNotifier_NewBannerReplacesOld(t *testing.T) {
	timers := withFakeTimers(t)
	var shown []Banner
	n := New(time.Second, func(b Banner) { shown = append(shown, b) })

	n.Success("first")
	n.Error("second")

	b, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, "second", b.Message)
	assert.Equal(t, Error, b.Kind)
	require.Len(t, shown, 2)

	first, second := (*timers)[0], (*timers)[1]
	assert.True(t, first.stopped)

	// a stale timer firing late must not clear the newer banner
	first.f()
	_, ok = n.Current()
	assert.True(t, ok)

	second.f()
	_, ok = n.Current()
	assert.False(t, ok)
}

func TestNotifier_Dismiss(t *testing.T) {
	timers := withFakeTimers(t)
	n := New(0, nil)

	n.Error("oops")
	n.Dismiss()
	_, ok := n.Current()
	assert.False(t, ok)
	assert.True(t, (*timers)[0].stopped)
	assert.Equal(t, DefaultTTL, (*timers)[0].d)

	n.Dismiss()
}

func TestNotifier_RealTimerExpires(t *testing.T) {
	n := New(10*time.Millisecond, nil)
	n.Success("brief")

	assert.Eventually(t, func() bool {
		_, ok := n.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestNotifier_ConcurrentShow(t *testing.T) {
	n := New(time.Hour, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n.Success("x")
			_, _ = n.Current()
		}()
	}
	wg.Wait()

	b, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, "x", b.Message)
	n.Dismiss()
}
