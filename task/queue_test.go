package task

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func drainUntil(t *testing.T, q *Queue, accept func(Tag) bool, want int) (ran, dropped int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for ran+dropped < want {
		require.True(t, time.Now().Before(deadline), "completions did not arrive in time")
		r, d := q.Drain(accept)
		ran += r
		dropped += d
		time.Sleep(time.Millisecond)
	}
	return ran, dropped
}

func TestRunAsync(t *testing.T) {
	t.Run("callback runs on the draining goroutine only", func(t *testing.T) {
		q := NewQueue(4)
		release := make(chan struct{})
		called := false

		q.RunAsync(1, func() error {
			<-release
			return nil
		}, func(err error) {
			require.NoError(t, err)
			called = true
		})

		ran, dropped := q.Drain(nil)
		require.Zero(t, ran, "Nothing completes while work is blocked")
		require.Zero(t, dropped)
		require.False(t, called)

		close(release)
		drainUntil(t, q, nil, 1)
		require.True(t, called)
	})

	t.Run("work error reaches the callback", func(t *testing.T) {
		q := NewQueue(1)
		boom := errors.New("boom")
		var got error

		q.RunAsync(1, func() error { return boom }, func(err error) { got = err })
		drainUntil(t, q, nil, 1)

		require.ErrorIs(t, got, boom)
		require.ErrorIs(t, q.Wait(), boom)
	})

	t.Run("panic becomes an error", func(t *testing.T) {
		q := NewQueue(1)
		var got error

		q.RunAsync(1, func() error { panic("broken tree") }, func(err error) { got = err })
		drainUntil(t, q, nil, 1)

		require.Error(t, got)
		require.Contains(t, got.Error(), "broken tree")
	})

	t.Run("completions arrive in finish order", func(t *testing.T) {
		q := NewQueue(2)
		slow := make(chan struct{})
		order := []int{}

		q.RunAsync(1, func() error {
			<-slow
			return nil
		}, func(error) { order = append(order, 1) })
		q.RunAsync(1, func() error { return nil }, func(error) { order = append(order, 2) })

		drainUntil(t, q, nil, 1)
		close(slow)
		drainUntil(t, q, nil, 1)

		require.Equal(t, []int{2, 1}, order, "Faster work should complete first")
	})

	t.Run("stale tags are dropped", func(t *testing.T) {
		q := NewQueue(2)
		current := Tag(2)
		called := []Tag{}

		q.RunAsync(1, func() error { return nil }, func(error) { called = append(called, 1) })
		q.RunAsync(2, func() error { return nil }, func(error) { called = append(called, 2) })
		require.NoError(t, q.Wait())

		ran, dropped := q.Drain(func(tag Tag) bool { return tag == current })

		require.Equal(t, 1, ran)
		require.Equal(t, 1, dropped)
		require.Equal(t, []Tag{2}, called)
	})
}
