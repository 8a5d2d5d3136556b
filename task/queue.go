// Package task runs single-shot background work and hands completions back to
// an owning goroutine, which drains them once per tick.
package task

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Tag identifies what a piece of work was computed against (e.g. a round), so
// the owner can recognise completions that no longer apply.
type Tag uint64

type completion struct {
	tag        Tag
	err        error
	onComplete func(error)
}

// Queue spawns one goroutine per RunAsync call and collects their completions
// in the order the work finished. Drain must only be called by the owner.
type Queue struct {
	done  chan completion
	group errgroup.Group
}

func NewQueue(capacity int) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{done: make(chan completion, capacity)}
}

// RunAsync starts work on its own goroutine. Once work returns (or panics) its
// result is queued for onComplete, which runs on the goroutine calling Drain.
// Started work always runs to completion.
func (q *Queue) RunAsync(tag Tag, work func() error, onComplete func(error)) {
	q.group.Go(func() error {
		err := run(work)
		q.done <- completion{tag: tag, err: err, onComplete: onComplete}
		return err
	})
}

func run(work func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return work()
}

// Drain invokes, in FIFO order, the callbacks of every completion already
// queued whose tag is accepted, and discards the rest. It never blocks.
// A nil accept takes everything.
func (q *Queue) Drain(accept func(Tag) bool) (ran, dropped int) {
	for {
		select {
		case c := <-q.done:
			if accept != nil && !accept(c.tag) {
				log.Debug().Uint64("tag", uint64(c.tag)).Err(c.err).Msg("dropping completion")
				dropped++
				continue
			}
			if c.onComplete != nil {
				c.onComplete(c.err)
			}
			ran++
		default:
			return ran, dropped
		}
	}
}

// Wait blocks until every spawned goroutine has queued its completion and
// returns the first work error. Completions still need draining; the queue
// capacity must cover the work started before Wait.
func (q *Queue) Wait() error {
	return q.group.Wait()
}
