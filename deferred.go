package server

import "sort"

// deferredTask is a one-shot callback keyed to an absolute tick. The
// sequence number keeps same-tick tasks in scheduling order.
type deferredTask struct {
	dueTick uint64
	seq     uint64
	fn      func(*World)
}

// deferredQueue runs scheduled callbacks synchronously at the top of the
// tick they come due. Tasks scheduled while draining run no earlier than the
// next tick.
type deferredQueue struct {
	tasks   []deferredTask
	nextSeq uint64
}

func newDeferredQueue() *deferredQueue {
	return &deferredQueue{}
}

func (q *deferredQueue) Schedule(dueTick uint64, fn func(*World)) {
	if fn == nil {
		return
	}
	q.nextSeq++
	q.tasks = append(q.tasks, deferredTask{dueTick: dueTick, seq: q.nextSeq, fn: fn})
}

func (q *deferredQueue) Len() int {
	return len(q.tasks)
}

// RunDue executes every task due at or before the given tick, ordered by
// (dueTick, scheduling order).
func (q *deferredQueue) RunDue(w *World, tick uint64) {
	if len(q.tasks) == 0 {
		return
	}
	due := make([]deferredTask, 0)
	remaining := q.tasks[:0]
	for _, task := range q.tasks {
		if task.dueTick <= tick {
			due = append(due, task)
		} else {
			remaining = append(remaining, task)
		}
	}
	q.tasks = remaining
	if len(due) == 0 {
		return
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].dueTick != due[j].dueTick {
			return due[i].dueTick < due[j].dueTick
		}
		return due[i].seq < due[j].seq
	})
	for _, task := range due {
		task.fn(w)
	}
}
