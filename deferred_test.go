package server

import (
	"testing"
)

func TestDeferredTasksRunInOrder(t *testing.T) {
	w, _, _ := newTestWorld(1)
	var order []string

	w.deferred.Schedule(3, func(*World) { order = append(order, "late") })
	w.deferred.Schedule(1, func(*World) { order = append(order, "early") })
	w.deferred.Schedule(1, func(*World) { order = append(order, "early-2") })

	w.deferred.RunDue(w, 2)
	if len(order) != 2 || order[0] != "early" || order[1] != "early-2" {
		t.Fatalf("order after tick 2 = %v", order)
	}

	w.deferred.RunDue(w, 3)
	if len(order) != 3 || order[2] != "late" {
		t.Fatalf("order after tick 3 = %v", order)
	}
	if w.deferred.Len() != 0 {
		t.Fatalf("queue not drained: %d tasks left", w.deferred.Len())
	}
}

func TestDeferredTaskScheduledWhileDrainingWaits(t *testing.T) {
	w, _, _ := newTestWorld(1)
	ran := 0

	w.deferred.Schedule(1, func(w *World) {
		ran++
		w.deferred.Schedule(1, func(*World) { ran++ })
	})

	w.deferred.RunDue(w, 1)
	if ran != 1 {
		t.Fatalf("nested task ran in the same drain: ran=%d", ran)
	}
	w.deferred.RunDue(w, 1)
	if ran != 2 {
		t.Fatalf("nested task never ran: ran=%d", ran)
	}
}

func TestDeferredNilTaskIgnored(t *testing.T) {
	w, _, _ := newTestWorld(1)
	w.deferred.Schedule(1, nil)
	if w.deferred.Len() != 0 {
		t.Fatalf("nil task was queued")
	}
}
