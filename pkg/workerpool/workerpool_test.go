package workerpool

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDoRunsAllTasks(t *testing.T) {
	p := NewPool(4)

	var count int64
	tasks := make([]func(), 100)
	for i := range tasks {
		tasks[i] = func() { atomic.AddInt64(&count, 1) }
	}

	p.Do(tasks...)
	if count != 100 {
		t.Errorf("expected 100 tasks run, got %d", count)
	}
}

func TestDoSingleTaskInline(t *testing.T) {
	p := NewPool(2)

	ran := false
	p.Do(func() { ran = true })
	if !ran {
		t.Error("single task did not run")
	}
}

func TestDoNoTasks(t *testing.T) {
	NewPool(1).Do()
}

func TestDoIsReentrant(t *testing.T) {
	// A task submitting more work to the same pool must not deadlock
	// even when every worker is busy.
	p := NewPool(1)

	var count int64
	outer := make([]func(), 4)
	for i := range outer {
		outer[i] = func() {
			inner := []func(){
				func() { atomic.AddInt64(&count, 1) },
				func() { atomic.AddInt64(&count, 1) },
			}
			p.Do(inner...)
		}
	}
	p.Do(outer...)

	if count != 8 {
		t.Errorf("expected 8 inner tasks, got %d", count)
	}
}

func TestDoNestedWithIdleQueue(t *testing.T) {
	// Every worker sits inside an outer task's join while the inner tasks
	// wait in a queue that still has free slots. The join must drain the
	// queue itself; a fallback that only fires on a full queue hangs here.
	p := NewPool(2)

	var count int64
	outer := make([]func(), 2)
	for i := range outer {
		outer[i] = func() {
			inner := []func(){
				func() { atomic.AddInt64(&count, 1) },
				func() { atomic.AddInt64(&count, 1) },
			}
			p.Do(inner...)
		}
	}

	finished := make(chan struct{})
	go func() {
		p.Do(outer...)
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(10 * time.Second):
		t.Fatal("nested Do did not finish: pool deadlocked")
	}
	if count != 4 {
		t.Errorf("expected 4 inner tasks, got %d", count)
	}
}

func TestPoolSizeClamped(t *testing.T) {
	if s := NewPool(0).Size(); s != 1 {
		t.Errorf("Size() = %d, want 1", s)
	}
	if s := NewPool(-3).Size(); s != 1 {
		t.Errorf("Size() = %d, want 1", s)
	}
}

func TestDefaultIsSingleton(t *testing.T) {
	a, b := Default(), Default()
	if a != b {
		t.Error("Default() must return the same pool")
	}
	if a.Size() < 1 {
		t.Errorf("default pool size %d", a.Size())
	}
}
