// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package rowsource

import (
	"cmp"
	"sync"

	"github.com/addrummond/heap"
)

// A WorkerPool is a fixed-size [Runner] with an unbounded, priority-ordered
// pending queue. Submit never blocks: tasks queue until a worker frees up,
// which is what lets a [Source] treat submission as fire-and-forget. Lower
// priority values run first and tasks of equal priority start in submission
// order, though tasks still run concurrently with each other once picked
// up.
//
// The zero value is not usable; create pools with [NewWorkerPool] and
// release them with [WorkerPool.Close].
type WorkerPool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending heap.Heap[pendingTask, heap.Min]
	seq     uint64
	closed  bool
	wg      sync.WaitGroup
}

type pendingTask struct {
	priority int
	seq      uint64
	run      func()
}

func (a *pendingTask) Cmp(b *pendingTask) int {
	if c := cmp.Compare(a.priority, b.priority); c != 0 {
		return c
	}
	return cmp.Compare(a.seq, b.seq)
}

// NewWorkerPool starts a pool with the given number of worker goroutines.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		panic("worker count must be positive")
	}
	p := &WorkerPool{}
	p.cond = sync.NewCond(&p.mu)
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.work()
	}
	return p
}

// Submit enqueues task at the default priority. It never blocks.
func (p *WorkerPool) Submit(task func()) {
	p.SubmitWithPriority(task, 0)
}

// SubmitWithPriority enqueues task with an explicit priority; lower values
// run first. It never blocks. Submitting to a closed pool panics.
func (p *WorkerPool) SubmitWithPriority(task func(), priority int) {
	if task == nil {
		panic("task must be non-nil")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		panic("submit on closed pool")
	}
	p.seq++
	heap.PushOrderable(&p.pending, pendingTask{
		priority: priority,
		seq:      p.seq,
		run:      task,
	})
	p.cond.Signal()
}

func (p *WorkerPool) work() {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		t, ok := heap.PopOrderable(&p.pending)
		for !ok && !p.closed {
			p.cond.Wait()
			t, ok = heap.PopOrderable(&p.pending)
		}
		p.mu.Unlock()
		if !ok {
			return
		}
		t.run()
	}
}

// Close stops accepting new tasks, lets already-queued tasks drain, and
// joins the workers before returning. Calling Close again has no effect.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	alreadyClosed := p.closed
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()
	if !alreadyClosed {
		p.wg.Wait()
	}
}
