package timectx

import (
	"sync"

	"github.com/vidmix/vidmix/internal/logx"
)

// Barrier records outstanding asynchronous prerequisites and reports
// whether progress must pause. Independent setup paths (registering an
// input, fetching a font) each open a [BlockingTask]; when the last open
// task completes, the barrier fires its unblocked callback exactly once.
//
// There is no timeout or forced release: a task whose Done is never called
// blocks the owner permanently. Task creation and completion are logged at
// debug level so a permanent stall is diagnosable.
type Barrier struct {
	mu    sync.Mutex
	tasks map[*BlockingTask]struct{}

	// onUnblocked fires synchronously after the Done call that empties the
	// working set, at most once per blocked-to-unblocked transition.
	onUnblocked func()
}

// NewBarrier creates a barrier. onUnblocked may be nil.
func NewBarrier(onUnblocked func()) *Barrier {
	return &Barrier{
		tasks:       make(map[*BlockingTask]struct{}),
		onUnblocked: onUnblocked,
	}
}

// NewBlockingTask appends a task record to the working set and returns its
// handle. The handle's Done releases exactly this record.
func (b *Barrier) NewBlockingTask() *BlockingTask {
	t := &BlockingTask{barrier: b}

	b.mu.Lock()
	b.tasks[t] = struct{}{}
	n := len(b.tasks)
	b.mu.Unlock()

	logx.Logger().Debug("timectx: blocking task opened", "outstanding", n)
	return t
}

// IsBlocked reports whether the working set is non-empty.
func (b *Barrier) IsBlocked() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.tasks) > 0
}

// complete removes t from the working set. Returns whether the removal
// emptied a non-empty set, i.e. whether the unblocked callback must fire.
func (b *Barrier) complete(t *BlockingTask) bool {
	b.mu.Lock()
	if _, ok := b.tasks[t]; !ok {
		// Already completed, from the other of the cleanup/completion
		// paths. Idempotent removal, not an error.
		b.mu.Unlock()
		return false
	}
	delete(b.tasks, t)
	drained := len(b.tasks) == 0
	n := len(b.tasks)
	b.mu.Unlock()

	logx.Logger().Debug("timectx: blocking task done", "outstanding", n)
	return drained
}

// BlockingTask represents one outstanding asynchronous prerequisite.
//
// Done must be invoked once the prerequisite settles, success or failure;
// the failure itself travels through the caller's own error channel, the
// barrier only cares that the task is closed. Calling Done more than once,
// or concurrently from an unmount-cleanup path and a completion callback,
// is safe: the first call removes the record, later calls are no-ops.
type BlockingTask struct {
	barrier *Barrier
}

// Done releases the task. Safe to call multiple times.
func (t *BlockingTask) Done() {
	if t == nil || t.barrier == nil {
		return
	}
	if t.barrier.complete(t) {
		if fn := t.barrier.onUnblocked; fn != nil {
			fn()
		}
	}
}
