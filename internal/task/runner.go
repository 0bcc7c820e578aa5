// ABOUTME: Single-task background runner for keeping interactive prompts responsive
// ABOUTME: Tracks one explicit task handle through idle/running/completed/failed
package task

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State is the lifecycle state of the tracked task handle
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

// ErrTaskRunning is returned by Submit while a task is still in flight
var ErrTaskRunning = errors.New("a task is already running")

// Task is a snapshot of the tracked handle. Err is set only in StateFailed.
type Task struct {
	ID         string
	Name       string
	State      State
	Err        error
	StartedAt  time.Time
	FinishedAt time.Time
}

// Runner executes at most one background task at a time. Submitting while a
// task is running is rejected rather than queued, and in-flight work cannot
// be cancelled; callers observe progress through Current.
type Runner struct {
	mu      sync.Mutex
	current Task
	wg      sync.WaitGroup
	logger  *zap.Logger
}

// NewRunner creates an idle runner
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		current: Task{State: StateIdle},
		logger:  logger,
	}
}

// Submit starts fn in the background and returns the new task snapshot.
// Returns ErrTaskRunning if a task is still in flight; a completed or failed
// handle is replaced by the new task.
func (r *Runner) Submit(name string, fn func(ctx context.Context) error) (Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current.State == StateRunning {
		return Task{}, ErrTaskRunning
	}

	t := Task{
		ID:        uuid.NewString(),
		Name:      name,
		State:     StateRunning,
		StartedAt: time.Now(),
	}
	r.current = t

	r.logger.Info("task started",
		zap.String("task_id", t.ID),
		zap.String("task_name", t.Name))

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		err := fn(context.Background())

		r.mu.Lock()
		defer r.mu.Unlock()
		r.current.FinishedAt = time.Now()
		if err != nil {
			r.current.State = StateFailed
			r.current.Err = err
			r.logger.Error("task failed",
				zap.String("task_id", t.ID),
				zap.String("task_name", t.Name),
				zap.Error(err))
			return
		}
		r.current.State = StateCompleted
		r.logger.Info("task completed",
			zap.String("task_id", t.ID),
			zap.String("task_name", t.Name))
	}()

	return t, nil
}

// Current returns a snapshot of the tracked task handle
func (r *Runner) Current() Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Wait blocks until the in-flight task, if any, has finished
func (r *Runner) Wait() {
	r.wg.Wait()
}
