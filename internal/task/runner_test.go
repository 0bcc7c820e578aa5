// ABOUTME: Tests for the single-task background runner
// ABOUTME: Covers lifecycle states, rejection while running, and handle replacement
package task

import (
	"context"
	"errors"
	"testing"
)

func TestRunner_InitiallyIdle(t *testing.T) {
	r := NewRunner(nil)

	current := r.Current()
	if current.State != StateIdle {
		t.Errorf("new runner state = %q, want %q", current.State, StateIdle)
	}
	if current.ID != "" {
		t.Errorf("idle handle should have no ID, got %q", current.ID)
	}
}

func TestRunner_CompletesTask(t *testing.T) {
	r := NewRunner(nil)

	ran := false
	task, err := r.Submit("convert", func(ctx context.Context) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if task.ID == "" {
		t.Error("submitted task should have an ID")
	}
	if task.Name != "convert" {
		t.Errorf("task name = %q", task.Name)
	}

	r.Wait()

	if !ran {
		t.Error("task function never ran")
	}
	current := r.Current()
	if current.State != StateCompleted {
		t.Errorf("state = %q, want %q", current.State, StateCompleted)
	}
	if current.Err != nil {
		t.Errorf("completed task should carry no error, got %v", current.Err)
	}
	if current.FinishedAt.IsZero() {
		t.Error("completed task should record a finish time")
	}
}

func TestRunner_RecordsFailure(t *testing.T) {
	r := NewRunner(nil)

	wantErr := errors.New("conversion blew up")
	if _, err := r.Submit("convert", func(ctx context.Context) error {
		return wantErr
	}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	r.Wait()

	current := r.Current()
	if current.State != StateFailed {
		t.Errorf("state = %q, want %q", current.State, StateFailed)
	}
	if !errors.Is(current.Err, wantErr) {
		t.Errorf("task error = %v, want %v", current.Err, wantErr)
	}
}

func TestRunner_RejectsWhileRunning(t *testing.T) {
	r := NewRunner(nil)

	release := make(chan struct{})
	if _, err := r.Submit("slow", func(ctx context.Context) error {
		<-release
		return nil
	}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if _, err := r.Submit("second", func(ctx context.Context) error { return nil }); !errors.Is(err, ErrTaskRunning) {
		t.Errorf("second Submit while running should return ErrTaskRunning, got %v", err)
	}

	close(release)
	r.Wait()

	if state := r.Current().State; state != StateCompleted {
		t.Errorf("state after release = %q, want %q", state, StateCompleted)
	}
}

func TestRunner_ReplacesFinishedHandle(t *testing.T) {
	r := NewRunner(nil)

	first, err := r.Submit("first", func(ctx context.Context) error { return nil })
	if err != nil {
		t.Fatalf("first Submit failed: %v", err)
	}
	r.Wait()

	second, err := r.Submit("second", func(ctx context.Context) error { return nil })
	if err != nil {
		t.Fatalf("Submit after completion should succeed, got %v", err)
	}
	if second.ID == first.ID {
		t.Error("replacement task should get a fresh ID")
	}
	r.Wait()
}
