package task

import (
	"sync"
	"time"

	"github.com/turtacn/ChemPatent-Insight/internal/domain/analysis"
	apperrors "github.com/turtacn/ChemPatent-Insight/pkg/errors"
)

// Store keeps tasks in process memory.  All methods are safe for concurrent
// use.  Contents are volatile; a restart loses every task.
type Store struct {
	mu    sync.RWMutex
	tasks map[string]*Task
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{tasks: make(map[string]*Task)}
}

// Put registers a new task.  The caller keeps no reference; subsequent
// mutations go through the store.
func (s *Store) Put(t *Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[t.ID] = t.Clone()
}

// Delete removes a task.  Used to roll back a registration whose enqueue was
// rejected; deleting an unknown id is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tasks, id)
}

// Get returns a snapshot of the task, or a task-not-found error.
func (s *Store) Get(id string) (*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeTaskNotFound, "task not found").WithDetail(id)
	}
	return t.Clone(), nil
}

// Len returns the number of tasks held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// SetProgress advances a task's progress and message inside the processing
// state.  Progress is clamped monotonic: a value lower than the current one
// is ignored rather than rolled back.  Calls against terminal tasks are
// rejected.
func (s *Store) SetProgress(id string, progress int, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return apperrors.New(apperrors.ErrCodeTaskNotFound, "task not found").WithDetail(id)
	}
	if t.Status.IsTerminal() {
		return apperrors.New(apperrors.ErrCodeConflict, "task already finished").WithDetail(id)
	}
	if progress > t.Progress {
		t.Progress = progress
	}
	if message != "" {
		t.Message = message
	}
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// Transition moves a task to the next lifecycle state, enforcing the state
// machine.  Illegal transitions, including any move out of a terminal
// state, fail with a conflict error.
func (s *Store) Transition(id string, next Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transitionLocked(id, next)
}

func (s *Store) transitionLocked(id string, next Status) error {
	t, ok := s.tasks[id]
	if !ok {
		return apperrors.New(apperrors.ErrCodeTaskNotFound, "task not found").WithDetail(id)
	}
	if !t.Status.CanTransition(next) {
		return apperrors.New(apperrors.ErrCodeConflict, "illegal status transition").
			WithDetail(string(t.Status) + " -> " + string(next))
	}
	t.Status = next
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// Complete transitions the task to completed and attaches its report in a
// single step, so readers never observe a completed task without a result.
func (s *Store) Complete(id string, report *analysis.AnalysisReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.transitionLocked(id, StatusCompleted); err != nil {
		return err
	}
	t := s.tasks[id]
	t.Result = report
	t.Progress = 100
	t.Message = "analysis complete"
	return nil
}

// Fail transitions the task to failed and records the reason.  A pending
// task may fail directly when rejected before a worker picks it up.
func (s *Store) Fail(id string, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.transitionLocked(id, StatusFailed); err != nil {
		return err
	}
	t := s.tasks[id]
	t.Error = reason
	t.Message = "analysis failed"
	return nil
}
