package task

import (
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/ChemPatent-Insight/internal/domain/analysis"
)

// Status is the lifecycle state of an analysis task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// IsTerminal reports whether no further transitions are allowed from s.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// validTransitions encodes the lifecycle state machine.  Terminal states
// have no outgoing edges.
var validTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusFailed},
	StatusProcessing: {StatusCompleted, StatusFailed},
}

// CanTransition reports whether moving from s to next is legal.
func (s Status) CanTransition(next Status) bool {
	for _, t := range validTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Task is one document analysis job.  Result is set only in the completed
// state; Error only in the failed state.  Progress is a percentage that
// never decreases over a task's lifetime.
type Task struct {
	ID        string                   `json:"task_id"`
	Filename  string                   `json:"filename"`
	Status    Status                   `json:"status"`
	Progress  int                      `json:"progress"`
	Message   string                   `json:"message"`
	Result    *analysis.AnalysisReport `json:"result,omitempty"`
	Error     string                   `json:"error,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// New creates a pending task for the given upload.
func New(filename string) *Task {
	now := time.Now().UTC()
	return &Task{
		ID:        uuid.NewString(),
		Filename:  filename,
		Status:    StatusPending,
		Progress:  0,
		Message:   "queued for analysis",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a shallow copy safe to hand outside the store.  The report
// pointer is shared; reports are immutable once attached.
func (t *Task) Clone() *Task {
	cp := *t
	return &cp
}
