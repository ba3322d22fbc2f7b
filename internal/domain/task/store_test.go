package task

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ChemPatent-Insight/internal/domain/analysis"
	apperrors "github.com/turtacn/ChemPatent-Insight/pkg/errors"
)

func TestStore_PutGet(t *testing.T) {
	s := NewStore()
	tk := New("patent.pdf")
	s.Put(tk)

	got, err := s.Get(tk.ID)
	require.NoError(t, err)
	assert.Equal(t, tk.ID, got.ID)
	assert.Equal(t, StatusPending, got.Status)
	assert.Equal(t, "patent.pdf", got.Filename)
	assert.Equal(t, 0, got.Progress)
}

func TestStore_Delete(t *testing.T) {
	s := NewStore()
	tk := New("patent.pdf")
	s.Put(tk)

	s.Delete(tk.ID)
	_, err := s.Get(tk.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeTaskNotFound))
	assert.Equal(t, 0, s.Len())

	s.Delete("no-such-task") // no-op
}

func TestStore_GetUnknown(t *testing.T) {
	s := NewStore()

	_, err := s.Get("no-such-task")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeTaskNotFound))
}

func TestStore_SnapshotIsolation(t *testing.T) {
	s := NewStore()
	tk := New("patent.pdf")
	s.Put(tk)

	snap, err := s.Get(tk.ID)
	require.NoError(t, err)
	snap.Progress = 99
	snap.Status = StatusFailed

	got, err := s.Get(tk.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Progress)
	assert.Equal(t, StatusPending, got.Status)
}

func TestStore_Lifecycle(t *testing.T) {
	s := NewStore()
	tk := New("patent.pdf")
	s.Put(tk)

	require.NoError(t, s.Transition(tk.ID, StatusProcessing))
	require.NoError(t, s.SetProgress(tk.ID, 40, "recognising formulas"))
	require.NoError(t, s.Complete(tk.ID, analysis.AssembleReport(analysis.ReportInput{})))

	got, err := s.Get(tk.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)
	assert.Equal(t, 100, got.Progress)
	require.NotNil(t, got.Result)
}

func TestStore_MonotonicProgress(t *testing.T) {
	s := NewStore()
	tk := New("patent.pdf")
	s.Put(tk)
	require.NoError(t, s.Transition(tk.ID, StatusProcessing))

	require.NoError(t, s.SetProgress(tk.ID, 70, ""))
	require.NoError(t, s.SetProgress(tk.ID, 40, ""))

	got, err := s.Get(tk.ID)
	require.NoError(t, err)
	assert.Equal(t, 70, got.Progress)
}

func TestStore_TerminalIsFinal(t *testing.T) {
	s := NewStore()
	tk := New("patent.pdf")
	s.Put(tk)
	require.NoError(t, s.Transition(tk.ID, StatusProcessing))
	require.NoError(t, s.Fail(tk.ID, "document is encrypted"))

	assert.Error(t, s.Transition(tk.ID, StatusProcessing))
	assert.Error(t, s.Complete(tk.ID, nil))
	assert.Error(t, s.SetProgress(tk.ID, 90, ""))

	got, err := s.Get(tk.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, got.Status)
	assert.Equal(t, "document is encrypted", got.Error)
}

func TestStore_PendingCanFail(t *testing.T) {
	s := NewStore()
	tk := New("patent.pdf")
	s.Put(tk)

	require.NoError(t, s.Fail(tk.ID, "queue saturated"))

	got, err := s.Get(tk.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, got.Status)
}

func TestStore_IllegalTransitions(t *testing.T) {
	s := NewStore()
	tk := New("patent.pdf")
	s.Put(tk)

	// pending cannot jump straight to completed
	assert.Error(t, s.Complete(tk.ID, nil))
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore()
	tk := New("patent.pdf")
	s.Put(tk)
	require.NoError(t, s.Transition(tk.ID, StatusProcessing))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			_ = s.SetProgress(tk.ID, p*5, "")
			_, _ = s.Get(tk.ID)
		}(i)
	}
	wg.Wait()

	got, err := s.Get(tk.ID)
	require.NoError(t, err)
	assert.LessOrEqual(t, got.Progress, 95)
}

func TestStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusFailed, true},
		{StatusPending, StatusCompleted, false},
		{StatusProcessing, StatusCompleted, true},
		{StatusProcessing, StatusFailed, true},
		{StatusProcessing, StatusPending, false},
		{StatusCompleted, StatusFailed, false},
		{StatusFailed, StatusProcessing, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransition(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}
