package analysis

import (
	"context"
	"fmt"
	"sync"
	"time"

	domain "github.com/turtacn/ChemPatent-Insight/internal/domain/analysis"
	"github.com/turtacn/ChemPatent-Insight/internal/domain/document"
	"github.com/turtacn/ChemPatent-Insight/internal/domain/task"
	"github.com/turtacn/ChemPatent-Insight/internal/infrastructure/monitoring/logging"
	promm "github.com/turtacn/ChemPatent-Insight/internal/infrastructure/monitoring/prometheus"
	apperrors "github.com/turtacn/ChemPatent-Insight/pkg/errors"
)

// Progress checkpoints reported while a task moves through the pipeline.
const (
	progressExtracted  = 10
	progressFormulas   = 40
	progressStructures = 70
	progressElements   = 90
)

// Config sizes the worker pool.
type Config struct {
	Concurrency int
	QueueDepth  int
}

// Service runs the analysis pipeline asynchronously over a bounded worker
// pool.  Submissions return immediately with a task id; workers drive each
// task through extraction, formula recognition, structure conversion and
// element parsing, then attach the assembled report.
type Service struct {
	cfg        Config
	store      *task.Store
	extractor  document.Extractor
	formulas   *domain.FormulaRecognizer
	structures domain.StructureRecognizer
	elements   *domain.ElementParser
	metrics    *promm.Metrics
	logger     logging.Logger

	queue chan job
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool

	baseCtx context.Context
	cancel  context.CancelFunc
}

type job struct {
	taskID string
	data   []byte
}

// NewService wires the pipeline and starts its workers.  metrics may be nil
// when metrics are disabled.
func NewService(
	cfg Config,
	store *task.Store,
	ex document.Extractor,
	formulas *domain.FormulaRecognizer,
	structures domain.StructureRecognizer,
	elements *domain.ElementParser,
	metrics *promm.Metrics,
	logger logging.Logger,
) *Service {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.QueueDepth <= 0 {
		cfg.QueueDepth = 1
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Service{
		cfg:        cfg,
		store:      store,
		extractor:  ex,
		formulas:   formulas,
		structures: structures,
		elements:   elements,
		metrics:    metrics,
		logger:     logger.Named("analysis"),
		queue:      make(chan job, cfg.QueueDepth),
		baseCtx:    ctx,
		cancel:     cancel,
	}
	for i := 0; i < cfg.Concurrency; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}
	return s
}

// Submit accepts a document for analysis and returns the pending task.  It
// never blocks: when the queue is full the submission is rejected with a
// queue-saturated error and no task is recorded.
func (s *Service) Submit(filename string, data []byte) (*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, apperrors.New(apperrors.ErrCodeConflict, "service is shutting down")
	}

	// Register the task before enqueuing so a worker that dequeues the job
	// immediately always finds its record.  Rejections roll the record back,
	// leaving no trace of refused submissions.
	t := task.New(filename)
	s.store.Put(t)
	if s.metrics != nil {
		s.metrics.QueueDepth.Inc()
	}
	select {
	case s.queue <- job{taskID: t.ID, data: data}:
	default:
		s.store.Delete(t.ID)
		if s.metrics != nil {
			s.metrics.QueueDepth.Dec()
			s.metrics.TasksRejected.Inc()
		}
		return nil, apperrors.New(apperrors.ErrCodeQueueSaturated,
			apperrors.DefaultMessageForCode(apperrors.ErrCodeQueueSaturated))
	}

	if s.metrics != nil {
		s.metrics.TasksSubmitted.Inc()
	}
	s.logger.Info("task submitted",
		logging.String("task_id", t.ID),
		logging.String("filename", filename),
		logging.Int("bytes", len(data)))
	return t.Clone(), nil
}

// GetStatus returns a snapshot of the task.
func (s *Service) GetStatus(id string) (*task.Task, error) {
	return s.store.Get(id)
}

// GetResult returns the report of a completed task.  Pending and processing
// tasks yield a not-ready error; failed tasks yield a task-failed error
// carrying the failure reason.
func (s *Service) GetResult(id string) (*domain.AnalysisReport, error) {
	t, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	switch t.Status {
	case task.StatusCompleted:
		return t.Result, nil
	case task.StatusFailed:
		return nil, apperrors.New(apperrors.ErrCodeTaskFailed,
			apperrors.DefaultMessageForCode(apperrors.ErrCodeTaskFailed)).WithDetail(t.Error)
	default:
		return nil, apperrors.New(apperrors.ErrCodeTaskNotReady,
			apperrors.DefaultMessageForCode(apperrors.ErrCodeTaskNotReady)).
			WithDetail(fmt.Sprintf("status %s, progress %d%%", t.Status, t.Progress))
	}
}

// Close stops accepting submissions, drains queued tasks and waits for the
// workers to finish.
func (s *Service) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.queue)
	s.mu.Unlock()

	s.wg.Wait()
	s.cancel()
}

func (s *Service) worker(id int) {
	defer s.wg.Done()
	log := s.logger.With(logging.Int("worker", id))
	for j := range s.queue {
		if s.metrics != nil {
			s.metrics.QueueDepth.Dec()
			s.metrics.ActiveWorkers.Inc()
		}
		s.process(log, j)
		if s.metrics != nil {
			s.metrics.ActiveWorkers.Dec()
		}
	}
}

// process drives one task through the pipeline.  Any panic in a stage marks
// the task failed instead of killing the worker.
func (s *Service) process(log logging.Logger, j job) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("pipeline panic", logging.String("task_id", j.taskID), logging.Any("panic", r))
			s.fail(j.taskID, fmt.Sprintf("internal error: %v", r))
		}
	}()

	if err := s.store.Transition(j.taskID, task.StatusProcessing); err != nil {
		log.Warn("task not startable", logging.String("task_id", j.taskID), logging.Err(err))
		return
	}

	extraction, err := s.timedExtract(j.data)
	if err != nil {
		log.Warn("extraction failed", logging.String("task_id", j.taskID), logging.Err(err))
		s.fail(j.taskID, err.Error())
		return
	}
	_ = s.store.SetProgress(j.taskID, progressExtracted, "document content extracted")

	formulas := s.timedStage("formulas", func() []domain.ChemicalFormula {
		return s.formulas.Recognize(extraction.Pages)
	})
	_ = s.store.SetProgress(j.taskID, progressFormulas, "chemical formulas recognised")

	structures, err := s.structures.Recognize(s.baseCtx, extraction.Images)
	if err != nil {
		log.Warn("structure conversion failed", logging.String("task_id", j.taskID), logging.Err(err))
		s.fail(j.taskID, err.Error())
		return
	}
	_ = s.store.SetProgress(j.taskID, progressStructures, "structure images converted")

	elements := s.elements.Parse(extraction)
	_ = s.store.SetProgress(j.taskID, progressElements, "patent elements parsed")
	report := domain.AssembleReport(domain.ReportInput{
		Formulas:   formulas,
		Structures: structures,
		Elements:   elements,
		PageCount:  extraction.PageCount(),
		ImageCount: len(extraction.Images),
	})

	if err := s.store.Complete(j.taskID, report); err != nil {
		log.Warn("completion rejected", logging.String("task_id", j.taskID), logging.Err(err))
		return
	}
	if s.metrics != nil {
		s.metrics.TasksFinished.WithLabelValues(string(task.StatusCompleted)).Inc()
	}
	log.Info("task completed",
		logging.String("task_id", j.taskID),
		logging.Int("formulas", len(formulas)),
		logging.Int("structures", len(structures)))
}

func (s *Service) timedExtract(data []byte) (*document.Extraction, error) {
	start := time.Now()
	ext, err := s.extractor.Extract(s.baseCtx, data)
	if s.metrics != nil {
		s.metrics.StageDuration.WithLabelValues("extract").Observe(time.Since(start).Seconds())
	}
	return ext, err
}

func (s *Service) timedStage(stage string, fn func() []domain.ChemicalFormula) []domain.ChemicalFormula {
	start := time.Now()
	out := fn()
	if s.metrics != nil {
		s.metrics.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	}
	return out
}

func (s *Service) fail(id, reason string) {
	if err := s.store.Fail(id, reason); err != nil {
		s.logger.Warn("failure not recorded", logging.String("task_id", id), logging.Err(err))
		return
	}
	if s.metrics != nil {
		s.metrics.TasksFinished.WithLabelValues(string(task.StatusFailed)).Inc()
	}
}
