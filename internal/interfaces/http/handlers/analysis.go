package handlers

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/ChemPatent-Insight/internal/application/analysis"
	"github.com/turtacn/ChemPatent-Insight/internal/infrastructure/monitoring/logging"
	apperrors "github.com/turtacn/ChemPatent-Insight/pkg/errors"
)

// AnalysisHandler exposes the task lifecycle over HTTP.
type AnalysisHandler struct {
	svc         *analysis.Service
	maxFileSize int64
	logger      logging.Logger
}

// NewAnalysisHandler builds the handler.  maxFileSize bounds uploads; zero
// means unbounded.
func NewAnalysisHandler(svc *analysis.Service, maxFileSize int64, logger logging.Logger) *AnalysisHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &AnalysisHandler{svc: svc, maxFileSize: maxFileSize, logger: logger.Named("http")}
}

// SubmitResponse is returned on successful submission.
type SubmitResponse struct {
	TaskID   string `json:"task_id"`
	Status   string `json:"status"`
	Filename string `json:"filename"`
}

// Submit accepts a PDF upload and queues it for analysis.
func (h *AnalysisHandler) Submit(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, apperrors.New(apperrors.ErrCodeBadRequest,
			"multipart form must carry a \"file\" part"))
		return
	}

	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		h.logger.Warn("upload rejected",
			logging.String("filename", fileHeader.Filename),
			logging.String("reason", "not a pdf"))
		RespondError(c, apperrors.New(apperrors.ErrCodeDocumentNotPDF,
			apperrors.DefaultMessageForCode(apperrors.ErrCodeDocumentNotPDF)).
			WithDetail(fileHeader.Filename))
		return
	}
	if h.maxFileSize > 0 && fileHeader.Size > h.maxFileSize {
		RespondError(c, apperrors.New(apperrors.ErrCodeDocumentTooLarge,
			apperrors.DefaultMessageForCode(apperrors.ErrCodeDocumentTooLarge)))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		RespondError(c, apperrors.Wrap(err, apperrors.ErrCodeInternal, "upload unreadable"))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		RespondError(c, apperrors.Wrap(err, apperrors.ErrCodeInternal, "upload unreadable"))
		return
	}

	t, err := h.svc.Submit(filepath.Base(fileHeader.Filename), data)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondAccepted(c, SubmitResponse{
		TaskID:   t.ID,
		Status:   string(t.Status),
		Filename: t.Filename,
	})
}

// Status returns the task snapshot, including progress and any failure
// reason.  The attached result is included once the task completes.
func (h *AnalysisHandler) Status(c *gin.Context) {
	t, err := h.svc.GetStatus(c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, t)
}

// Result returns the analysis report of a completed task.
func (h *AnalysisHandler) Result(c *gin.Context) {
	report, err := h.svc.GetResult(c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, report)
}

// Report returns the presentation-level report document.
func (h *AnalysisHandler) Report(c *gin.Context) {
	doc, err := h.svc.BuildReport(c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, doc)
}

// Health reports liveness.
func (h *AnalysisHandler) Health(c *gin.Context) {
	RespondOK(c, gin.H{"status": "ok"})
}

// Ready reports readiness.  The pipeline has no external dependencies to
// probe, so readiness follows liveness.
func (h *AnalysisHandler) Ready(c *gin.Context) {
	RespondOK(c, gin.H{"status": "ready"})
}
