package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalysis "github.com/turtacn/ChemPatent-Insight/internal/application/analysis"
	"github.com/turtacn/ChemPatent-Insight/internal/config"
	domain "github.com/turtacn/ChemPatent-Insight/internal/domain/analysis"
	"github.com/turtacn/ChemPatent-Insight/internal/domain/document"
	"github.com/turtacn/ChemPatent-Insight/internal/domain/task"
	"github.com/turtacn/ChemPatent-Insight/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemPatent-Insight/internal/interfaces/http/handlers"
)

type stubExtractor struct {
	ext *document.Extraction
	err error
}

func (s *stubExtractor) Extract(ctx context.Context, data []byte) (*document.Extraction, error) {
	return s.ext, s.err
}

func testRouter(t *testing.T, ex document.Extractor) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Mode = "test"
	cfg.Metrics.Enabled = false

	lib := domain.DefaultPatternLibrary()
	svc := appanalysis.NewService(
		appanalysis.Config{Concurrency: 2, QueueDepth: 8},
		task.NewStore(),
		ex,
		domain.NewFormulaRecognizer(lib, cfg.Extraction.MaxFormulas, nil),
		domain.NewPlaceholderRecognizer(lib, nil),
		domain.NewElementParser(lib, cfg.Extraction.MaxElementLength, nil),
		nil,
		nil,
	)
	t.Cleanup(svc.Close)

	srv := httptest.NewServer(NewRouter(cfg, svc, nil, logging.NewNopLogger()))
	t.Cleanup(srv.Close)
	return srv
}

func uploadPDF(t *testing.T, url, filename string, content []byte) *http.Response {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	resp, err := http.Post(url+"/api/v1/patents/upload", w.FormDataContentType(), &body)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestSubmitAndPollLifecycle(t *testing.T) {
	srv := testRouter(t, &stubExtractor{ext: &document.Extraction{
		Pages: []document.Page{
			{Number: 1, Text: "Abstract: A benzene composition containing C6H6 and NaCl for industrial use.\n\n"},
		},
	}})

	resp := uploadPDF(t, srv.URL, "patent.pdf", []byte("%PDF-1.4"))
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var submitted handlers.SubmitResponse
	decodeJSON(t, resp, &submitted)
	require.NotEmpty(t, submitted.TaskID)
	assert.Equal(t, "pending", submitted.Status)

	require.Eventually(t, func() bool {
		r, err := http.Get(srv.URL + "/api/v1/patents/" + submitted.TaskID + "/status")
		if err != nil {
			return false
		}
		var tk task.Task
		decodeJSON(t, r, &tk)
		return tk.Status == task.StatusCompleted
	}, 2*time.Second, 20*time.Millisecond)

	r, err := http.Get(srv.URL + "/api/v1/patents/" + submitted.TaskID + "/result")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, r.StatusCode)
	var report domain.AnalysisReport
	decodeJSON(t, r, &report)
	assert.Equal(t, 2, report.Summary.TotalCompounds)

	r, err = http.Get(srv.URL + "/api/v1/patents/" + submitted.TaskID + "/report")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, r.StatusCode)
	var doc appanalysis.ReportDocument
	decodeJSON(t, r, &doc)
	assert.NotEmpty(t, doc.ExecutiveSummary)
}

func TestSubmitRejectsNonPDF(t *testing.T) {
	srv := testRouter(t, &stubExtractor{ext: &document.Extraction{}})

	resp := uploadPDF(t, srv.URL, "notes.txt", []byte("plain text"))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var er handlers.ErrorResponse
	decodeJSON(t, resp, &er)
	assert.Equal(t, "DOC_005", er.Code)
}

func TestSubmitMissingFilePart(t *testing.T) {
	srv := testRouter(t, &stubExtractor{ext: &document.Extraction{}})

	resp, err := http.Post(srv.URL+"/api/v1/patents/upload", "application/json", bytes.NewBufferString("{}"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStatusUnknownTask(t *testing.T) {
	srv := testRouter(t, &stubExtractor{ext: &document.Extraction{}})

	resp, err := http.Get(srv.URL + "/api/v1/patents/does-not-exist/status")
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var er handlers.ErrorResponse
	decodeJSON(t, resp, &er)
	assert.Equal(t, "TASK_001", er.Code)
}

func TestHealth(t *testing.T) {
	srv := testRouter(t, &stubExtractor{ext: &document.Extraction{}})

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/readyz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
