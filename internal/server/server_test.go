package server

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/resume-analyzer/constants"
	"github.com/joseph-ayodele/resume-analyzer/internal/async"
	"github.com/joseph-ayodele/resume-analyzer/internal/common"
	"github.com/joseph-ayodele/resume-analyzer/internal/entity"
	"github.com/joseph-ayodele/resume-analyzer/internal/fields"
	"github.com/joseph-ayodele/resume-analyzer/internal/history"
	"github.com/joseph-ayodele/resume-analyzer/internal/ner"
	"github.com/joseph-ayodele/resume-analyzer/internal/pipeline"
)

type stubRecognizer struct{}

func (stubRecognizer) Recognize(string) ([]ner.Entity, error) { return nil, nil }

func newTestRouter(t *testing.T, maxMB int64, store *history.Store, recorder async.Recorder) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &common.Config{
		Server: common.ServerConfig{Addr: ":0", MaxZipSizeMB: maxMB},
	}
	parser := pipeline.NewParser(nil, fields.NewExtractor(stubRecognizer{}, nil), nil)
	runner := pipeline.NewBatchRunner(nil, parser)
	return NewServer(cfg, runner, store, recorder, nil).Router()
}

// createTestDOCX builds a minimal DOCX whose body has one paragraph per line.
func createTestDOCX(t *testing.T, lines ...string) []byte {
	t.Helper()
	var body bytes.Buffer
	for _, line := range lines {
		fmt.Fprintf(&body, "<w:p><w:r><w:t>%s</w:t></w:r></w:p>\n", line)
	}

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	doc, err := w.Create("word/document.xml")
	require.NoError(t, err)
	fmt.Fprintf(doc, `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
%s</w:body>
</w:document>`, body.String())
	require.NoError(t, w.Close())
	return buf.Bytes()
}

type zipEntry struct {
	name string
	data []byte
}

func createTestZip(t *testing.T, entries ...zipEntry) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	for _, e := range entries {
		f, err := w.Create(e.name)
		require.NoError(t, err)
		_, err = f.Write(e.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func resumeZip(t *testing.T) []byte {
	docx := createTestDOCX(t,
		"Jane Doe",
		"jane.doe@example.com",
		"+1 555 123 4567",
		"BSc Computer Science, Springfield University",
	)
	return createTestZip(t, zipEntry{name: "jane.docx", data: docx})
}

func uploadRequest(t *testing.T, target, filename string, content []byte) *http.Request {
	t.Helper()
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, 50, nil, nil)

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var body struct {
		Status       string `json:"status"`
		LLMEnabled   bool   `json:"llm_enabled"`
		MaxZipSizeMB int64  `json:"max_zip_size_mb"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.False(t, body.LLMEnabled)
	assert.Equal(t, int64(50), body.MaxZipSizeMB)
}

func TestIndexAndStylesheet(t *testing.T) {
	r := newTestRouter(t, 50, nil, nil)

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Resume Analyzer")
	assert.Contains(t, rec.Body.String(), "/api/download-csv")

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
}

func TestUploadValidation(t *testing.T) {
	r := newTestRouter(t, 50, nil, nil)

	tests := []struct {
		name       string
		request    func(t *testing.T) *http.Request
		wantStatus int
		wantError  string
	}{
		{
			name: "missing file field",
			request: func(t *testing.T) *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/api/download-csv", nil)
				req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
				return req
			},
			wantStatus: http.StatusBadRequest,
			wantError:  `multipart field "file" is required`,
		},
		{
			name: "not a zip",
			request: func(t *testing.T) *http.Request {
				return uploadRequest(t, "/api/download-csv", "resume.rar", []byte("anything"))
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "upload must be a zip file",
		},
		{
			name: "corrupt archive",
			request: func(t *testing.T) *http.Request {
				return uploadRequest(t, "/api/download-csv", "broken.zip", []byte("this is not a zip"))
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "archive is not a valid zip file",
		},
		{
			name: "no resume files",
			request: func(t *testing.T) *http.Request {
				content := createTestZip(t, zipEntry{name: "notes.txt", data: []byte("hello")})
				return uploadRequest(t, "/api/download-csv", "notes.zip", content)
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "archive contains no pdf or docx files",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(r, tc.request(t))
			require.Equal(t, tc.wantStatus, rec.Code)
			assert.Contains(t, errorBody(t, rec), tc.wantError)
		})
	}
}

func TestUploadRejectsOversized(t *testing.T) {
	r := newTestRouter(t, 1, nil, nil)

	content := bytes.Repeat([]byte{0}, 1<<20+1)
	rec := serve(r, uploadRequest(t, "/api/download-csv", "big.zip", content))
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, errorBody(t, rec), "exceeds maximum allowed size of 1MB")
}

func TestDownloadCSV(t *testing.T) {
	r := newTestRouter(t, 50, nil, nil)

	rec := serve(r, uploadRequest(t, "/api/download-csv", "resumes.zip", resumeZip(t)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Equal(t, `attachment; filename=resume_report.csv`, rec.Header().Get("Content-Disposition"))

	rows, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, constants.ReportColumns, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "Jane Doe", rows[1][1])
	assert.Equal(t, "jane.doe@example.com", rows[1][3])
}

func TestDownloadXLSX(t *testing.T) {
	r := newTestRouter(t, 50, nil, nil)

	rec := serve(r, uploadRequest(t, "/api/download-xlsx", "resumes.zip", resumeZip(t)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=resume_report.xlsx`, rec.Header().Get("Content-Disposition"))

	wb, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	rows, err := wb.GetRows("Resumes")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Jane Doe", rows[1][1])
}

func TestBatchEndpointsWithoutStore(t *testing.T) {
	r := newTestRouter(t, 50, nil, nil)

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/api/batches", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "batch history is not configured", errorBody(t, rec))

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/api/batches/"+uuid.NewString(), nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBatchEndpointsWithStore(t *testing.T) {
	ctx := context.Background()
	store, err := history.Open(ctx, ":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	batch := entity.Batch{
		ID:          uuid.New(),
		Source:      "upload",
		ArchiveName: "resumes.zip",
		ResumeCount: 1,
		FailedCount: 0,
		Status:      constants.BatchStatusDone,
		StartedAt:   time.Now().UTC(),
		FinishedAt:  time.Now().UTC(),
	}
	records := []entity.ResumeRecord{{
		SNo:       1,
		Filename:  "jane.docx",
		Extractor: constants.ExtractorHeuristic,
		ResumeFields: entity.ResumeFields{
			Name:  entity.StrPtr("Jane Doe"),
			Email: entity.StrPtr("jane.doe@example.com"),
		},
	}}
	require.NoError(t, store.RecordBatch(ctx, batch, records))

	r := newTestRouter(t, 50, store, nil)

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/api/batches", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var listBody struct {
		Batches []entity.Batch `json:"batches"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listBody))
	require.Len(t, listBody.Batches, 1)
	assert.Equal(t, batch.ID, listBody.Batches[0].ID)

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/api/batches/"+batch.ID.String(), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var recordsBody struct {
		Records []entity.ResumeRecord `json:"records"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &recordsBody))
	require.Len(t, recordsBody.Records, 1)
	require.NotNil(t, recordsBody.Records[0].Name)
	assert.Equal(t, "Jane Doe", *recordsBody.Records[0].Name)

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/api/batches/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/api/batches/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/api/batches?limit=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadRecordsHistory(t *testing.T) {
	ctx := context.Background()
	store, err := history.Open(ctx, ":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	queue := async.NewRecorderQueue(store, nil, async.WithWorkers(1))
	r := newTestRouter(t, 50, store, queue)

	rec := serve(r, uploadRequest(t, "/api/download-csv", "resumes.zip", resumeZip(t)))
	require.Equal(t, http.StatusOK, rec.Code)

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	queue.Shutdown(shutdownCtx)

	batches, err := store.ListBatches(ctx, 10)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, "upload", batches[0].Source)
	assert.Equal(t, "resumes.zip", batches[0].ArchiveName)
	assert.Equal(t, 1, batches[0].ResumeCount)
	assert.Equal(t, constants.BatchStatusDone, batches[0].Status)

	stored, err := store.ListRecords(ctx, batches[0].ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, constants.ExtractorHeuristic, stored[0].Extractor)
}
