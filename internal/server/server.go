// Package server exposes the resume analyzer over HTTP: an upload page, the
// report download endpoints, a health probe and read access to batch history.
package server

import (
	"embed"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joseph-ayodele/resume-analyzer/internal/archive"
	"github.com/joseph-ayodele/resume-analyzer/internal/async"
	"github.com/joseph-ayodele/resume-analyzer/internal/common"
	"github.com/joseph-ayodele/resume-analyzer/internal/history"
	"github.com/joseph-ayodele/resume-analyzer/internal/pipeline"
	"github.com/joseph-ayodele/resume-analyzer/internal/report"
)

//go:embed web
var webFS embed.FS

type Server struct {
	cfg      *common.Config
	logger   *slog.Logger
	unpacker *archive.Unpacker
	runner   *pipeline.BatchRunner
	reports  *report.Service
	store    *history.Store // nil when history is disabled
	recorder async.Recorder
}

// NewServer wires the HTTP layer. store may be nil; recorder may be nil, in
// which case batches are simply not recorded.
func NewServer(cfg *common.Config, runner *pipeline.BatchRunner, store *history.Store, recorder async.Recorder, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = async.NopRecorder{}
	}
	return &Server{
		cfg:      cfg,
		logger:   logger,
		unpacker: archive.NewUnpacker(logger),
		runner:   runner,
		reports:  report.NewService(logger),
		store:    store,
		recorder: recorder,
	}
}

// Router builds the gin engine with all routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestID())
	r.Use(s.accessLog())

	r.GET("/", s.handleIndex)
	r.GET("/static/style.css", s.handleStylesheet)
	r.GET("/health", s.handleHealth)

	api := r.Group("/api")
	api.POST("/download-csv", s.handleDownloadCSV)
	api.POST("/download-xlsx", s.handleDownloadXLSX)
	api.GET("/batches", s.handleListBatches)
	api.GET("/batches/:id", s.handleBatchRecords)

	return r
}

func (s *Server) handleIndex(c *gin.Context) {
	page, err := webFS.ReadFile("web/index.html")
	if err != nil {
		s.fail(c, http.StatusInternalServerError, "upload page unavailable")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

func (s *Server) handleStylesheet(c *gin.Context) {
	css, err := webFS.ReadFile("web/style.css")
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.Data(http.StatusOK, "text/css; charset=utf-8", css)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "healthy",
		"llm_enabled":     s.cfg.LLM.Enabled(),
		"max_zip_size_mb": s.cfg.Server.MaxZipSizeMB,
	})
}

// fail writes the JSON error body shared by every endpoint.
func (s *Server) fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
