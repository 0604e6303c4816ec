package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *Server) handleListBatches(c *gin.Context) {
	if s.store == nil {
		s.fail(c, http.StatusNotFound, "batch history is not configured")
		return
	}
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.fail(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	batches, err := s.store.ListBatches(c.Request.Context(), limit)
	if err != nil {
		s.logger.Error("history.list_failed", "err", err)
		s.fail(c, http.StatusInternalServerError, "listing batches failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"batches": batches})
}

func (s *Server) handleBatchRecords(c *gin.Context) {
	if s.store == nil {
		s.fail(c, http.StatusNotFound, "batch history is not configured")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.fail(c, http.StatusBadRequest, "id must be a UUID")
		return
	}
	records, err := s.store.ListRecords(c.Request.Context(), id)
	if err != nil {
		s.logger.Error("history.records_failed", "batch_id", id.String(), "err", err)
		s.fail(c, http.StatusInternalServerError, "listing batch records failed")
		return
	}
	if len(records) == 0 {
		s.fail(c, http.StatusNotFound, "batch not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"batch_id": id.String(), "records": records})
}
