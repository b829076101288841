package ui

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"insightsuite/domain/insights"
	"insightsuite/internal/errors"
)

// handleUpload ingests an uploaded tabular file and computes the full
// insight snapshot for the selected report type. Ingestion failures are
// terminal for the attempt; a previously loaded dataset stays active.
func (s *Server) handleUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("dataset")
	if err != nil {
		log.Printf("[handleUpload] FAILED - no file uploaded: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded", "code": errors.CodeInvalidInput})
		return
	}
	defer file.Close()

	if header.Size > s.cfg.Upload.MaxBytes {
		log.Printf("[handleUpload] FAILED - file too large: %d bytes", header.Size)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("File size (%.1f MB) exceeds the %d MB limit",
				float64(header.Size)/(1024*1024), s.cfg.Upload.MaxBytes/(1024*1024)),
			"code": errors.CodeInvalidInput,
		})
		return
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		log.Printf("[handleUpload] FAILED - could not read upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file", "code": errors.CodeInternalError})
		return
	}

	reportType := insights.ParseReportType(c.PostForm("report_type"))
	snapshot, err := s.service.ComputeFromUpload(c.Request.Context(), raw, header.Filename, reportType)
	if err != nil {
		status := http.StatusBadRequest
		if errors.GetCode(err) == errors.CodeInternalError {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"dataset_id":  snapshot.Dataset.ID,
		"source":      snapshot.Dataset.Source,
		"row_count":   snapshot.Dataset.RowCount(),
		"field_count": snapshot.Dataset.FieldCount(),
		"report":      snapshot.Report,
	})
}

// handleReport reselects the report type over the current dataset.
func (s *Server) handleReport(c *gin.Context) {
	reportType := insights.ParseReportType(c.Query("type"))
	snapshot, err := s.service.Reselect(c.Request.Context(), reportType)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
		return
	}
	c.JSON(http.StatusOK, snapshot.Report)
}

func (s *Server) handleLeaderboard(c *gin.Context) {
	limit := queryInt(c, "limit", 0)
	entries, err := s.service.Leaderboard(limit)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (s *Server) handleGeo(c *gin.Context) {
	snapshot := s.service.Current()
	if snapshot == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "dataset not found", "code": errors.CodeNotFound})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": snapshot.Geo})
}

func (s *Server) handleProfile(c *gin.Context) {
	snapshot := s.service.Current()
	if snapshot == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "dataset not found", "code": errors.CodeNotFound})
		return
	}
	c.JSON(http.StatusOK, snapshot.Profile)
}

// handleRows returns the headers plus a bounded slice of rows for verbatim
// display. The full dataset stays in memory for re-aggregation.
func (s *Server) handleRows(c *gin.Context) {
	limit := queryInt(c, "limit", s.cfg.Insights.PreviewRows)
	headers, rows, err := s.service.Rows(limit)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
		return
	}

	display := make([]map[string]string, len(rows))
	for i, row := range rows {
		record := make(map[string]string, len(headers))
		for _, header := range headers {
			record[header] = row[header].String()
		}
		display[i] = record
	}
	c.JSON(http.StatusOK, gin.H{"headers": headers, "rows": display})
}

func (s *Server) handleReset(c *gin.Context) {
	s.service.Reset()
	c.JSON(http.StatusOK, gin.H{"message": "Dataset discarded"})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if value := c.Query(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
