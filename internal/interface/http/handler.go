package http

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/securian/medsummary/internal/domain/summary"
	"github.com/securian/medsummary/internal/infra/config"
	apperrors "github.com/securian/medsummary/pkg/errors"
)

const maxUploadBytes = 10 << 20

// SummaryHandler wires the HTTP transport to the summarization service.
type SummaryHandler struct {
	svc         summary.Service
	tokens      summary.TokenSource
	recentLimit int
	logger      *slog.Logger
}

// NewSummaryHandler constructs the root HTTP handler.
func NewSummaryHandler(cfg *config.Config, svc summary.Service, tokens summary.TokenSource, logger *slog.Logger) *SummaryHandler {
	return &SummaryHandler{
		svc:         svc,
		tokens:      tokens,
		recentLimit: cfg.Store.RecentLimit,
		logger:      logger.With("component", "http.handler"),
	}
}

// Summarize handles the JSON summarization endpoint.
func (h *SummaryHandler) Summarize(c *gin.Context) {
	var req summary.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	h.summarize(c, req)
}

// SummarizeFile handles multipart uploads of a medical-record JSON file.
func (h *SummaryHandler) SummarizeFile(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "missing file upload", err))
		return
	}
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".json") {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "only json files are supported", nil))
		return
	}

	file, err := header.Open()
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "unreadable file upload", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "unreadable file upload", err))
		return
	}

	h.summarize(c, summary.Request{
		MedicalData: data,
		PatientID:   c.PostForm("patientId"),
	})
}

func (h *SummaryHandler) summarize(c *gin.Context, req summary.Request) {
	resp, err := h.svc.Summarize(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "summarize_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_input"
		case apperrors.IsCode(err, "token_error"):
			status = http.StatusServiceUnavailable
			code = "token_error"
		case apperrors.IsCode(err, "store_error"):
			code = "store_error"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Recent returns the latest stored summaries.
func (h *SummaryHandler) Recent(c *gin.Context) {
	limit := h.recentLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "limit must be a positive integer", err))
			return
		}
		limit = parsed
	}

	records, err := h.svc.Recent(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "store_error", errMessage(err), err))
		return
	}
	if records == nil {
		records = []summary.StoredSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"summaries": records})
}

// Health is the liveness probe.
func (h *SummaryHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now().UTC().Format(time.RFC3339)})
}

// Ready is the readiness probe; it verifies that a bearer token can be
// obtained for the upstream call.
func (h *SummaryHandler) Ready(c *gin.Context) {
	if _, err := h.tokens.Token(c.Request.Context()); err != nil {
		h.logger.Warn("readiness check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "reason": "bearer token unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "timestamp": time.Now().UTC().Format(time.RFC3339)})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
