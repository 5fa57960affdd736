package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/productreport/internal/domain/models"
	"github.com/mamadbah2/productreport/internal/export"
	"github.com/mamadbah2/productreport/internal/service/commands"
	"github.com/mamadbah2/productreport/internal/service/reporting"
)

// defaultRecentLimit is used when the recent endpoint gets no limit.
const defaultRecentLimit = 10

// History lists summaries of previously generated reports, newest first.
type History interface {
	Recent(ctx context.Context, limit int) ([]models.ReportSummary, error)
}

// ReportHandler exposes the report form over HTTP.
type ReportHandler struct {
	svc     commands.Dispatcher
	history History
	logger  *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(svc commands.Dispatcher, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger}
}

// WithHistory enables the recent reports endpoint.
func (h *ReportHandler) WithHistory(history History) *ReportHandler {
	h.history = history
	return h
}

// GenerateResponse is returned after a successful generation.
type GenerateResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Persisted bool   `json:"persisted"`
	Warning   string `json:"warning,omitempty"`
}

// Generate renders and logs a report from a JSON form.
func (h *ReportHandler) Generate(c *gin.Context) {
	var form commands.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		h.logger.Warn("invalid report payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.svc.HandleForm(c.Request.Context(), form)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, GenerateResponse{
		ID:        result.Report.ID.String(),
		Text:      result.Text,
		Persisted: result.Persisted,
		Warning:   result.Warning,
	})
}

// Log returns the accumulated report log as plain text.
func (h *ReportHandler) Log(c *gin.Context) {
	content, err := h.svc.ReadLog()
	if err != nil {
		h.logger.Error("failed reading report log", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to read report log"})
		return
	}
	c.String(http.StatusOK, content)
}

// Recent lists the latest generated reports from the configured history.
func (h *ReportHandler) Recent(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report history is not configured"})
		return
	}

	limit := defaultRecentLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid limit %q", raw)})
			return
		}
		limit = n
	}

	summaries, err := h.history.Recent(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed reading report history", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to read report history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": summaries})
}

// Export renders the requested report as CSV or XLSX without logging it.
func (h *ReportHandler) Export(c *gin.Context) {
	format := export.Format(strings.ToLower(c.DefaultQuery("format", string(export.FormatCSV))))
	if format != export.FormatCSV && format != export.FormatXLSX {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported format %q", format)})
		return
	}

	report, err := h.svc.Preview(commands.Form{
		Category:    c.Query("category"),
		StartDate:   c.Query("start_date"),
		EndDate:     c.Query("end_date"),
		Description: c.Query("description"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if format == export.FormatXLSX {
		err = export.WriteXLSX(&buf, report)
	} else {
		err = export.WriteCSV(&buf, report)
	}
	if err != nil {
		h.logger.Error("failed exporting report", zap.String("format", string(format)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to export report"})
		return
	}

	filename := fmt.Sprintf("%s-%s.%s", strings.ReplaceAll(strings.ToLower(string(report.Category)), " ", "-"), report.Range.Start.Format("20060102"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func (h *ReportHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrMissingDate),
		errors.Is(err, commands.ErrDateParse),
		errors.Is(err, reporting.ErrInvalidRange),
		errors.Is(err, reporting.ErrUnknownCategory):
		h.logger.Debug("report request rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("failed generating report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate report"})
	}
}
