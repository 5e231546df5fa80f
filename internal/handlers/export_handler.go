package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"expensely/internal/services"
)

// ExportHandler handles transaction export requests.
type ExportHandler struct {
	exportService services.ExportServicer
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService services.ExportServicer) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// exportRange resolves the export window. Defaults cover the current month
// so a bare request exports something sensible.
func exportRange(c *gin.Context) (services.DateRange, error) {
	r, err := parseRangeQuery(c)
	if err != nil {
		return r, err
	}

	now := time.Now()
	if r.From == nil {
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		r.From = &from
	}
	if r.To == nil {
		to := now
		r.To = &to
	}
	return r, nil
}

func exportFilename(ext string) string {
	return fmt.Sprintf("transactions_%s.%s", time.Now().Format("2006-01-02"), ext)
}

// ExportCSV streams the user's transactions as a CSV attachment
// @Summary     Export transactions as CSV
// @Description Download the authenticated user's transactions in the date range as a CSV file (current month by default)
// @Tags        export
// @Produce     text/csv
// @Security    BearerAuth
// @Param       from query string false "Start date (YYYY-MM-DD, default first of current month)"
// @Param       to   query string false "End date (YYYY-MM-DD, default today)"
// @Success     200 {string} string "CSV file"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	r, err := exportRange(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	data, err := h.exportService.ExportCSV(userID, r)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename("csv")))
	c.Data(http.StatusOK, "text/csv", data)
}

// ExportPDF streams the user's transactions as a PDF attachment
// @Summary     Export transactions as PDF
// @Description Download the authenticated user's transactions in the date range as a PDF file (current month by default)
// @Tags        export
// @Produce     application/pdf
// @Security    BearerAuth
// @Param       from query string false "Start date (YYYY-MM-DD, default first of current month)"
// @Param       to   query string false "End date (YYYY-MM-DD, default today)"
// @Success     200 {string} string "PDF file"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /export/pdf [get]
func (h *ExportHandler) ExportPDF(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	r, err := exportRange(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	data, err := h.exportService.ExportPDF(userID, r)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename("pdf")))
	c.Data(http.StatusOK, "application/pdf", data)
}
