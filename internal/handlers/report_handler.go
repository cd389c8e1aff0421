package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/services"
)

// ReportHandler handles monthly report requests
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func parseYearMonth(c *gin.Context) (int, int, error) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2200 {
		return 0, 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "year must be a four-digit year")
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		return 0, 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be 1-12")
	}
	return year, month, nil
}

// Monthly returns one month's report
// @Summary     Monthly report
// @Tags        reports
// @Produce     json
// @Param       year query int true "Year"
// @Param       month query int true "Month (1-12)"
// @Success     200 {object} services.MonthlyReport
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Security    BearerAuth
// @Router      /reports/monthly [get]
func (h *ReportHandler) Monthly(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, month, err := parseYearMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.reportService.MonthlyReport(userID, year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// MonthlyCSV downloads one month's report as CSV
// @Summary     Monthly report as CSV
// @Tags        reports
// @Produce     text/csv
// @Param       year query int true "Year"
// @Param       month query int true "Month (1-12)"
// @Success     200 {string} string "CSV file"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Security    BearerAuth
// @Router      /reports/monthly/csv [get]
func (h *ReportHandler) MonthlyCSV(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, month, err := parseYearMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	data, err := h.reportService.MonthlyReportCSV(userID, year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filename := fmt.Sprintf("expenses-%04d-%02d.csv", year, month)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", data)
}

// PurgeMonth deletes one month's expenses
// @Summary     Purge a month's expenses
// @Description Deletes every expense inside the given calendar month
// @Tags        reports
// @Produce     json
// @Param       year query int true "Year"
// @Param       month query int true "Month (1-12)"
// @Success     200 {object} map[string]interface{} "Number of deleted records"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Security    BearerAuth
// @Router      /reports/monthly [delete]
func (h *ReportHandler) PurgeMonth(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, month, err := parseYearMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	deleted, err := h.reportService.PurgeMonth(userID, year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
