package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "expensely/internal/errors"
	"expensely/internal/services"
)

// StatsHandler handles statistics requests. Every endpoint resolves the
// current date once and threads it through, so a request observes a single
// consistent "today" even across a midnight boundary.
type StatsHandler struct {
	statsService services.StatsServicer
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService services.StatsServicer) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// monthQuery binds the optional month selector shared by the per-month
// breakdown endpoints. An empty month means the current month.
type monthQuery struct {
	Month string `form:"month" binding:"omitempty,month_label"`
}

func parseMonthQuery(c *gin.Context) (string, error) {
	var q monthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidMonthFormat, "month must be in YYYY-MM format")
	}
	return q.Month, nil
}

// GetCurrentMonth returns the expense total for the current month
// @Summary     Current month expense total
// @Description Get the total of the authenticated user's expenses for the current month so far
// @Tags        stats
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} stats.TrendPoint "Month label and total"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stats/current-month [get]
func (h *StatsHandler) GetCurrentMonth(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	point, err := h.statsService.CurrentMonthTotal(userID, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, point)
}

// GetIncomeCurrentMonth returns the income total for the current month
// @Summary     Current month income total
// @Description Get the total of the authenticated user's income for the current month so far
// @Tags        stats
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} stats.TrendPoint "Month label and total"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stats/income/current-month [get]
func (h *StatsHandler) GetIncomeCurrentMonth(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	point, err := h.statsService.CurrentMonthIncomeTotal(userID, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, point)
}

// GetMonthlyTrend returns rolling per-month expense totals
// @Summary     Monthly expense trend
// @Description Get per-month expense totals for the last N months, oldest first, ending with the current partial month
// @Tags        stats
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       months query int false "Number of months (default 6)"
// @Success     200 {object} stats.MonthlyTrendReport "Per-month totals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stats/monthly-trend [get]
func (h *StatsHandler) GetMonthlyTrend(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	months := 0
	if v := c.Query("months"); v != "" {
		months, err = strconv.Atoi(v)
		if err != nil || months <= 0 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid months"))
			return
		}
	}

	report, err := h.statsService.MonthlyTrend(userID, time.Now(), months)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetByMonth returns the user's full expense history grouped by month
// @Summary     Expenses by month
// @Description Get the authenticated user's expense totals grouped by calendar month, newest first
// @Tags        stats
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} stats.MonthTotal "Per-month totals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stats/by-month [get]
func (h *StatsHandler) GetByMonth(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.statsService.ExpensesByMonth(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, totals)
}

// GetIncomeByMonth returns the user's full income history grouped by month
// @Summary     Income by month
// @Description Get the authenticated user's income totals grouped by calendar month, newest first
// @Tags        stats
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} stats.MonthTotal "Per-month totals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stats/income/by-month [get]
func (h *StatsHandler) GetIncomeByMonth(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.statsService.IncomesByMonth(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, totals)
}

// GetMonthByCategory returns the per-category expense breakdown for a month
// @Summary     Category breakdown for a month
// @Description Get the authenticated user's expense distribution by category for the given month (current month when omitted)
// @Tags        stats
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month query string false "Month in YYYY-MM format"
// @Success     200 {object} stats.CategoryBreakdownReport "Category breakdown"
// @Failure     400 {object} ErrorResponse "Invalid month format"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stats/month-by-category [get]
func (h *StatsHandler) GetMonthByCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, err := parseMonthQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.statsService.CategoryBreakdown(userID, time.Now(), month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetNetIncome returns income minus expenses for a month
// @Summary     Net income for a month
// @Description Get the authenticated user's income, expenses, and net balance for the given month (current month when omitted)
// @Tags        stats
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month query string false "Month in YYYY-MM format"
// @Success     200 {object} stats.NetIncomeReport "Net income summary"
// @Failure     400 {object} ErrorResponse "Invalid month format"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stats/net-income [get]
func (h *StatsHandler) GetNetIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, err := parseMonthQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.statsService.NetIncome(userID, time.Now(), month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
