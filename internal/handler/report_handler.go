package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"spendtrack/internal/errors"
	"spendtrack/internal/service"
)

// ReportHandler handles aggregation endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// TrendsResponse wraps the trend points of one request.
type TrendsResponse struct {
	Trends []service.TrendPoint `json:"trends"`
}

// Summary godoc
// @Summary Caller's total spend and category breakdown
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Summary
// @Failure 401 {object} errors.ErrorResponse
// @Router /expense-summary/ [get]
func (h *ReportHandler) Summary(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	summary, err := h.reportService.Summary(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, summary)
}

// Trends godoc
// @Summary Time-bucketed spending totals
// @Tags reports
// @Produce json
// @Param period path string true "month or week"
// @Param start_date query string false "Lower bound (YYYY-MM-DD), open-ended"
// @Param month query int false "Month filter, requires year"
// @Param year query int false "Year filter, requires month"
// @Success 200 {object} TrendsResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /spending-trends/{period}/ [get]
func (h *ReportHandler) Trends(c echo.Context) error {
	points, err := h.reportService.Trends(c.Request().Context(), c.Param("period"), rangeQuery(c))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, TrendsResponse{Trends: points})
}

// Breakdown godoc
// @Summary Category totals over the resolved range
// @Tags reports
// @Produce json
// @Param period path string true "month or week"
// @Param start_date query string false "Lower bound (YYYY-MM-DD), open-ended"
// @Param month query int false "Month filter, requires year"
// @Param year query int false "Year filter, requires month"
// @Success 200 {object} service.Breakdown
// @Failure 400 {object} errors.ErrorResponse
// @Router /category-breakdown/{period}/ [get]
func (h *ReportHandler) Breakdown(c echo.Context) error {
	breakdown, err := h.reportService.Breakdown(c.Request().Context(), c.Param("period"), rangeQuery(c))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, breakdown)
}

func rangeQuery(c echo.Context) service.RangeQuery {
	return service.RangeQuery{
		StartDate: c.QueryParam("start_date"),
		Month:     c.QueryParam("month"),
		Year:      c.QueryParam("year"),
	}
}
