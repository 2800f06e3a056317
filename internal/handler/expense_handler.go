package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"spendtrack/internal/errors"
	"spendtrack/internal/model"
	"spendtrack/internal/repository"
	"spendtrack/internal/service"
)

const dateFormatMessage = "Date has wrong format. Use YYYY-MM-DD."

// ExpenseHandler handles expense CRUD endpoints.
type ExpenseHandler struct {
	expenseService service.ExpenseService
}

// NewExpenseHandler creates a new expense handler.
func NewExpenseHandler(expenseService service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateExpenseRequest represents an expense creation request. Any owner
// field in the body is ignored; the owner is the authenticated caller.
type CreateExpenseRequest struct {
	Category    model.Category  `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
}

// UpdateExpenseRequest represents a partial expense update. Absent fields
// keep their stored values.
type UpdateExpenseRequest struct {
	Category    *model.Category  `json:"category"`
	Amount      *decimal.Decimal `json:"amount"`
	Date        *string          `json:"date"`
	Description *string          `json:"description"`
}

// List godoc
// @Summary List the caller's expenses
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param category query string false "Filter by category"
// @Param date query string false "Filter by date (YYYY-MM-DD)"
// @Param ordering query string false "Sort field: date, amount, -date or -amount"
// @Success 200 {array} model.Expense
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /expenses/ [get]
func (h *ExpenseHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	filter := repository.ListFilter{
		Category: model.Category(c.QueryParam("category")),
		Ordering: c.QueryParam("ordering"),
	}
	if raw := c.QueryParam("date"); raw != "" {
		date, err := model.ParseDate(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: dateFormatMessage,
				Code:  "INVALID_DATE",
			})
		}
		filter.Date = &date
	}

	expenses, err := h.expenseService.List(c.Request().Context(), userID, filter)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, expenses)
}

// Create godoc
// @Summary Create an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateExpenseRequest true "Expense data"
// @Success 201 {object} model.Expense
// @Failure 400 {object} map[string]string "field-level validation errors"
// @Failure 401 {object} errors.ErrorResponse
// @Router /expenses/ [post]
func (h *ExpenseHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req CreateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if req.Date == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"date": "This field is required."})
	}
	date, err := model.ParseDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"date": dateFormatMessage})
	}

	expense, err := h.expenseService.Create(c.Request().Context(), userID, service.ExpenseInput{
		Category:    req.Category,
		Amount:      req.Amount,
		Date:        date,
		Description: req.Description,
	})
	if err != nil {
		if verr, ok := errors.AsValidationError(err); ok {
			return c.JSON(http.StatusBadRequest, verr.Fields)
		}
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, expense)
}

// Update godoc
// @Summary Update an owned expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Expense ID"
// @Param request body UpdateExpenseRequest true "Fields to update"
// @Success 200 {object} model.Expense
// @Failure 400 {object} map[string]string "field-level validation errors"
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /expenses/{id}/ [put]
func (h *ExpenseHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	id, err := parseExpenseID(c)
	if err != nil {
		return err
	}

	var req UpdateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	update := service.ExpenseUpdate{
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if req.Date != nil {
		date, err := model.ParseDate(*req.Date)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"date": dateFormatMessage})
		}
		update.Date = &date
	}

	expense, err := h.expenseService.Update(c.Request().Context(), userID, id, update)
	if err != nil {
		if verr, ok := errors.AsValidationError(err); ok {
			return c.JSON(http.StatusBadRequest, verr.Fields)
		}
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, expense)
}

// Delete godoc
// @Summary Delete an owned expense
// @Tags expenses
// @Security BearerAuth
// @Param id path int true "Expense ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /expenses/{id}/ [delete]
func (h *ExpenseHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	id, err := parseExpenseID(c)
	if err != nil {
		return err
	}

	if err := h.expenseService.Delete(c.Request().Context(), userID, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.NoContent(http.StatusNoContent)
}

// parseExpenseID reads the :id path parameter. A malformed ID is treated as
// not found, the same as a missing record.
func parseExpenseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(errors.ErrExpenseNotFound)
		return 0, echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return uint(id), nil
}
