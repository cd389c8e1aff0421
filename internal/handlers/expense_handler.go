package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/pagination"
	"spendwise/internal/services"
)

// ExpenseHandler handles expense-related requests
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService services.ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// AddExpenseRequest is a free-text expense, e.g. "spent 250 on dinner".
type AddExpenseRequest struct {
	Text string `json:"text" binding:"required,max=500"`
}

// EditLastRequest corrects the most recent expense. Either field may be
// omitted to leave it unchanged.
type EditLastRequest struct {
	Amount      float64 `json:"amount" binding:"omitempty,gt=0"`
	Description string  `json:"description" binding:"omitempty,max=500"`
}

// Add records an expense from free text
// @Summary     Record an expense from free text
// @Description Extracts the amount and classifies the category from a message like "spent 250 on dinner"
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Param       request body AddExpenseRequest true "Expense text"
// @Success     201 {object} models.Expense
// @Failure     400 {object} ErrorResponse "No amount found in text"
// @Failure     502 {object} ErrorResponse "Classifier unavailable"
// @Security    BearerAuth
// @Router      /expenses [post]
func (h *ExpenseHandler) Add(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.AddFromText(c.Request.Context(), userID, req.Text)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// List returns a page of expenses
// @Summary     List expenses
// @Tags        expenses
// @Produce     json
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size (max 100)"
// @Param       category query string false "Filter by category"
// @Param       from query string false "Lower date bound (RFC3339)"
// @Param       to query string false "Upper date bound (RFC3339)"
// @Success     200 {object} pagination.PageResponse[models.Expense]
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Security    BearerAuth
// @Router      /expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var filter services.ExpenseFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.expenseService.List(userID, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Query answers a free-text expense question
// @Summary     Query expenses with free text
// @Description Answers questions like "how much did I spend on food last month"
// @Tags        expenses
// @Produce     json
// @Param       q query string true "Question text"
// @Success     200 {object} services.QueryResult
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Security    BearerAuth
// @Router      /expenses/query [get]
func (h *ExpenseHandler) Query(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	q := c.Query("q")
	if q == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "q is required"))
		return
	}

	result, err := h.expenseService.Query(userID, q)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// EditLast corrects the most recent expense's amount or description
// @Summary     Edit the last expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Param       request body EditLastRequest true "New amount and/or description"
// @Success     200 {object} models.Expense
// @Failure     404 {object} ErrorResponse "No expenses yet"
// @Security    BearerAuth
// @Router      /expenses/last [patch]
func (h *ExpenseHandler) EditLast(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req EditLastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.EditLast(userID, req.Amount, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// Get returns one expense
// @Summary     Get an expense
// @Tags        expenses
// @Produce     json
// @Param       id path string true "Expense ID"
// @Success     200 {object} models.Expense
// @Failure     404 {object} ErrorResponse "Not found"
// @Security    BearerAuth
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// Update modifies an expense
// @Summary     Update an expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Param       id path string true "Expense ID"
// @Param       request body services.ExpenseInput true "Expense fields"
// @Success     200 {object} models.Expense
// @Failure     404 {object} ErrorResponse "Not found"
// @Security    BearerAuth
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var input services.ExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.Update(userID, c.Param("id"), input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// Delete removes an expense
// @Summary     Delete an expense
// @Tags        expenses
// @Param       id path string true "Expense ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Security    BearerAuth
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.Delete(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Summary returns per-category totals for a date window
// @Summary     Category totals
// @Tags        expenses
// @Produce     json
// @Param       from query string true "Lower date bound (RFC3339)"
// @Param       to query string true "Upper date bound (RFC3339)"
// @Success     200 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse "Missing bounds"
// @Security    BearerAuth
// @Router      /expenses/summary [get]
func (h *ExpenseHandler) Summary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "from and to are required"))
		return
	}

	totals, grand, err := h.expenseService.CategoryTotals(userID, from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"by_category": totals,
		"total":       grand,
	})
}
