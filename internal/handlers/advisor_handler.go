package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/services"
)

// AdvisorHandler handles budgeting questions
type AdvisorHandler struct {
	advisorService services.AdvisorServicer
}

// NewAdvisorHandler creates a new AdvisorHandler
func NewAdvisorHandler(advisorService services.AdvisorServicer) *AdvisorHandler {
	return &AdvisorHandler{advisorService: advisorService}
}

// Suggest answers a budgeting question
// @Summary     Ask for budget advice
// @Description Answers questions like "can I spend 2k this weekend?" from salary, savings goal, and spend history
// @Tags        advisor
// @Produce     json
// @Param       q query string true "Question text"
// @Success     200 {object} services.Advice
// @Failure     400 {object} ErrorResponse "Salary not set"
// @Security    BearerAuth
// @Router      /advisor/suggest [get]
func (h *AdvisorHandler) Suggest(c *gin.Context) {
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

	advice, err := h.advisorService.Suggest(c.Request.Context(), userID, q)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, advice)
}
