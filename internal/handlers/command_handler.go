package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/services"
)

// CommandHandler handles conversational messages
type CommandHandler struct {
	commandService services.CommandServicer
}

// NewCommandHandler creates a new CommandHandler
func NewCommandHandler(commandService services.CommandServicer) *CommandHandler {
	return &CommandHandler{commandService: commandService}
}

// CommandRequest is a conversational message.
type CommandRequest struct {
	Message string `json:"message" binding:"required,max=500"`
}

// Execute routes a conversational message
// @Summary     Send a conversational command
// @Description Routes a message like "spent 250 on dinner" or "can I afford a trip" to the right operation
// @Tags        command
// @Accept      json
// @Produce     json
// @Param       request body CommandRequest true "Message"
// @Success     200 {object} services.CommandResult
// @Failure     400 {object} ErrorResponse "Command not understood"
// @Failure     502 {object} ErrorResponse "Assistant unavailable"
// @Security    BearerAuth
// @Router      /command [post]
func (h *CommandHandler) Execute(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.commandService.Execute(c.Request.Context(), userID, req.Message)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
