package handler

import (
	"errors"
	"net/http"

	"kodask_bank/internal/model"
	"kodask_bank/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler handles chat assistant requests
type ChatHandler struct {
	service service.ChatService
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(s service.ChatService) *ChatHandler {
	return &ChatHandler{service: s}
}

func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Messages are required"})
		return
	}

	reply, err := h.service.Chat(c.Request.Context(), req.Messages)
	if err != nil {
		if errors.Is(err, service.ErrEmptyConversation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Messages are required"})
			return
		}
		// Detailed cause already logged by the service; keep the response generic.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch AI response"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": reply})
}

// RegisterChatRoutes registers chat routes
func (h *ChatHandler) RegisterChatRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat", h.Chat)
}
