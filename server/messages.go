package server

import (
	"net/http"
	"strconv"

	"streamgate/models"
	"streamgate/service"

	"github.com/gin-gonic/gin"
)

type createMessageRequest struct {
	UserID      string `json:"userId" binding:"required"`
	Content     string `json:"content" binding:"required"`
	MessageType string `json:"messageType"`
}

// handleGetMessages handles GET /api/messages
func (s *Server) handleGetMessages(c *gin.Context) {
	limit := service.DefaultMessageLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	messages, err := s.messages.RecentMessages(c.Request.Context(), limit)
	if err != nil {
		s.handleServiceError(c, err, "Failed to get messages")
		return
	}
	if messages == nil {
		messages = []*models.MessageWithUser{}
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// handlePostMessage handles POST /api/messages. Posting requires an active
// payment stream; the access check happens in the service, not the client.
func (s *Server) handlePostMessage(c *gin.Context) {
	var req createMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid message data", err)
		return
	}

	message, err := s.messages.PostMessage(c.Request.Context(), req.UserID, req.Content, models.MessageType(req.MessageType))
	if err != nil {
		s.handleServiceError(c, err, "Failed to create message")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}
