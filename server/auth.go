package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type connectRequest struct {
	Address   string `json:"address" binding:"required"`
	Signature string `json:"signature" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// handleConnect handles POST /api/auth/connect. Signature verification is an
// external collaborator; the address is trusted once the fields are present.
func (s *Server) handleConnect(c *gin.Context) {
	var req connectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Missing required fields", err)
		return
	}

	user, err := s.users.GetOrCreateByAddress(c.Request.Context(), req.Address)
	if err != nil {
		s.handleServiceError(c, err, "Authentication failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
