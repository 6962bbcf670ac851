package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleCommunityStats handles GET /api/community/stats
func (s *Server) handleCommunityStats(c *gin.Context) {
	stats, err := s.stats.GetCommunityStats(c.Request.Context())
	if err != nil {
		s.handleServiceError(c, err, "Failed to get community stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
