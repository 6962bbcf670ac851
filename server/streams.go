package server

import (
	"net/http"
	"time"

	"streamgate/models"
	"streamgate/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type createStreamRequest struct {
	UserID           string     `json:"userId" binding:"required"`
	CommunityAddress string     `json:"communityAddress"`
	RatePerSecond    string     `json:"ratePerSecond" binding:"required"`
	TotalAmount      string     `json:"totalAmount" binding:"required"`
	EndTime          *time.Time `json:"endTime"`
	TransactionHash  *string    `json:"transactionHash"`
	PaymentID        *string    `json:"paymentId"`
}

// handleCreateStream handles POST /api/streams
func (s *Server) handleCreateStream(c *gin.Context) {
	var req createStreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid stream data", err)
		return
	}
	if req.CommunityAddress == "" {
		req.CommunityAddress = s.communityWallet
	}

	stream, err := s.streams.CreateStream(c.Request.Context(), service.CreateStreamInput{
		UserID:           req.UserID,
		CommunityAddress: req.CommunityAddress,
		RatePerSecond:    req.RatePerSecond,
		TotalAmount:      req.TotalAmount,
		EndTime:          req.EndTime,
		TransactionHash:  req.TransactionHash,
		PaymentID:        req.PaymentID,
	})
	if err != nil {
		s.handleServiceError(c, err, "Failed to create stream")
		return
	}

	c.JSON(http.StatusOK, gin.H{"stream": stream})
}

// handleUpdateStream handles PATCH /api/streams/:streamId
func (s *Server) handleUpdateStream(c *gin.Context) {
	streamID := c.Param("streamId")
	if _, err := uuid.Parse(streamID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stream ID"})
		return
	}

	var updates models.StreamUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		badRequest(c, "Invalid stream data", err)
		return
	}

	stream, err := s.streams.UpdateStream(c.Request.Context(), streamID, &updates)
	if err != nil {
		s.handleServiceError(c, err, "Failed to update stream")
		return
	}

	c.JSON(http.StatusOK, gin.H{"stream": stream})
}

// handleGetUserStreams handles GET /api/streams/user/:userId
func (s *Server) handleGetUserStreams(c *gin.Context) {
	userID := c.Param("userId")
	if _, err := uuid.Parse(userID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	streams, err := s.streams.GetStreamsByUser(c.Request.Context(), userID)
	if err != nil {
		s.handleServiceError(c, err, "Failed to get streams")
		return
	}
	if streams == nil {
		streams = []*models.Stream{}
	}

	c.JSON(http.StatusOK, gin.H{"streams": streams})
}

// handleVerifyAccess handles GET /api/verify-access/:userId
func (s *Server) handleVerifyAccess(c *gin.Context) {
	userID := c.Param("userId")
	if _, err := uuid.Parse(userID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	activeStreams, err := s.access.ActiveStreams(c.Request.Context(), userID)
	if err != nil {
		s.handleServiceError(c, err, "Failed to verify access")
		return
	}
	if activeStreams == nil {
		activeStreams = []*models.Stream{}
	}

	c.JSON(http.StatusOK, gin.H{
		"hasAccess":     len(activeStreams) > 0,
		"activeStreams": activeStreams,
	})
}
