package server

import (
	"errors"
	"net/http"

	"streamgate/realtime"
	"streamgate/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

// Server owns the HTTP surface: the JSON API under /api and the websocket
// endpoint at /ws.
type Server struct {
	router   *gin.Engine
	users    service.UserService
	streams  service.StreamService
	access   service.AccessService
	messages service.MessageService
	stats    service.StatsService
	hub      *realtime.Hub

	// communityWallet is the default destination for new streams when the
	// request does not name one.
	communityWallet string
}

// New creates a server with all routes registered
func New(users service.UserService, streams service.StreamService, access service.AccessService, messages service.MessageService, stats service.StatsService, hub *realtime.Hub, communityWallet string) *Server {
	s := &Server{
		users:           users,
		streams:         streams,
		access:          access,
		messages:        messages,
		stats:           stats,
		hub:             hub,
		communityWallet: communityWallet,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	api := router.Group("/api")
	api.POST("/auth/connect", s.handleConnect)
	api.GET("/community/stats", s.handleCommunityStats)
	api.GET("/messages", s.handleGetMessages)
	api.POST("/messages", s.handlePostMessage)
	api.POST("/streams", s.handleCreateStream)
	api.PATCH("/streams/:streamId", s.handleUpdateStream)
	api.GET("/streams/user/:userId", s.handleGetUserStreams)
	api.GET("/verify-access/:userId", s.handleVerifyAccess)

	router.GET("/ws", s.handleWebSocket)

	s.router = router
	return s
}

// Handler returns the http.Handler for the server
func (s *Server) Handler() http.Handler {
	return s.router
}

// handleServiceError maps service-layer sentinel errors onto response codes.
// Unexpected failures are logged in full and answered with a generic 500
// body so internal detail never reaches the client.
func (s *Server) handleServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		log.WithFields(log.Fields{
			"path":  c.FullPath(),
			"error": err,
		}).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// bindingDetails converts validator errors into field-level detail for 400
// responses.
func bindingDetails(err error) []gin.H {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	details := make([]gin.H, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, gin.H{
			"field": fe.Field(),
			"rule":  fe.Tag(),
		})
	}
	return details
}

func badRequest(c *gin.Context, message string, err error) {
	body := gin.H{"error": message}
	if details := bindingDetails(err); details != nil {
		body["details"] = details
	}
	c.JSON(http.StatusBadRequest, body)
}
