package server

import (
	"net/http"

	"streamgate/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The browser client connects cross-origin during development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWebSocket handles GET /ws?userId=... and hands the connection to the
// hub. Each reconnect is an independent registration; the server places no
// limit on attempts.
func (s *Server) handleWebSocket(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithField("error", err).Warn("Websocket upgrade failed")
		return
	}

	session := realtime.NewSession(userID, conn)
	s.hub.ServeSession(c.Request.Context(), session)
}
