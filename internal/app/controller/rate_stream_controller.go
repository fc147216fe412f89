package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jrbgold/jrb-backend/internal/middleware"
	ws "github.com/jrbgold/jrb-backend/internal/websocket"
)

type RateStreamController struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

// NewRateStreamController allowedOrigins에 "*"가 있으면 모든 origin 허용
func NewRateStreamController(hub *ws.Hub, allowedOrigins []string) *RateStreamController {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return &RateStreamController{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
	}
}

// Stream pushes every published rate snapshot; the current one is sent on connect
// GET /ws/rates
func (ctrl *RateStreamController) Stream(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	conn, err := ctrl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("Failed to upgrade to WebSocket", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	client := ws.NewClient(ctrl.hub, &ws.Conn{Conn: conn}, uuid.NewString())
	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	log.Info("Rate stream connection established", map[string]interface{}{
		"client_id": client.ID,
	})
}
