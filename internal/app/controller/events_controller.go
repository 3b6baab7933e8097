package controller

import (
	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"
	"github.com/lensfolio/printshop-backend/internal/middleware"
	"github.com/lensfolio/printshop-backend/internal/websocket"
)

type EventsController struct {
	hub      *websocket.Hub
	upgrader gorillaws.Upgrader
}

func NewEventsController(hub *websocket.Hub, allowedOrigins []string) *EventsController {
	return &EventsController{
		hub:      hub,
		upgrader: websocket.NewUpgrader(allowedOrigins),
	}
}

// Stream upgrades to a websocket that receives catalog change events
// GET /api/v1/catalog/events
func (ctrl *EventsController) Stream(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	ws, err := ctrl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		log.Warn("WebSocket upgrade failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	client := websocket.NewClient(ctrl.hub, &websocket.Conn{Conn: ws})
	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
