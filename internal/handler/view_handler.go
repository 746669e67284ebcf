package handler

import (
	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/internal/pkg/serverutils"
	internalWS "notekeeper-be/internal/websocket"
	"notekeeper-be/pkg/listview"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// ViewHandler upgrades a request into a patch stream for one list view.
type ViewHandler struct {
	synchronizer *listview.Synchronizer
	hub          *internalWS.Hub
	jwtSecret    string
	logger       logger.ILogger
}

func NewViewHandler(synchronizer *listview.Synchronizer, hub *internalWS.Hub, jwtSecret string, log logger.ILogger) *ViewHandler {
	return &ViewHandler{
		synchronizer: synchronizer,
		hub:          hub,
		jwtSecret:    jwtSecret,
		logger:       log,
	}
}

// ServeWs handles websocket requests from the peer.
func (h *ViewHandler) ServeWs(c *fiber.Ctx) error {
	if h.jwtSecret != "" {
		tokenStr := serverutils.BearerToken(c)
		if tokenStr == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Missing token (Query 'token' or Header 'Authorization')"))
		}
		if _, err := serverutils.ParseToken(tokenStr, h.jwtSecret); err != nil {
			h.logger.Warn("ViewHandler", "Invalid Token in WS Handshake", map[string]interface{}{"error": err.Error()})
			return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
		}
	}

	viewId := c.Params("id")
	// A view opened on another instance still streams here through redis.
	if _, found := h.synchronizer.Get(viewId); !found && !h.hub.Clustered() {
		return c.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, "view not found"))
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("ViewHandler", "Starting patch stream", map[string]interface{}{"view_id": viewId})
			internalWS.ServeWs(h.hub, conn, viewId, func() { h.synchronizer.Touch(viewId) })
			h.logger.Info("ViewHandler", "Patch stream ended", map[string]interface{}{"view_id": viewId})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

func (h *ViewHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/view/v1/:id/ws", h.ServeWs)
}
