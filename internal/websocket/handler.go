package websocket

import "github.com/gofiber/websocket/v2"

// ServeWs attaches the connection to the hub and blocks until it closes.
// keepAlive, when set, runs on every ping so a watched view does not idle out.
func ServeWs(hub *Hub, conn *websocket.Conn, viewId string, keepAlive func()) {
	client := newClient(hub, conn, viewId, keepAlive)
	hub.register <- client

	go client.writePump()
	client.readPump()
}
