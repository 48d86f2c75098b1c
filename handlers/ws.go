// handlers/ws.go - realtime event feed per game
package handlers

import (
	"strconv"

	"coringas/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type WSHandler struct {
	events *services.EventBroker
}

func NewWSHandler(events *services.EventBroker) *WSHandler {
	return &WSHandler{events: events}
}

// Upgrade gates the websocket upgrade for /ws routes.
func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// GameFeed streams quest and evaluation events for one game.
// GET /ws/games/:id
func (h *WSHandler) GameFeed() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		gameID, err := strconv.Atoi(conn.Params("id"))
		if err != nil || gameID <= 0 {
			conn.Close()
			return
		}

		ch := h.events.Subscribe(uint(gameID))
		defer h.events.Unsubscribe(uint(gameID), ch)

		// Reader goroutine: detect client disconnect.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	})
}
