package controllers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"jelly/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     sameOrigin,
}

// sameOrigin only lets the dashboard's own pages open a socket
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

// WebSocketController streams stats on request and relays settings changes
type WebSocketController struct {
	hub     *services.WebSocketHub
	sampler *services.Sampler
	nextID  atomic.Uint64
}

func NewWebSocketController(hub *services.WebSocketHub, sampler *services.Sampler) *WebSocketController {
	return &WebSocketController{hub: hub, sampler: sampler}
}

// HandleWebSocket upgrades the connection and registers it with the hub
func (wc *WebSocketController) HandleWebSocket(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Warn("[WS] Upgrade error")
		return
	}

	client := services.NewClientConnection(fmt.Sprintf("%s-%d", c.ClientIP(), wc.nextID.Add(1)), ws)
	wc.hub.Register(client)

	go wc.writePump(client)
	go wc.readPump(client)
}

// readPump handles client requests. Every "stats" request takes one sample.
func (wc *WebSocketController) readPump(client *services.ClientConnection) {
	defer func() {
		wc.hub.Unregister(client.ID)
		client.Conn.Close()
	}()

	for {
		var msg services.WebSocketMessage
		if err := client.Conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Warn("[WS] Read error")
			}
			return
		}

		var reply services.WebSocketMessage
		switch msg.Type {
		case "stats":
			reply = services.WebSocketMessage{Type: "stats", Data: wc.sampler.Sample(context.Background())}
		case "ping":
			reply = services.WebSocketMessage{Type: "pong"}
		default:
			reply = services.WebSocketMessage{Type: "error", Error: "unknown message type: " + msg.Type}
		}
		reply.Timestamp = time.Now()

		select {
		case client.Send <- reply:
		case <-client.Close:
			return
		default:
			log.Warnf("[WS] Send queue full for %s, dropping %s reply", client.ID, reply.Type)
		}
	}
}

// writePump writes queued messages until the hub releases the client
func (wc *WebSocketController) writePump(client *services.ClientConnection) {
	defer client.Conn.Close()

	for {
		select {
		case msg := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.Conn.WriteJSON(msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.WithError(err).Warn("[WS] Write error")
				}
				return
			}

		case <-client.Close:
			client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
