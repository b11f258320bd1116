package message

import (
	"log"
	"net/http"
	"strings"
	"time"

	"rentalconnect/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
	maxFrameSize = 4096
)

// WSHandler upgrades authenticated requests onto the live message feed.
// The feed is push-only; frames sent by the client are read and discarded.
type WSHandler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

func NewWSHandler(hub *Hub, allowedOrigin string) *WSHandler {
	allowedOrigin = strings.TrimRight(strings.TrimSpace(allowedOrigin), "/")
	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Same single origin as CORS; non-browser clients send none.
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origin == allowedOrigin
			},
		},
	}
}

// Serve handles GET /api/messages/ws.
// @Summary   Live message feed (websocket)
// @Tags      Messages
// @Success   101
// @Failure   401 {object} map[string]interface{}
// @Router    /messages/ws [get]
func (h *WSHandler) Serve(c *gin.Context) {
	me, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("level=warn msg=websocket upgrade failed user_id=%d err=%v", me.UserID, err)
		return
	}

	cl := h.hub.Register(me.UserID, conn)
	log.Printf("level=info msg=websocket connected user_id=%d", me.UserID)

	done := make(chan struct{})
	defer func() {
		close(done)
		h.hub.Unregister(me.UserID, cl)
		log.Printf("level=info msg=websocket disconnected user_id=%d", me.UserID)
	}()

	conn.SetReadLimit(maxFrameSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go pingLoop(cl, done)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("level=warn msg=websocket read error user_id=%d err=%v", me.UserID, err)
			}
			return
		}
	}
}

func pingLoop(cl *client, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := cl.ping(); err != nil {
				return
			}
		}
	}
}
