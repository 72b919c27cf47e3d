package httpserver

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
	wsSendBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// WSMessage is a frame pushed to watchers: "state" after every change of a
// game, "pong" in reply to a "ping".
type WSMessage struct {
	Type    string    `json:"type"`
	Payload *GameView `json:"payload,omitempty"`
}

type wsClient struct {
	conn   *websocket.Conn
	gameID string
	send   chan WSMessage
}

// Hub fans game views out to the websocket watchers of each game.
type Hub struct {
	log zerolog.Logger

	mu   sync.Mutex
	subs map[string]map[*wsClient]struct{}
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{log: log, subs: make(map[string]map[*wsClient]struct{})}
}

// Watchers reports how many clients follow a game.
func (h *Hub) Watchers(gameID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[gameID])
}

func (h *Hub) add(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[c.gameID]
	if !ok {
		set = make(map[*wsClient]struct{})
		h.subs[c.gameID] = set
	}
	set[c] = struct{}{}
}

// remove closes the client's send channel exactly once.
func (h *Hub) remove(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.subs[c.gameID]
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.subs, c.gameID)
	}
	close(c.send)
}

// Broadcast queues view for every watcher of the game. Watchers that do not
// keep up are dropped.
func (h *Hub) Broadcast(gameID string, view GameView) {
	msg := WSMessage{Type: "state", Payload: &view}
	h.mu.Lock()
	var slow []*wsClient
	for c := range h.subs[gameID] {
		select {
		case c.send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.Unlock()
	for _, c := range slow {
		h.log.Warn().Str("game_id", gameID).Msg("dropping slow watcher")
		h.remove(c)
	}
}

// Serve upgrades the request and streams the game's views until the
// client goes away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, gameID string, initial GameView) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Str("game_id", gameID).Msg("websocket upgrade")
		return
	}
	c := &wsClient{conn: conn, gameID: gameID, send: make(chan WSMessage, wsSendBuffer)}
	c.send <- WSMessage{Type: "state", Payload: &initial}
	h.add(c)
	go c.writePump()
	h.readPump(c)
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) readPump(c *wsClient) {
	defer func() {
		h.remove(c)
		_ = c.conn.Close()
	}()
	_ = c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		var msg WSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Type == "ping" {
			h.reply(c, WSMessage{Type: "pong"})
		}
	}
}

func (h *Hub) reply(c *wsClient, msg WSMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[c.gameID][c]; !ok {
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}
