package editor

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/lpforge/lpforge/internal/document"
	"github.com/lpforge/lpforge/internal/render"
	"github.com/lpforge/lpforge/internal/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// previewConn wraps a websocket connection with a write lock. Frames
// reach a connection from two goroutines: its own read loop (initial
// frame, refresh replies) and whichever request goroutine committed a
// mutation and is now broadcasting. The websocket package allows only
// one concurrent writer, so every frame goes through send.
type previewConn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func (c *previewConn) send(msg previewMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(msg)
}

// Hub tracks the live-preview websocket connections per session and
// pushes a freshly rendered frame after every committed mutation.
type Hub struct {
	renderer *render.Renderer

	mu    sync.Mutex
	conns map[string]map[*previewConn]bool
}

// NewHub returns a Hub rendering frames with the given renderer.
func NewHub(renderer *render.Renderer) *Hub {
	return &Hub{
		renderer: renderer,
		conns:    make(map[string]map[*previewConn]bool),
	}
}

func (h *Hub) add(sessionID string, conn *previewConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[sessionID] == nil {
		h.conns[sessionID] = make(map[*previewConn]bool)
	}
	h.conns[sessionID][conn] = true
}

func (h *Hub) remove(sessionID string, conn *previewConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns[sessionID], conn)
	if len(h.conns[sessionID]) == 0 {
		delete(h.conns, sessionID)
	}
}

// Broadcast renders the session's document and pushes the frame to
// every preview connection of that session. Connections that fail to
// write are dropped.
func (h *Hub) Broadcast(s *session.Session) {
	msg := h.frame(s)

	h.mu.Lock()
	conns := make([]*previewConn, 0, len(h.conns[s.ID]))
	for c := range h.conns[s.ID] {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		if err := c.send(msg); err != nil {
			log.Printf("editor: preview push to session %s: %v", s.ID, err)
			h.remove(s.ID, c)
			c.ws.Close()
		}
	}
}

// frame renders one preview message for the session's current state.
func (h *Hub) frame(s *session.Session) previewMessage {
	var html string
	var revision int
	var renderErr error
	s.View(func(doc *document.Document, rev int) {
		html, renderErr = h.renderer.Render(doc, false)
		revision = rev
	})
	if renderErr != nil {
		return previewMessage{Type: "error", Error: renderErr.Error()}
	}
	return previewMessage{Type: "preview", HTML: html, Revision: revision}
}

// ServeWS upgrades the request and streams preview frames until the
// client goes away. The first frame is sent immediately so a freshly
// attached preview shows current state.
func (h *Hub) ServeWS(s *session.Session, w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("editor: websocket upgrade: %v", err)
		return
	}
	conn := &previewConn{ws: ws}
	h.add(s.ID, conn)
	defer func() {
		h.remove(s.ID, conn)
		ws.Close()
	}()

	if err := conn.send(h.frame(s)); err != nil {
		return
	}

	for {
		var msg clientMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("editor: websocket read: %v", err)
			}
			return
		}
		if msg.Type == "refresh" {
			if err := conn.send(h.frame(s)); err != nil {
				return
			}
		}
	}
}
