package editor

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/lpforge/lpforge/internal/render"
	"github.com/lpforge/lpforge/internal/session"
)

func TestPreviewWebsocket(t *testing.T) {
	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	mgr := session.NewManager("")
	hub := NewHub(renderer)
	r := chi.NewRouter()
	RegisterRoutes(r, mgr, renderer, hub)

	srv := httptest.NewServer(r)
	defer srv.Close()

	s, err := mgr.Create(nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/sessions/" + s.ID + "/preview"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dialing %s: %v", wsURL, err)
	}
	defer conn.Close()
	defer resp.Body.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var frame previewMessage
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("reading initial frame: %v", err)
	}
	if frame.Type != "preview" || !strings.Contains(frame.HTML, "<!DOCTYPE html>") {
		t.Errorf("unexpected initial frame type %q", frame.Type)
	}
	if frame.Revision != 0 {
		t.Errorf("expected revision 0, got %d", frame.Revision)
	}

	// A client refresh yields a fresh frame.
	if err := conn.WriteJSON(clientMessage{Type: "refresh"}); err != nil {
		t.Fatalf("sending refresh: %v", err)
	}
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("reading refresh frame: %v", err)
	}
	if frame.Type != "preview" {
		t.Errorf("unexpected refresh frame type %q", frame.Type)
	}

	// A committed mutation pushes the new state to the open connection.
	body := strings.NewReader(`{"path": "site.title", "value": "PUSHED-TITLE"}`)
	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/sessions/"+s.ID+"/fields", body)
	req.Header.Set("Content-Type", "application/json")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("field update: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("field update: status %d", res.StatusCode)
	}

	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("reading pushed frame: %v", err)
	}
	if !strings.Contains(frame.HTML, "PUSHED-TITLE") {
		t.Error("pushed frame does not reflect the mutation")
	}
	if frame.Revision != 1 {
		t.Errorf("expected revision 1, got %d", frame.Revision)
	}
}

func TestConcurrentBroadcasts(t *testing.T) {
	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	mgr := session.NewManager("")
	hub := NewHub(renderer)
	r := chi.NewRouter()
	RegisterRoutes(r, mgr, renderer, hub)

	srv := httptest.NewServer(r)
	defer srv.Close()

	s, err := mgr.Create(nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/sessions/" + s.ID + "/preview"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dialing %s: %v", wsURL, err)
	}
	defer conn.Close()
	defer resp.Body.Close()
	conn.SetReadDeadline(time.Now().Add(10 * time.Second))

	var frame previewMessage
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("reading initial frame: %v", err)
	}

	// Broadcast from several mutation goroutines while the read loop is
	// answering refreshes, so both write paths hit the connection at once.
	const broadcasters = 8
	const refreshes = 4
	var wg sync.WaitGroup
	for i := 0; i < broadcasters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Broadcast(s)
		}()
	}
	for i := 0; i < refreshes; i++ {
		if err := conn.WriteJSON(clientMessage{Type: "refresh"}); err != nil {
			t.Fatalf("sending refresh: %v", err)
		}
	}

	for i := 0; i < broadcasters+refreshes; i++ {
		if err := conn.ReadJSON(&frame); err != nil {
			t.Fatalf("reading frame %d: %v", i, err)
		}
		if frame.Type != "preview" {
			t.Fatalf("frame %d: unexpected type %q", i, frame.Type)
		}
	}
	wg.Wait()
}

func TestHubFrame(t *testing.T) {
	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	mgr := session.NewManager("")
	hub := NewHub(renderer)

	s, err := mgr.Create(nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	frame := hub.frame(s)
	if frame.Type != "preview" {
		t.Fatalf("unexpected frame type %q", frame.Type)
	}
	if !strings.Contains(frame.HTML, "<!DOCTYPE html>") {
		t.Error("frame is not a full page")
	}

	// Broadcast with no connections is a no-op.
	hub.Broadcast(s)
}
