package remote

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/maxwellsmart84/portfolio-2025/internal/game"
	"github.com/maxwellsmart84/portfolio-2025/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init(logger.Options{Level: "error", Output: io.Discard})
	os.Exit(m.Run())
}

type chanSender chan game.Event

func (c chanSender) Send(ev game.Event) bool {
	select {
	case c <- ev:
		return true
	default:
		return false
	}
}

func TestMessageEvent(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   game.Event
		wantOK bool
	}{
		{"key down", `{"type":"key","key":"a","down":true}`, game.Event{Kind: game.EventKey, Key: "a", Down: true}, true},
		{"key up", `{"type":"key","key":"ArrowRight"}`, game.Event{Kind: game.EventKey, Key: "ArrowRight"}, true},
		{"touch", `{"type":"touch","x":0.2,"down":true}`, game.Event{Kind: game.EventTouch, X: 0.2, Down: true}, true},
		{"continue", `{"type":"continue"}`, game.Event{Kind: game.EventContinue}, true},
		{"reset", `{"type":"reset"}`, game.Event{Kind: game.EventReset}, true},
		{"key without name", `{"type":"key","down":true}`, game.Event{}, false},
		{"unused key", `{"type":"key","key":"q","down":true}`, game.Event{}, false},
		{"continue key", `{"type":"key","key":"Enter","down":true}`, game.Event{Kind: game.EventKey, Key: "Enter", Down: true}, true},
		{"unknown", `{"type":"dance"}`, game.Event{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Message
			if err := json.Unmarshal([]byte(tt.raw), &m); err != nil {
				t.Fatal(err)
			}
			got, ok := m.Event()
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Event() = %+v, %v; want %+v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for h.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("clients = %d, want %d", h.Clients(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubRoundTrip(t *testing.T) {
	input := make(chanSender, 4)
	hub := NewHub(input)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()
	defer hub.Close()

	conn := dial(t, srv)
	waitClients(t, hub, 1)

	s, err := game.NewSession(game.DefaultLevel(), game.Options{Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	s.Tick()
	hub.Broadcast(s.Snapshot())

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var snap game.Snapshot
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if snap.Tick != 1 || snap.Total != 6 || snap.Phase != "inactive" {
		t.Errorf("snapshot = tick %d total %d phase %q", snap.Tick, snap.Total, snap.Phase)
	}

	if err := conn.WriteJSON(Message{Type: "key", Key: "d", Down: true}); err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(Message{Type: "bogus"}); err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(Message{Type: "continue"}); err != nil {
		t.Fatal(err)
	}

	want := []game.Event{
		{Kind: game.EventKey, Key: "d", Down: true},
		{Kind: game.EventContinue},
	}
	for i, w := range want {
		select {
		case got := <-input:
			if got != w {
				t.Errorf("event %d = %+v, want %+v", i, got, w)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("event %d never arrived", i)
		}
	}

	conn.Close()
	waitClients(t, hub, 0)
}

func TestLateClientGetsLastSnapshot(t *testing.T) {
	hub := NewHub(make(chanSender, 1))
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()
	defer hub.Close()

	hub.Broadcast(game.Snapshot{Tick: 42, Phase: "typing"})

	conn := dial(t, srv)
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var snap game.Snapshot
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if snap.Tick != 42 || snap.Phase != "typing" {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestSnapshotEndpoint(t *testing.T) {
	hub := NewHub(make(chanSender, 1))
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/snapshot")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status before broadcast = %d", resp.StatusCode)
	}

	hub.Broadcast(game.Snapshot{Tick: 7, Score: 300})
	resp, err = http.Get(srv.URL + "/snapshot")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var snap game.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatal(err)
	}
	if snap.Tick != 7 || snap.Score != 300 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestClosedHubRefusesClients(t *testing.T) {
	hub := NewHub(make(chanSender, 1))
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	waitClients(t, hub, 1)
	hub.Close()
	if n := hub.Clients(); n != 0 {
		t.Fatalf("clients after close = %d", n)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
		t.Errorf("connected client read %v, want a close frame", err)
	}

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	late, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		late.Close()
		t.Fatal("closed hub accepted a new connection")
	}
	if resp == nil {
		t.Fatalf("late dial failed without a response: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("late dial status = %d, want 503", resp.StatusCode)
	}

	c := &client{hub: hub, send: make(chan []byte, sendBuffer)}
	if hub.register(c) {
		t.Error("register succeeded after close")
	}
	if n := hub.Clients(); n != 0 {
		t.Errorf("clients = %d, want 0", n)
	}
}
