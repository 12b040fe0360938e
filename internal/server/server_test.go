package server_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"hexhaven/internal/config"
	"hexhaven/internal/engine"
	"hexhaven/internal/engine/omens"
	"hexhaven/internal/protocol"
	"hexhaven/internal/server"
	"hexhaven/internal/store"
)

func newServer(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()
	ts, _, st := startServer(t)
	return ts, st
}

func startServer(t *testing.T) (*httptest.Server, *server.Server, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "games.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	cfg := config.Default()
	cfg.Game.BotDelay = 0
	cfg.Game.Seed = 3
	srv := server.New(cfg, st, omens.NewRegistry(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		srv.Close()
		st.Close()
	})
	return ts, srv, st
}

func createGame(t *testing.T, ts *httptest.Server) server.CreateResponse {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/create", "application/json", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status %d", resp.StatusCode)
	}
	var created server.CreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	return created
}

func dial(t *testing.T, ts *httptest.Server, gameID, playerID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?game=" + gameID + "&player=" + playerID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	if err := conn.WriteJSON(protocol.MustEnvelope(typ, payload)); err != nil {
		t.Fatalf("send %s: %v", typ, err)
	}
}

// await reads envelopes until match accepts one.
func await(t *testing.T, conn *websocket.Conn, what string, match func(protocol.Envelope) bool) protocol.Envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		var env protocol.Envelope
		if err := conn.ReadJSON(&env); err != nil {
			t.Fatalf("waiting for %s: %v", what, err)
		}
		if match(env) {
			return env
		}
	}
}

func isType(typ string) func(protocol.Envelope) bool {
	return func(env protocol.Envelope) bool { return env.Type == typ }
}

func TestGameWithBot(t *testing.T) {
	ts, st := newServer(t)
	game := createGame(t, ts)
	if !strings.Contains(game.JoinURL, game.GameID) {
		t.Fatalf("join url %q does not name the game", game.JoinURL)
	}

	conn := dial(t, ts, game.GameID, "p1")
	send(t, conn, protocol.MsgJoin, protocol.JoinMsg{PlayerID: "p1", Name: "Ada"})
	send(t, conn, protocol.MsgAddBot, protocol.AddBotMsg{})
	send(t, conn, protocol.MsgStartGame, protocol.StartGameMsg{})
	await(t, conn, "not-ready error", isType(protocol.MsgError))

	send(t, conn, protocol.MsgReady, protocol.ReadyMsg{Ready: true})
	send(t, conn, protocol.MsgStartGame, protocol.StartGameMsg{})
	env := await(t, conn, "player state", isType(protocol.MsgPlayerState))
	var view engine.PlayerViewData
	if err := env.Decode(&view); err != nil {
		t.Fatal(err)
	}
	if view.Phase != engine.PhaseRollOrder.String() || !view.IsMyTurn || len(view.Players) != 2 {
		t.Fatalf("unexpected first view: phase %s, my turn %v, %d players", view.Phase, view.IsMyTurn, len(view.Players))
	}

	send(t, conn, protocol.MsgRoll, nil)
	env = await(t, conn, "wrong phase error", isType(protocol.MsgError))
	var msg protocol.ErrorMsg
	env.Decode(&msg)
	if msg.Message != engine.ErrWrongPhase.Error() {
		t.Fatalf("got error %q, want %q", msg.Message, engine.ErrWrongPhase)
	}

	send(t, conn, protocol.MsgRollOrder, nil)
	await(t, conn, "bot order roll", func(env protocol.Envelope) bool {
		if env.Type != protocol.MsgEvent {
			return false
		}
		var ev engine.Event
		env.Decode(&ev)
		return ev.Type == engine.EventOrderRolled && ev.Player == "bot-1"
	})

	saved, err := st.Load(context.Background(), game.GameID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if saved.Version < 2 {
		t.Fatalf("got saved version %d, want at least 2", saved.Version)
	}
}

func TestHTTPRoutes(t *testing.T) {
	ts, _ := newServer(t)
	game := createGame(t, ts)

	resp, err := http.Get(ts.URL + game.QRURL)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/png" {
		t.Fatalf("qr: status %d, type %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}

	resp, err = http.Get(ts.URL + "/api/player-id")
	if err != nil {
		t.Fatal(err)
	}
	id, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if len(id) == 0 {
		t.Fatal("empty player id")
	}

	resp, err = http.Get(ts.URL + "/ws?game=nope")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown game: got status %d, want 404", resp.StatusCode)
	}
}

func TestBadMessages(t *testing.T) {
	ts, _ := newServer(t)
	game := createGame(t, ts)
	conn := dial(t, ts, game.GameID, "p1")

	for _, tc := range []struct {
		raw  string
		want string
	}{
		{"not json", "malformed message"},
		{`{"payload":{}}`, "message has no type"},
	} {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(tc.raw)); err != nil {
			t.Fatal(err)
		}
		env := await(t, conn, "error for "+tc.raw, isType(protocol.MsgError))
		var msg protocol.ErrorMsg
		env.Decode(&msg)
		if msg.Message != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.raw, msg.Message, tc.want)
		}
	}
}

func TestClosedRoomHangsUp(t *testing.T) {
	ts, srv, _ := startServer(t)
	game := createGame(t, ts)
	conn := dial(t, ts, game.GameID, "p1")
	send(t, conn, protocol.MsgJoin, protocol.JoinMsg{PlayerID: "p1", Name: "Ada"})
	await(t, conn, "lobby update", isType(protocol.MsgLobbyUpdate))

	srv.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		_, _, err := conn.ReadMessage()
		if err == nil {
			continue
		}
		if !websocket.IsCloseError(err, websocket.CloseGoingAway) {
			t.Fatalf("expected a going-away close, got %v", err)
		}
		return
	}
}
