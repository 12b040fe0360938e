package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"hexhaven/internal/config"
	"hexhaven/internal/engine"
	"hexhaven/internal/lobby"
	"hexhaven/internal/qrcode"
	"hexhaven/internal/store"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handlers holds HTTP handler dependencies.
type Handlers struct {
	LobbyMgr *lobby.Manager
	Omens    *engine.OmenRegistry

	cfg   config.Config
	store *store.Store
	log   *slog.Logger

	mu       sync.Mutex
	hubs     map[string]*Hub
	games    uint64     // games created, mixed into fixed seeds
	resuming sync.Mutex // one store load per game
}

func NewHandlers(cfg config.Config, st *store.Store, omens *engine.OmenRegistry, logger *slog.Logger) *Handlers {
	return &Handlers{
		LobbyMgr: lobby.NewManager(),
		Omens:    omens,
		cfg:      cfg,
		store:    st,
		log:      logger,
		hubs:     make(map[string]*Hub),
	}
}

// CreateResponse tells the table screen where phones should join.
type CreateResponse struct {
	GameID  string `json:"game_id"`
	JoinURL string `json:"join_url"`
	QRURL   string `json:"qr_url"`
}

// HandleCreateGame creates a new game lobby and its hub.
func (h *Handlers) HandleCreateGame(w http.ResponseWriter, r *http.Request) {
	gameID := h.LobbyMgr.Create()
	hub := h.newHub(gameID, h.LobbyMgr.Get(gameID))
	go hub.Run()
	h.log.Info("game created", "game", gameID)

	writeJSON(w, http.StatusCreated, CreateResponse{
		GameID:  gameID,
		JoinURL: qrcode.JoinURL(h.baseURL(r), gameID),
		QRURL:   "/api/qr?game=" + gameID,
	})
}

// HandleQR generates a QR code PNG for joining the game.
func (h *Handlers) HandleQR(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	if gameID == "" {
		http.Error(w, "missing game parameter", http.StatusBadRequest)
		return
	}
	png, err := qrcode.PNG(qrcode.JoinURL(h.baseURL(r), gameID))
	if err != nil {
		h.log.Error("qr encode", "game", gameID, "err", err)
		http.Error(w, "QR generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// HandleGames lists saved games, or live rooms when nothing is persisted.
func (h *Handlers) HandleGames(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		games, err := h.store.List(r.Context())
		if err != nil {
			h.log.Error("list games", "err", err)
			http.Error(w, "listing failed", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, games)
		return
	}
	h.mu.Lock()
	ids := make([]string, 0, len(h.hubs))
	for id := range h.hubs {
		ids = append(ids, id)
	}
	h.mu.Unlock()
	writeJSON(w, http.StatusOK, ids)
}

// HandleWS upgrades a table screen or phone connection for a game.
func (h *Handlers) HandleWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	playerID := r.URL.Query().Get("player")
	clientType := r.URL.Query().Get("type") // "tv" or "player"

	if gameID == "" {
		http.Error(w, "missing game parameter", http.StatusBadRequest)
		return
	}
	hub, err := h.hubFor(r, gameID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		hub = nil
	case err != nil:
		h.log.Error("resume game", "game", gameID, "err", err)
		http.Error(w, "could not load game", http.StatusInternalServerError)
		return
	}
	if hub == nil {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade", "err", err)
		return
	}

	client := NewClient(hub, conn, playerID, ParseClientType(clientType))
	if !client.attach() {
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

// HandlePlayerID returns a new player ID.
func (h *Handlers) HandlePlayerID(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(GeneratePlayerID()))
}

// hubFor returns the live hub for gameID, resuming it from the store when
// the server restarted since the game was created.
func (h *Handlers) hubFor(r *http.Request, gameID string) (*Hub, error) {
	h.resuming.Lock()
	defer h.resuming.Unlock()

	h.mu.Lock()
	hub := h.hubs[gameID]
	h.mu.Unlock()
	if hub != nil || h.store == nil {
		return hub, nil
	}

	s, err := h.store.Load(r.Context(), gameID)
	if err != nil {
		return nil, err
	}
	seats := make([]lobby.PlayerInfo, len(s.Players))
	for i, p := range s.Players {
		seats[i] = lobby.PlayerInfo{ID: p.ID, Name: p.Name, Ready: true, Bot: p.Bot}
	}
	hub = h.newHub(gameID, h.LobbyMgr.Restore(gameID, seats))
	hub.Resume(s)
	go hub.Run()
	h.log.Info("game resumed", "game", gameID, "version", s.Version)
	return hub, nil
}

func (h *Handlers) newHub(gameID string, lob *lobby.Lobby) *Hub {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.games++
	seed := h.cfg.Game.Seed
	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewPCG(seed, h.games))
	} else {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	rules := engine.DefaultConfig()
	rules.VictoryPoints = h.cfg.Game.VictoryPoints
	rules.Omens = h.cfg.Game.Omens

	hub := NewHub(gameID, lob, HubOptions{
		Engine:   engine.New(h.Omens, rng),
		Rules:    rules,
		BotDelay: h.cfg.Game.BotDelay,
		Store:    h.store,
		Logger:   h.log,
	})
	h.hubs[gameID] = hub
	return hub
}

// Close stops every hub.
func (h *Handlers) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, hub := range h.hubs {
		hub.Stop()
	}
}

func (h *Handlers) baseURL(r *http.Request) string {
	if h.cfg.Server.BaseURL != "" {
		return h.cfg.Server.BaseURL
	}
	return fmt.Sprintf("http://%s", r.Host)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
