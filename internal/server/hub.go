package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"hexhaven/internal/board"
	"hexhaven/internal/bot"
	"hexhaven/internal/engine"
	"hexhaven/internal/lobby"
	"hexhaven/internal/protocol"
	"hexhaven/internal/store"
)

const saveTimeout = 5 * time.Second

// botTurn is a bot action computed against state version Version.
type botTurn struct {
	Player  string
	Version int
}

// Hub owns one game room. Every message and bot move for the room is
// handled on the Run goroutine, so the game state needs no lock.
type Hub struct {
	mu         sync.Mutex
	gameID     string
	lobby      *lobby.Lobby
	engine     *engine.Engine
	rules      engine.Config
	botDelay   time.Duration
	store      *store.Store
	log        *slog.Logger
	state      *engine.State
	saved      int // version last written to the store
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	incoming   chan IncomingMessage
	botMoves   chan botTurn
	quit       chan struct{}
	stopOnce   sync.Once
}

// HubOptions carries what a room needs besides its lobby.
type HubOptions struct {
	Engine   *engine.Engine
	Rules    engine.Config
	BotDelay time.Duration
	Store    *store.Store // nil disables snapshots
	Logger   *slog.Logger
}

func NewHub(gameID string, lob *lobby.Lobby, opts HubOptions) *Hub {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		gameID:     gameID,
		lobby:      lob,
		engine:     opts.Engine,
		rules:      opts.Rules,
		botDelay:   opts.BotDelay,
		store:      opts.Store,
		log:        logger.With("game", gameID),
		saved:      store.NoSnapshot,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan IncomingMessage, 256),
		botMoves:   make(chan botTurn, 8),
		quit:       make(chan struct{}),
	}
}

// Resume installs a state loaded from the store. Call it before Run.
func (h *Hub) Resume(s *engine.State) {
	h.state = s
	h.saved = s.Version
}

func (h *Hub) Run() {
	h.scheduleBot()
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.sendLobbyUpdate()
			if h.state != nil {
				h.sendStateToClient(client)
			}

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.lobby.Leave(client.PlayerID)
			h.sendLobbyUpdate()

		case msg := <-h.incoming:
			h.handleMessage(msg)

		case turn := <-h.botMoves:
			h.handleBotTurn(turn)

		case <-h.quit:
			return
		}
	}
}

// Stop ends Run. Pending bot timers fire into a closed room and are dropped.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
}

func (h *Hub) handleMessage(msg IncomingMessage) {
	switch msg.Envelope.Type {
	case protocol.MsgJoin:
		h.handleJoin(msg)
	case protocol.MsgReady:
		h.handleReady(msg)
	case protocol.MsgAddBot:
		h.handleAddBot(msg)
	case protocol.MsgStartGame:
		h.handleStartGame(msg)
	default:
		h.handleGameAction(msg)
	}
}

func (h *Hub) handleJoin(msg IncomingMessage) {
	var join protocol.JoinMsg
	if err := msg.Envelope.Decode(&join); err != nil || join.PlayerID == "" {
		h.sendError(msg.Client, "invalid join message")
		return
	}
	msg.Client.PlayerID = join.PlayerID
	if err := h.lobby.Join(join.PlayerID, join.Name); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	h.sendLobbyUpdate()
	if h.state != nil {
		h.sendStateToClient(msg.Client)
	}
}

func (h *Hub) handleReady(msg IncomingMessage) {
	var ready protocol.ReadyMsg
	if err := msg.Envelope.Decode(&ready); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	if err := h.lobby.SetReady(msg.Client.PlayerID, ready.Ready); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	h.sendLobbyUpdate()
}

func (h *Hub) handleAddBot(msg IncomingMessage) {
	var add protocol.AddBotMsg
	if err := msg.Envelope.Decode(&add); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	p, err := h.lobby.AddBot(add.Name)
	if err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	h.log.Info("bot seated", "player", p.ID)
	h.sendLobbyUpdate()
}

func (h *Hub) handleStartGame(msg IncomingMessage) {
	var start protocol.StartGameMsg
	if err := msg.Envelope.Decode(&start); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	if err := h.lobby.CanStart(); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}

	rules := h.rules
	if start.Omens != nil {
		rules.Omens = *start.Omens
	}
	b, err := board.Generate(board.DefaultGenConfig(), h.engine.Rand())
	if err != nil {
		h.log.Error("board generation failed", "err", err)
		h.sendError(msg.Client, "could not generate a board")
		return
	}

	seats, err := h.lobby.Start()
	if err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	players := make([]engine.Player, len(seats))
	for i, lp := range seats {
		players[i] = engine.NewPlayer(lp.ID, lp.Name)
		players[i].Bot = lp.Bot
	}
	s, err := h.engine.NewGame(b, players, rules)
	if err != nil {
		h.log.Error("new game failed", "err", err)
		h.sendError(msg.Client, err.Error())
		return
	}

	h.state = s
	h.log.Info("game started", "players", len(players), "omens", rules.Omens)
	h.persist()
	h.sendLobbyUpdate()
	h.broadcastState()
	h.scheduleBot()
}

func (h *Hub) handleGameAction(msg IncomingMessage) {
	if h.state == nil {
		h.sendError(msg.Client, "game not started")
		return
	}
	action, err := parseAction(msg.Envelope)
	if err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	if err := h.apply(msg.Client.PlayerID, action); err != nil {
		h.sendError(msg.Client, err.Error())
	}
}

func (h *Hub) handleBotTurn(turn botTurn) {
	if h.state == nil || h.state.Version != turn.Version {
		h.log.Debug("stale bot turn dropped", "player", turn.Player, "version", turn.Version)
		return
	}
	action, ok := bot.Decide(h.engine, h.state, turn.Player)
	if !ok {
		h.log.Warn("bot has no move", "player", turn.Player, "phase", h.state.Phase.String())
		return
	}
	if err := h.apply(turn.Player, action); err != nil {
		h.log.Error("bot action rejected", "player", turn.Player, "action", action.Type, "err", err)
	}
}

// apply runs one action through the engine and, on success, stores and
// broadcasts the new state.
func (h *Hub) apply(playerID string, action engine.Action) error {
	next, events, err := h.engine.Apply(h.state, playerID, action)
	if err != nil {
		return err
	}
	h.state = next
	h.persist()
	h.broadcastEvents(events)
	h.broadcastState()
	if next.Phase == engine.PhaseEnded {
		h.log.Info("game over", "winner", next.Winner, "version", next.Version)
		return nil
	}
	h.scheduleBot()
	return nil
}

// scheduleBot queues a move for the current player if it is a bot. The move
// carries the version it was scheduled against so a stale timer is harmless.
func (h *Hub) scheduleBot() {
	if h.state == nil || h.state.Phase == engine.PhaseEnded {
		return
	}
	cur := h.state.Current()
	if cur == nil || !cur.Bot {
		return
	}
	turn := botTurn{Player: cur.ID, Version: h.state.Version}
	time.AfterFunc(h.botDelay, func() {
		select {
		case h.botMoves <- turn:
		case <-h.quit:
		}
	})
}

func (h *Hub) persist() {
	if h.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := h.store.Save(ctx, h.gameID, h.saved, h.state); err != nil {
		if errors.Is(err, store.ErrStaleSnapshot) {
			h.log.Error("snapshot written by another process", "err", err)
		} else {
			h.log.Error("save snapshot", "err", err)
		}
		return
	}
	h.saved = h.state.Version
}

func parseAction(env protocol.Envelope) (engine.Action, error) {
	var action engine.Action
	if err := env.Decode(&action); err != nil {
		return engine.Action{}, err
	}
	action.Type = engine.ActionType(env.Type)
	return action, nil
}

func (h *Hub) broadcastEvents(events []engine.Event) {
	for _, ev := range events {
		h.broadcastAll(protocol.MustEnvelope(protocol.MsgEvent, ev))
	}
}

func (h *Hub) broadcastState() {
	if h.state == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		h.sendStateToClient(client)
	}
}

func (h *Hub) sendStateToClient(client *Client) {
	if h.state == nil {
		return
	}
	if client.Type == ClientTV || h.state.GetPlayer(client.PlayerID) == nil {
		client.SendEnvelope(protocol.MustEnvelope(protocol.MsgGameState, h.state.PublicView()))
		return
	}
	view := h.engine.ViewFor(h.state, client.PlayerID)
	client.SendEnvelope(protocol.MustEnvelope(protocol.MsgPlayerState, view))
}

func (h *Hub) sendLobbyUpdate() {
	players := h.lobby.GetPlayers()
	lps := make([]protocol.LobbyPlayer, len(players))
	for i, p := range players {
		lps[i] = protocol.LobbyPlayer{ID: p.ID, Name: p.Name, Ready: p.Ready, Bot: p.Bot}
	}
	h.broadcastAll(protocol.MustEnvelope(protocol.MsgLobbyUpdate, protocol.LobbyUpdate{
		GameID:  h.gameID,
		Players: lps,
		Started: h.lobby.IsStarted(),
	}))
}

func (h *Hub) broadcastAll(env protocol.Envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := json.Marshal(env)
	if err != nil {
		h.log.Error("broadcast marshal", "err", err)
		return
	}
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			h.log.Warn("client buffer full", "player", client.PlayerID)
		}
	}
}

func (h *Hub) sendError(client *Client, message string) {
	client.SendEnvelope(errorEnvelope(message))
}
