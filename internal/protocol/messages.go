package protocol

// Message types: Server → Client
const (
	MsgLobbyUpdate = "lobby_update"
	MsgGameState   = "game_state"   // public view, for the shared screen
	MsgPlayerState = "player_state" // one seat's view
	MsgEvent       = "event"
	MsgError       = "error"
)

// Message types: Client → Server
const (
	MsgJoin      = "join"
	MsgReady     = "ready"
	MsgStartGame = "start_game"
	MsgAddBot    = "add_bot"
	// In-game actions use the same names as engine ActionType.
	MsgRollOrder       = "roll_order"
	MsgRoll            = "roll"
	MsgMoveRobber      = "move_robber"
	MsgBuildRoad       = "build_road"
	MsgBuildSettlement = "build_settlement"
	MsgBuildCity       = "build_city"
	MsgTrade           = "trade"
	MsgDrawOmen        = "draw_omen"
	MsgPlayOmen        = "play_omen"
	MsgEndTurn         = "end_turn"
)

// LobbyUpdate is sent to all clients when lobby state changes.
type LobbyUpdate struct {
	GameID  string        `json:"game_id"`
	Players []LobbyPlayer `json:"players"`
	Started bool          `json:"started"`
}

type LobbyPlayer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Ready bool   `json:"ready"`
	Bot   bool   `json:"bot,omitempty"`
}

// JoinMsg is sent by a player to join the game.
type JoinMsg struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

// ReadyMsg is sent by a player to toggle ready state.
type ReadyMsg struct {
	Ready bool `json:"ready"`
}

// StartGameMsg may switch Omens on or off for this game; nil keeps the
// server default.
type StartGameMsg struct {
	Omens *bool `json:"omens,omitempty"`
}

type AddBotMsg struct {
	Name string `json:"name,omitempty"`
}

// ErrorMsg is sent to a client on error.
type ErrorMsg struct {
	Message string `json:"message"`
}
