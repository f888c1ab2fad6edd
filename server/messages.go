package server

import "encoding/json"

// Envelope wraps every message crossing the websocket with its name
type Envelope struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Command names accepted from clients
const (
	CmdStartGame    = "start_game"
	CmdPlayerAction = "player_action"
	CmdResetGame    = "reset_game"
	CmdLoadHands    = "load_hands"
)

// Message names sent to clients
const (
	MsgGameState   = "game_state"
	MsgHandHistory = "hand_history"
	MsgError       = "error"
)

// StartGameCommand seats a fresh hand
type StartGameCommand struct {
	NumPlayers int `json:"numPlayers"`
	StackSize  int `json:"stackSize"`
}

// PlayerActionCommand applies one betting action to the current hand
type PlayerActionCommand struct {
	Action string `json:"action"`
	Amount int    `json:"amount"`
}

// LoadHandsCommand requests the hand history feed
type LoadHandsCommand struct {
	Limit int `json:"limit"`
}

// ErrorPayload carries a command failure back to its issuer
type ErrorPayload struct {
	Message string `json:"message"`
}

func envelope(name string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Name: name, Payload: raw})
}
