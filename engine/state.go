package engine

import (
	"fmt"

	"github.com/feltpoker/holdem/cards"
)

// Stage is one of the five ordered phases of a hand
type Stage string

const (
	StageNotStarted Stage = "NOT_STARTED"
	StagePreflop    Stage = "PREFLOP"
	StageFlop       Stage = "FLOP"
	StageTurn       Stage = "TURN"
	StageRiver      Stage = "RIVER"
	StageShowdown   Stage = "SHOWDOWN"
)

// nextStage returns the stage following s in hand order
func nextStage(s Stage) Stage {
	switch s {
	case StagePreflop:
		return StageFlop
	case StageFlop:
		return StageTurn
	case StageTurn:
		return StageRiver
	case StageRiver:
		return StageShowdown
	}
	return s
}

// ActionKind is one of the five betting actions a player can take
type ActionKind string

const (
	ActionFold  ActionKind = "fold"
	ActionCheck ActionKind = "check"
	ActionCall  ActionKind = "call"
	ActionBet   ActionKind = "bet"
	ActionRaise ActionKind = "raise"
)

// Betting amounts fixed for every hand
const (
	SmallBlindAmount = 20
	BigBlindAmount   = 40
	MinimumBet       = 40
	MinimumRaise     = 40
)

// Player represents one seat in a hand
type Player struct {
	ID         int         `json:"id"`
	Stack      int         `json:"stack"`
	CurrentBet int         `json:"currentBet"`
	HasFolded  bool        `json:"hasFolded"`
	HoleCards  cards.Stack `json:"holeCards"`
}

// GameState is the aggregate state of a single hand from deal to showdown.
// It is mutated in place by HandleAction; callers own exactly one live
// reference per hand and must serialize actions onto it.
type GameState struct {
	Players            []Player    `json:"players"`
	Deck               cards.Stack `json:"-"`
	CommunityCards     cards.Stack `json:"communityCards"`
	CurrentPosition    int         `json:"currentPosition"`
	DealerPosition     int         `json:"dealerPosition"`
	SmallBlindPosition int         `json:"smallBlindPosition"`
	BigBlindPosition   int         `json:"bigBlindPosition"`
	Stage              Stage       `json:"stage"`
	Pot                int         `json:"pot"`
	CurrentBet         int         `json:"currentBet"`
	RoundStartPosition int         `json:"roundStartPosition"`
	Logs               []string    `json:"logs"`
	HandID             string      `json:"handId"`
	InitialStackSize   int         `json:"initialStackSize"`
	Actions            string      `json:"actions"`
	Winnings           string      `json:"winnings,omitempty"`
	Payoffs            []int       `json:"payoffs,omitempty"`
	Ended              bool        `json:"ended"`
}

// HasEnded reports whether the hand is terminal (showdown reached or a
// single survivor took the pot)
func (g *GameState) HasEnded() bool {
	return g.Ended
}

// currentPlayer returns the seat whose turn it is
func (g *GameState) currentPlayer() *Player {
	return &g.Players[g.CurrentPosition]
}

// activeIndexes returns the seat indexes of all non-folded players
func (g *GameState) activeIndexes() []int {
	var active []int
	for i, p := range g.Players {
		if !p.HasFolded {
			active = append(active, i)
		}
	}
	return active
}

func (g *GameState) appendLog(format string, args ...any) {
	g.Logs = append(g.Logs, fmt.Sprintf(format, args...))
}

// appendActionCode records a compact action code in the per-hand history
// string, e.g. "f:x:c:b40:r120"
func (g *GameState) appendActionCode(code string) {
	if g.Actions == "" {
		g.Actions = code
		return
	}
	g.Actions = g.Actions + ":" + code
}

// assertAccounting panics when chip accounting is broken. A negative
// stack or a pot that disagrees with the sum of committed chips means
// the engine itself is wrong, not the caller.
func (g *GameState) assertAccounting() {
	total := g.Pot
	for _, p := range g.Players {
		if p.Stack < 0 {
			panic(fmt.Sprintf("engine: player %d has negative stack %d in hand %s", p.ID, p.Stack, g.HandID))
		}
		total += p.Stack
	}
	// Committed bets are moved into the pot as they happen, so before the
	// pot is awarded the stacks plus the pot always total the buy-ins.
	if !g.Ended && total != len(g.Players)*g.InitialStackSize {
		panic(fmt.Sprintf("engine: chip total %d != %d in hand %s", total, len(g.Players)*g.InitialStackSize, g.HandID))
	}
}
