package evaluation

import (
	"fmt"

	"github.com/feltpoker/holdem/engine"
)

// PlayerRecord is one seat of a serialized hand
type PlayerRecord struct {
	ID       int    `json:"id"`
	Cards    string `json:"cards"`
	Position string `json:"position"`
	Stack    int    `json:"stack"`
	Folded   bool   `json:"folded"`
}

// HandRecord is the wire form of a completed hand, as sent to the
// evaluation service and as persisted in hand history
type HandRecord struct {
	HandID         string         `json:"hand_id"`
	StackSize      int            `json:"stack_size"`
	Players        []PlayerRecord `json:"players"`
	Actions        string         `json:"actions"`
	CommunityCards string         `json:"community_cards"`
	StackInfo      string         `json:"stack_info"`
	Positions      string         `json:"positions"`
	HoleCards      string         `json:"hole_cards"`
	Pot            int            `json:"pot"`
}

// HandResult is the evaluation service's response: the record it was
// asked about plus the per-seat payoffs and the formatted winnings line
type HandResult struct {
	HandRecord
	Payoffs  []int  `json:"payoffs"`
	Winnings string `json:"winnings"`
}

// NewHandRecord serializes a terminal GameState for evaluation
func NewHandRecord(g *engine.GameState) HandRecord {
	rec := HandRecord{
		HandID:         g.HandID,
		StackSize:      g.InitialStackSize,
		Actions:        g.Actions,
		CommunityCards: g.CommunityCards.String(),
		StackInfo:      fmt.Sprintf("Stack %d", g.InitialStackSize),
		Positions: fmt.Sprintf("Dealer: Player %d; Player %d Small blind; Player %d Big blind",
			g.DealerPosition+1, g.SmallBlindPosition+1, g.BigBlindPosition+1),
		Pot: g.Pot,
	}

	for i, p := range g.Players {
		rec.Players = append(rec.Players, PlayerRecord{
			ID:       p.ID,
			Cards:    p.HoleCards.String(),
			Position: positionLabel(g, i),
			Stack:    p.Stack,
			Folded:   p.HasFolded,
		})
		if i > 0 {
			rec.HoleCards += "; "
		}
		rec.HoleCards += fmt.Sprintf("Player %d: %s", p.ID, p.HoleCards)
	}

	return rec
}

// positionLabel returns the designated position of a seat: "D", "SB",
// "BB" or blank
func positionLabel(g *engine.GameState, seat int) string {
	switch seat {
	case g.DealerPosition:
		return "D"
	case g.SmallBlindPosition:
		return "SB"
	case g.BigBlindPosition:
		return "BB"
	}
	return ""
}

// FormatWinnings renders payoffs in the display form used everywhere,
// e.g. "Player 1: +60; Player 2: -40"
func FormatWinnings(payoffs []int) string {
	out := ""
	for i, payoff := range payoffs {
		if i > 0 {
			out += "; "
		}
		if payoff > 0 {
			out += fmt.Sprintf("Player %d: +%d", i+1, payoff)
		} else {
			out += fmt.Sprintf("Player %d: %d", i+1, payoff)
		}
	}
	return out
}
