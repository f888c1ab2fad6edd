package engine

import (
	"fmt"

	"github.com/feltpoker/holdem/cards"
)

// HandleAction is the single entry point for driving a hand forward. It
// validates the action for the seat at CurrentPosition, applies it, then
// advances the turn, the betting round and the stage as needed.
//
// An illegal action returns *InvalidActionError and leaves the state
// untouched. Acting on a hand that has not started or has ended returns
// *ProtocolViolationError. An action routed to a seat that already folded
// is a tolerated no-op, so the reducer stays total for stale callers.
func (g *GameState) HandleAction(kind ActionKind, amount int) error {
	if g.Stage == StageNotStarted {
		return &ProtocolViolationError{Reason: "hand has not started"}
	}
	if g.Ended || g.Stage == StageShowdown {
		return &ProtocolViolationError{Reason: "hand has already ended"}
	}

	p := g.currentPlayer()
	if p.HasFolded {
		return nil
	}

	if !g.IsValidAction(kind) {
		return &InvalidActionError{Action: kind, Reason: g.invalidReason(kind)}
	}
	switch kind {
	case ActionBet:
		if amount <= 0 {
			return &InvalidActionError{Action: kind, Reason: "bet amount must be positive"}
		}
	case ActionRaise:
		if min(amount, p.Stack+p.CurrentBet) <= g.CurrentBet {
			return &InvalidActionError{Action: kind, Reason: "raise target must exceed the current bet"}
		}
	}

	g.applyAction(p, kind, amount)

	nextPosition := g.FindNextPosition()

	// Last player standing takes the pot immediately, whatever the stage
	if active := g.activeIndexes(); len(active) == 1 {
		winner := &g.Players[active[0]]
		winner.Stack += g.Pot
		g.Winnings = g.CalculateWinnings()
		g.Ended = true
		g.assertAccounting()
		return nil
	}

	if g.IsRoundComplete(nextPosition, kind) {
		if g.Stage == StageRiver {
			g.Stage = StageShowdown
			g.Winnings = g.CalculateWinnings()
			g.Ended = true
		} else {
			g.advanceStage()
		}
		g.assertAccounting()
		return nil
	}

	g.CurrentPosition = nextPosition
	g.assertAccounting()
	return nil
}

// applyAction moves the chips for a single validated action, records the
// compact action code and appends the log line. Bet and raise amounts are
// clamped to the player's stack, so an oversized amount is an all-in.
func (g *GameState) applyAction(p *Player, kind ActionKind, amount int) {
	switch kind {
	case ActionFold:
		p.HasFolded = true
		g.appendActionCode("f")
		g.appendLog("Player %d folds", p.ID)

	case ActionCheck:
		g.appendActionCode("x")
		g.appendLog("Player %d checks", p.ID)

	case ActionCall:
		amountToCall := g.CurrentBet - p.CurrentBet
		actualAmount := min(amountToCall, p.Stack)
		p.Stack -= actualAmount
		p.CurrentBet += actualAmount
		g.Pot += actualAmount
		g.appendActionCode("c")
		if p.Stack == 0 {
			g.appendLog("Player %d calls all-in", p.ID)
		} else {
			g.appendLog("Player %d calls", p.ID)
		}

	case ActionBet:
		betAmount := min(amount, p.Stack)
		p.Stack -= betAmount
		p.CurrentBet = betAmount
		g.CurrentBet = betAmount
		g.Pot += betAmount
		g.appendActionCode(fmt.Sprintf("b%d", betAmount))
		if p.Stack == 0 {
			g.appendLog("Player %d bets all-in", p.ID)
		} else {
			g.appendLog("Player %d bets %d chips", p.ID, betAmount)
		}

	case ActionRaise:
		// amount is the target total for the round, not the increment
		raiseTotal := min(amount, p.Stack+p.CurrentBet)
		raiseAmount := raiseTotal - p.CurrentBet
		p.Stack -= raiseAmount
		p.CurrentBet = raiseTotal
		g.CurrentBet = raiseTotal
		g.Pot += raiseAmount
		g.appendActionCode(fmt.Sprintf("r%d", raiseTotal))
		if p.Stack == 0 {
			g.appendLog("Player %d raises all-in", p.ID)
		} else {
			g.appendLog("Player %d raises on %d chips", p.ID, raiseTotal)
		}
	}
}

// FindNextPosition returns the next seat to act, scanning forward from
// CurrentPosition with wrap-around and skipping folded seats. When every
// other seat has folded it returns the naive next seat; the hand should
// already have terminated through the single-survivor path by then.
func (g *GameState) FindNextPosition() int {
	n := len(g.Players)
	nextPosition := (g.CurrentPosition + 1) % n
	startPosition := nextPosition

	for g.Players[nextPosition].HasFolded {
		nextPosition = (nextPosition + 1) % n
		if nextPosition == startPosition {
			return startPosition
		}
	}
	return nextPosition
}

// IsRoundComplete reports whether the current betting round has ended:
// every non-folded player has matched the table bet (or is all-in), and
// either action has come back around to the round opener or the last
// action was a fold. The fold clause is needed because folding shrinks
// the active set without moving RoundStartPosition.
func (g *GameState) IsRoundComplete(nextPosition int, lastAction ActionKind) bool {
	for _, i := range g.activeIndexes() {
		p := g.Players[i]
		if p.CurrentBet != g.CurrentBet && p.Stack != 0 {
			return false
		}
	}
	return nextPosition == g.RoundStartPosition || lastAction == ActionFold
}

// advanceStage moves to the next stage, deals the community cards for it
// and opens a fresh betting round at the first non-folded seat at or
// after the small blind.
func (g *GameState) advanceStage() {
	g.Stage = nextStage(g.Stage)

	switch g.Stage {
	case StageFlop:
		var flop cards.Stack
		flop, g.Deck = cards.DealCards(g.Deck, 3)
		g.CommunityCards = append(g.CommunityCards, flop...)
		g.appendLog("Flop cards dealt: %s", flop)
	case StageTurn:
		var turn cards.Card
		turn, g.Deck = cards.DealCard(g.Deck)
		g.CommunityCards = append(g.CommunityCards, turn)
		g.appendLog("Turn card dealt: %s", turn)
	case StageRiver:
		var river cards.Card
		river, g.Deck = cards.DealCard(g.Deck)
		g.CommunityCards = append(g.CommunityCards, river)
		g.appendLog("River card dealt: %s", river)
	}

	for i := range g.Players {
		g.Players[i].CurrentBet = 0
	}
	g.CurrentBet = 0

	newStartPosition := g.SmallBlindPosition
	for g.Players[newStartPosition].HasFolded {
		newStartPosition = (newStartPosition + 1) % len(g.Players)
	}
	g.RoundStartPosition = newStartPosition
	g.CurrentPosition = newStartPosition
}

// CalculateWinnings formats each seat's net result against the starting
// stack, e.g. "Player 1: +60; Player 2: -40". It is the preliminary
// display value; the evaluation service supplies the authoritative one.
func (g *GameState) CalculateWinnings() string {
	out := ""
	for i, p := range g.Players {
		if i > 0 {
			out += "; "
		}
		net := p.Stack - g.InitialStackSize
		if net > 0 {
			out += fmt.Sprintf("Player %d: +%d", i+1, net)
		} else {
			out += fmt.Sprintf("Player %d: %d", i+1, net)
		}
	}
	return out
}

// ApplyEvaluation overwrites each seat's final stack with the payoffs the
// evaluation service returned and records the authoritative winnings
// string plus the hand-ended log lines.
func (g *GameState) ApplyEvaluation(payoffs []int) error {
	if !g.Ended {
		return &ProtocolViolationError{Reason: "hand has not ended"}
	}
	if len(payoffs) != len(g.Players) {
		return fmt.Errorf("engine: got %d payoffs for %d players", len(payoffs), len(g.Players))
	}

	g.appendLog("Hand #%s ended", g.HandID)
	g.appendLog("Final pot was %d", g.Pot)

	winnings := ""
	for i, payoff := range payoffs {
		g.Players[i].Stack = g.InitialStackSize + payoff
		if i > 0 {
			winnings += "; "
		}
		if payoff > 0 {
			winnings += fmt.Sprintf("Player %d: +%d", i+1, payoff)
		} else {
			winnings += fmt.Sprintf("Player %d: %d", i+1, payoff)
		}
	}
	g.Winnings = winnings
	g.Payoffs = payoffs
	return nil
}
