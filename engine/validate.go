package engine

// IsValidAction reports whether the given action is legal for the seat at
// CurrentPosition. It is a pure predicate; HandleAction enforces it.
//
// A call is legal whenever there is an outstanding amount and the player
// has any chips left: a player who cannot cover the full call goes all-in
// for what they have.
func (g *GameState) IsValidAction(kind ActionKind) bool {
	p := g.currentPlayer()

	switch kind {
	case ActionFold:
		return true
	case ActionCheck:
		return g.CurrentBet == p.CurrentBet
	case ActionCall:
		return g.CurrentBet > p.CurrentBet && p.Stack > 0
	case ActionBet:
		return g.CurrentBet == p.CurrentBet && p.Stack >= MinimumBet
	case ActionRaise:
		return g.CurrentBet > 0 && p.Stack >= (g.CurrentBet-p.CurrentBet)+MinimumRaise
	}
	return false
}

// invalidReason names the precondition an illegal action violated
func (g *GameState) invalidReason(kind ActionKind) string {
	p := g.currentPlayer()

	switch kind {
	case ActionCheck:
		return "there is an outstanding bet to call"
	case ActionCall:
		if g.CurrentBet == p.CurrentBet {
			return "there is no outstanding bet to call"
		}
		return "no chips left to call with"
	case ActionBet:
		if g.CurrentBet != p.CurrentBet {
			return "a bet is already outstanding, raise instead"
		}
		return "stack does not cover the minimum bet"
	case ActionRaise:
		if g.CurrentBet == 0 {
			return "nothing to raise, bet instead"
		}
		return "stack does not cover a minimum raise"
	}
	return "unknown action"
}
