package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// playToStage drives a fresh round of calls/checks until the game reaches
// the wanted stage
func playToStage(t *testing.T, g *GameState, stage Stage) {
	t.Helper()
	for g.Stage != stage {
		require.False(t, g.HasEnded(), "hand ended before reaching %s", stage)
		if g.IsValidAction(ActionCall) {
			require.NoError(t, g.HandleAction(ActionCall, 0))
		} else {
			require.NoError(t, g.HandleAction(ActionCheck, 0))
		}
	}
}

func TestFindNextPosition(t *testing.T) {
	g := &GameState{
		Players: []Player{
			{ID: 1}, {ID: 2, HasFolded: true}, {ID: 3}, {ID: 4}, {ID: 5}, {ID: 6},
		},
		CurrentPosition: 0,
	}

	// Seat 1 has folded, so the action skips from 0 to 2
	assert.Equal(t, 2, g.FindNextPosition())

	// Wrap-around past the end of the table
	g.CurrentPosition = 5
	assert.Equal(t, 0, g.FindNextPosition())

	// A run of folded seats is skipped in one scan
	g.Players[3].HasFolded = true
	g.Players[4].HasFolded = true
	g.CurrentPosition = 2
	assert.Equal(t, 5, g.FindNextPosition())
}

func TestFindNextPositionLastPlayerStanding(t *testing.T) {
	g := &GameState{
		Players: []Player{
			{ID: 1}, {ID: 2, HasFolded: true}, {ID: 3, HasFolded: true},
		},
		CurrentPosition: 0,
	}

	// Every other seat folded, so the naive next seat comes back
	// unchanged
	assert.Equal(t, 1, g.FindNextPosition())
}

func TestIsRoundComplete(t *testing.T) {
	g := &GameState{
		Players: []Player{
			{ID: 1, Stack: 9960, CurrentBet: 40},
			{ID: 2, Stack: 9960, CurrentBet: 40},
			{ID: 3, Stack: 9960, CurrentBet: 40},
		},
		CurrentBet:         40,
		RoundStartPosition: 0,
	}

	// All bets equal and action back at the opener
	assert.True(t, g.IsRoundComplete(0, ActionCall))

	// All bets equal but action not yet back at the opener
	assert.False(t, g.IsRoundComplete(1, ActionCall))

	// A fold can close the round without reaching the opener
	assert.True(t, g.IsRoundComplete(1, ActionFold))

	// An unmatched bet keeps the round open
	g.Players[2].CurrentBet = 20
	assert.False(t, g.IsRoundComplete(0, ActionCall))

	// Unless that player is all-in
	g.Players[2].Stack = 0
	assert.True(t, g.IsRoundComplete(0, ActionCall))

	// Folded players are excluded from the equality check
	g.Players[2].Stack = 9960
	g.Players[2].HasFolded = true
	assert.True(t, g.IsRoundComplete(0, ActionCall))
}

func TestIsRoundCompleteIdempotent(t *testing.T) {
	g := newTestGame(t, 4, 10000, 5)
	for i := 0; i < 5; i++ {
		assert.False(t, g.IsRoundComplete(g.FindNextPosition(), ActionCall))
	}
}

func TestSingleSurvivorTakesPot(t *testing.T) {
	g := newTestGame(t, 6, 10000, 9)

	// Five players fold in sequence; the hand ends immediately
	for i := 0; i < 5; i++ {
		require.False(t, g.HasEnded())
		require.NoError(t, g.HandleAction(ActionFold, 0))
	}

	require.True(t, g.HasEnded())
	assert.NotEqual(t, StageShowdown, g.Stage, "a fold-out ends the hand before showdown")

	survivors := g.activeIndexes()
	require.Len(t, survivors, 1)
	winner := g.Players[survivors[0]]

	// The award moved every chip back into the stacks
	totalStacks := 0
	for _, p := range g.Players {
		totalStacks += p.Stack
	}
	assert.Equal(t, 6*g.InitialStackSize, totalStacks)
	assert.Greater(t, winner.Stack, g.InitialStackSize, "the survivor nets the blinds")
	assert.NotEmpty(t, g.Winnings)
	assert.Equal(t, "f:f:f:f:f", g.Actions)
}

func TestStageTransitions(t *testing.T) {
	g := newTestGame(t, 4, 10000, 13)

	playToStage(t, g, StageFlop)
	assert.Len(t, g.CommunityCards, 3)
	assert.Equal(t, 0, g.CurrentBet)
	for _, p := range g.Players {
		assert.Equal(t, 0, p.CurrentBet, "bets reset between rounds")
	}
	assert.Equal(t, g.SmallBlindPosition, g.CurrentPosition, "postflop action opens at the small blind")
	assert.Equal(t, g.CurrentPosition, g.RoundStartPosition)

	playToStage(t, g, StageTurn)
	assert.Len(t, g.CommunityCards, 4)

	playToStage(t, g, StageRiver)
	assert.Len(t, g.CommunityCards, 5)

	playToStage(t, g, StageShowdown)
	assert.Len(t, g.CommunityCards, 5)
	assert.True(t, g.HasEnded())
	assert.NotEmpty(t, g.Winnings)
	assertChipConservation(t, g)
}

func TestStageTransitionSkipsFoldedSmallBlind(t *testing.T) {
	g := newTestGame(t, 4, 10000, 17)

	// Fold everyone up to and including the small blind, keeping at least
	// two players in
	for g.Stage == StagePreflop {
		if g.CurrentPosition == g.SmallBlindPosition {
			require.NoError(t, g.HandleAction(ActionFold, 0))
			continue
		}
		if g.IsValidAction(ActionCall) {
			require.NoError(t, g.HandleAction(ActionCall, 0))
		} else {
			require.NoError(t, g.HandleAction(ActionCheck, 0))
		}
	}

	require.Equal(t, StageFlop, g.Stage)
	assert.True(t, g.Players[g.SmallBlindPosition].HasFolded)
	assert.False(t, g.Players[g.CurrentPosition].HasFolded,
		"the new round must open at a non-folded seat")
	first := (g.SmallBlindPosition + 1) % len(g.Players)
	for g.Players[first].HasFolded {
		first = (first + 1) % len(g.Players)
	}
	assert.Equal(t, first, g.CurrentPosition)
}

func TestFullHandToShowdown(t *testing.T) {
	g := newTestGame(t, 6, 10000, 21)

	playToStage(t, g, StageFlop)

	// Small blind opens the flop with a bet, everyone calls
	require.NoError(t, g.HandleAction(ActionBet, 200))
	playToStage(t, g, StageTurn)

	// One raise on the turn
	require.NoError(t, g.HandleAction(ActionBet, 100))
	require.NoError(t, g.HandleAction(ActionRaise, 300))
	playToStage(t, g, StageRiver)

	playToStage(t, g, StageShowdown)

	assert.True(t, g.HasEnded())
	assert.Len(t, g.CommunityCards, 5)
	assertChipConservation(t, g)

	// Nobody folded, so the pot is everyone's contributions
	assert.Equal(t, 6*40+6*200+6*300, g.Pot)
}

func TestRandomPlayoutsKeepInvariants(t *testing.T) {
	actions := []ActionKind{ActionFold, ActionCheck, ActionCall, ActionBet, ActionRaise}

	for seed := int64(0); seed < 25; seed++ {
		r := rand.New(rand.NewSource(seed))
		g, err := NewGame(2+r.Intn(5), 10000, r)
		require.NoError(t, err)

		prevStage := g.Stage
		for steps := 0; !g.HasEnded() && steps < 20000; steps++ {
			kind := actions[r.Intn(len(actions))]
			if !g.IsValidAction(kind) {
				continue
			}
			amount := MinimumBet + r.Intn(400)
			if kind == ActionRaise {
				amount = g.CurrentBet + MinimumRaise + r.Intn(400)
			}
			require.NoError(t, g.HandleAction(kind, amount), "seed %d", seed)

			// Stage never moves backward
			assert.True(t, stageOrder(g.Stage) >= stageOrder(prevStage), "seed %d", seed)
			prevStage = g.Stage

			// Community card count always matches the stage
			assert.Len(t, g.CommunityCards, communityCardsFor(g.Stage), "seed %d", seed)

			if !g.HasEnded() {
				assertChipConservation(t, g)
				assert.False(t, g.currentPlayer().HasFolded, "seed %d: folded seat on turn", seed)
			}
		}
		require.True(t, g.HasEnded(), "seed %d: hand did not terminate", seed)
	}
}

func stageOrder(s Stage) int {
	switch s {
	case StagePreflop:
		return 1
	case StageFlop:
		return 2
	case StageTurn:
		return 3
	case StageRiver:
		return 4
	case StageShowdown:
		return 5
	}
	return 0
}

func communityCardsFor(s Stage) int {
	switch s {
	case StageFlop:
		return 3
	case StageTurn:
		return 4
	case StageRiver:
		return 5
	case StageShowdown:
		return 5
	}
	return 0
}
