package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/feltpoker/holdem/cards"
)

// Defaults used when the caller does not specify a table size or stack
const (
	DefaultNumPlayers    = 6
	DefaultStartingStack = 10000
)

// NewGame seats numPlayers players with startingStack chips each, picks a
// dealer at random, posts the blinds, deals two hole cards per player and
// returns the state ready for the first preflop action.
//
// Pass a seeded *rand.Rand for deterministic shuffles and dealer
// selection; a nil source falls back to a time-seeded one.
func NewGame(numPlayers, startingStack int, r *rand.Rand) (*GameState, error) {
	if numPlayers < 2 {
		return nil, fmt.Errorf("engine: a hand needs at least 2 players, got %d", numPlayers)
	}
	if startingStack < BigBlindAmount {
		return nil, fmt.Errorf("engine: starting stack must cover the big blind (%d), got %d", BigBlindAmount, startingStack)
	}
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	deck := cards.ShuffleCards(cards.NewDeck52(), r)

	players := make([]Player, numPlayers)
	for i := range players {
		players[i] = Player{
			ID:    i + 1,
			Stack: startingStack,
		}
	}

	dealerPos := r.Intn(numPlayers)
	sbPos := (dealerPos + 1) % numPlayers
	bbPos := (dealerPos + 2) % numPlayers
	startPos := (bbPos + 1) % numPlayers

	g := &GameState{
		Players:            players,
		CommunityCards:     cards.Stack{},
		CurrentPosition:    startPos,
		DealerPosition:     dealerPos,
		SmallBlindPosition: sbPos,
		BigBlindPosition:   bbPos,
		Stage:              StagePreflop,
		RoundStartPosition: startPos,
		HandID:             uuid.NewString(),
		InitialStackSize:   startingStack,
	}

	// Two cards per player, popped off the shuffled deck
	for i := range g.Players {
		var hole cards.Stack
		hole, deck = cards.DealCards(deck, 2)
		g.Players[i].HoleCards = hole
		g.appendLog("Player %d is dealt %s", g.Players[i].ID, hole)
	}
	g.Deck = deck

	g.appendLog("---")
	g.appendLog("Player %d is the dealer", dealerPos+1)

	// Blinds
	g.Players[sbPos].Stack -= SmallBlindAmount
	g.Players[sbPos].CurrentBet = SmallBlindAmount
	g.appendLog("Player %d posts small blind - %d chips", sbPos+1, SmallBlindAmount)

	g.Players[bbPos].Stack -= BigBlindAmount
	g.Players[bbPos].CurrentBet = BigBlindAmount
	g.appendLog("Player %d posts big blind - %d chips", bbPos+1, BigBlindAmount)
	g.appendLog("---")

	g.Pot = SmallBlindAmount + BigBlindAmount
	g.CurrentBet = BigBlindAmount

	g.assertAccounting()
	return g, nil
}
