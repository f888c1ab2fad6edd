package payout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feltpoker/holdem/evaluation"
)

func record(stackSize int, community string, players ...evaluation.PlayerRecord) evaluation.HandRecord {
	return evaluation.HandRecord{
		HandID:         "test-hand",
		StackSize:      stackSize,
		Players:        players,
		CommunityCards: community,
	}
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

func TestPayoffsSingleSurvivor(t *testing.T) {
	rec := record(10000, "",
		evaluation.PlayerRecord{ID: 1, Cards: "AhKh", Stack: 9960, Folded: false},
		evaluation.PlayerRecord{ID: 2, Cards: "2c7d", Stack: 9980, Folded: true},
		evaluation.PlayerRecord{ID: 3, Cards: "9s9d", Stack: 10000, Folded: true},
	)

	payoffs, err := Payoffs(rec)
	require.NoError(t, err)

	assert.Equal(t, []int{20, -20, 0}, payoffs)
	assert.Zero(t, sum(payoffs))
}

func TestPayoffsSingleSurvivorWithAwardedPot(t *testing.T) {
	// The table moves the pot into a lone survivor's stack before
	// submitting, so the survivor sits above the buy-in
	rec := record(10000, "",
		evaluation.PlayerRecord{ID: 1, Cards: "AhKh", Stack: 10020, Folded: false},
		evaluation.PlayerRecord{ID: 2, Cards: "2c7d", Stack: 9980, Folded: true},
		evaluation.PlayerRecord{ID: 3, Cards: "9s9d", Stack: 10000, Folded: true},
	)

	payoffs, err := Payoffs(rec)
	require.NoError(t, err)

	assert.Equal(t, []int{20, -20, 0}, payoffs)
	assert.Zero(t, sum(payoffs))
}

func TestPayoffsShowdownWinner(t *testing.T) {
	// Player 1 holds trip aces on the board, player 2 queen high
	rec := record(1000, "AsKs7h4c2d",
		evaluation.PlayerRecord{ID: 1, Cards: "AhAd", Stack: 900},
		evaluation.PlayerRecord{ID: 2, Cards: "QhJh", Stack: 900},
	)

	payoffs, err := Payoffs(rec)
	require.NoError(t, err)

	assert.Equal(t, []int{100, -100}, payoffs)
	assert.Zero(t, sum(payoffs))
}

func TestPayoffsShowdownFoldedSeatCannotWin(t *testing.T) {
	// The folded seat holds the best cards but takes only its loss
	rec := record(1000, "AsKs7h4c2d",
		evaluation.PlayerRecord{ID: 1, Cards: "AhAd", Stack: 950, Folded: true},
		evaluation.PlayerRecord{ID: 2, Cards: "QhJh", Stack: 900},
		evaluation.PlayerRecord{ID: 3, Cards: "8c8d", Stack: 900},
	)

	payoffs, err := Payoffs(rec)
	require.NoError(t, err)

	assert.Equal(t, []int{-50, -100, 150}, payoffs)
	assert.Zero(t, sum(payoffs))
}

func TestPayoffsSplitPotWithRemainder(t *testing.T) {
	// Both live hands play the board with the same kickers; the odd chip
	// goes to the earliest winning seat
	rec := record(1000, "2c5d9sJcQh",
		evaluation.PlayerRecord{ID: 1, Cards: "AhKd", Stack: 900},
		evaluation.PlayerRecord{ID: 2, Cards: "AdKh", Stack: 900},
		evaluation.PlayerRecord{ID: 3, Cards: "3c4h", Stack: 899, Folded: true},
	)

	payoffs, err := Payoffs(rec)
	require.NoError(t, err)

	assert.Equal(t, []int{51, 50, -101}, payoffs)
	assert.Zero(t, sum(payoffs))
}

func TestPayoffsFlushBeatsStraight(t *testing.T) {
	rec := record(1000, "2h7h9hTsJs",
		evaluation.PlayerRecord{ID: 1, Cards: "AhKh", Stack: 800},
		evaluation.PlayerRecord{ID: 2, Cards: "Qd8c", Stack: 800},
	)

	payoffs, err := Payoffs(rec)
	require.NoError(t, err)

	assert.Equal(t, []int{200, -200}, payoffs)
}

func TestPayoffsRejectsBadRecords(t *testing.T) {
	_, err := Payoffs(record(1000, "",
		evaluation.PlayerRecord{ID: 1, Cards: "AhKh", Stack: 900},
	))
	assert.Error(t, err, "fewer than two players")

	_, err = Payoffs(record(1000, "AsKs7h4c2d",
		evaluation.PlayerRecord{ID: 1, Cards: "bogus", Stack: 900},
		evaluation.PlayerRecord{ID: 2, Cards: "QhJh", Stack: 900},
	))
	assert.Error(t, err, "unparseable hole cards")

	_, err = Payoffs(record(1000, "AsKs7h4c2d",
		evaluation.PlayerRecord{ID: 1, Cards: "AhAd", Stack: 900, Folded: true},
		evaluation.PlayerRecord{ID: 2, Cards: "QhJh", Stack: 900, Folded: true},
	))
	assert.Error(t, err, "no active players")
}
