// Package payout computes authoritative per-seat payoffs for a completed
// hand: the whole pot to a lone survivor, otherwise a showdown among the
// non-folded seats with ties splitting the pot.
package payout

import (
	"fmt"

	"github.com/feltpoker/holdem/cards"
	"github.com/feltpoker/holdem/evaluation"
)

// Payoffs returns each seat's net chip result for the hand. Payoffs are
// relative to the starting stack and sum to zero across the table.
func Payoffs(rec evaluation.HandRecord) ([]int, error) {
	n := len(rec.Players)
	if n < 2 {
		return nil, fmt.Errorf("payout: hand %s has %d players", rec.HandID, n)
	}

	// Contributions are what each seat's stack lost against the buy-in.
	// A hand that ended with a lone survivor arrives with the pot already
	// moved into the winner's stack, so that seat's contribution is
	// negative and the contribution total is the undistributed remainder,
	// zero in that case. Splitting that remainder keeps both conventions
	// correct without the caller declaring which one it used.
	contributions := make([]int, n)
	pot := 0
	for i, p := range rec.Players {
		contributions[i] = rec.StackSize - p.Stack
		pot += contributions[i]
	}

	var active []int
	for i, p := range rec.Players {
		if !p.Folded {
			active = append(active, i)
		}
	}
	if len(active) == 0 {
		return nil, fmt.Errorf("payout: hand %s has no active players", rec.HandID)
	}

	var winners []int
	if len(active) == 1 {
		winners = active
	} else {
		var err error
		winners, err = showdownWinners(rec, active)
		if err != nil {
			return nil, err
		}
	}

	// Split the pot across the winners; a remainder goes one chip at a
	// time to the earliest winning seats
	share := pot / len(winners)
	remainder := pot % len(winners)

	payoffs := make([]int, n)
	for i := range payoffs {
		payoffs[i] = -contributions[i]
	}
	for _, w := range winners {
		payoffs[w] += share
		if remainder > 0 {
			payoffs[w]++
			remainder--
		}
	}

	return payoffs, nil
}

// showdownWinners ranks the active seats' best five-card hands and
// returns every seat tied for the strongest
func showdownWinners(rec evaluation.HandRecord, active []int) ([]int, error) {
	community, err := cards.ParseStack(rec.CommunityCards)
	if err != nil {
		return nil, fmt.Errorf("payout: hand %s: bad community cards %q: %w", rec.HandID, rec.CommunityCards, err)
	}

	var winners []int
	var best handScore
	for _, idx := range active {
		hole, err := cards.ParseStack(rec.Players[idx].Cards)
		if err != nil {
			return nil, fmt.Errorf("payout: hand %s: bad hole cards for player %d: %w", rec.HandID, rec.Players[idx].ID, err)
		}
		if len(hole) != 2 {
			return nil, fmt.Errorf("payout: hand %s: player %d has %d hole cards", rec.HandID, rec.Players[idx].ID, len(hole))
		}

		score := bestHand(hole, community)
		switch {
		case len(winners) == 0 || score > best:
			best = score
			winners = []int{idx}
		case score == best:
			winners = append(winners, idx)
		}
	}
	return winners, nil
}
