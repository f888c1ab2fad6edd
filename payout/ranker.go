package payout

import (
	poker "github.com/paulhankin/poker"

	"github.com/feltpoker/holdem/cards"
)

// handScore is a comparable strength of a 5-card poker hand; higher is
// stronger
type handScore int16

// toPokerCard converts a cards.Card into the evaluation library's card.
// The library counts aces as rank 1.
func toPokerCard(c cards.Card) poker.Card {
	var s poker.Suit
	switch c.Suit {
	case cards.Clubs:
		s = poker.Club
	case cards.Diamonds:
		s = poker.Diamond
	case cards.Hearts:
		s = poker.Heart
	default:
		s = poker.Spade
	}

	r := poker.Rank(c.Rank())
	if c.Value == cards.Ace {
		r = poker.Rank(1)
	}

	card, _ := poker.MakeCard(s, r)
	return card
}

// bestHand scores the best 5-card hand available from hole plus community
// cards
func bestHand(hole, community cards.Stack) handScore {
	all := make([]poker.Card, 0, len(hole)+len(community))
	for _, c := range hole {
		all = append(all, toPokerCard(c))
	}
	for _, c := range community {
		all = append(all, toPokerCard(c))
	}

	switch len(all) {
	case 7:
		var a7 [7]poker.Card
		copy(a7[:], all)
		return handScore(poker.Eval7(&a7))
	case 5:
		var a5 [5]poker.Card
		copy(a5[:], all)
		return handScore(poker.Eval5(&a5))
	default:
		return bestFiveOf(all)
	}
}

// bestFiveOf scores the best 5-card subset of six (or more) cards
func bestFiveOf(all []poker.Card) handScore {
	if len(all) < 5 {
		return 0
	}

	var best handScore
	var five [5]poker.Card
	var pick func(start, k int)
	chosen := make([]int, 5)

	pick = func(start, k int) {
		if k == 5 {
			for i, idx := range chosen {
				five[i] = all[idx]
			}
			if score := handScore(poker.Eval5(&five)); score > best {
				best = score
			}
			return
		}
		for i := start; i <= len(all)-(5-k); i++ {
			chosen[k] = i
			pick(i+1, k+1)
		}
	}
	pick(0, 0)
	return best
}
