package cards

import "math/rand"

// NewDeck52 creates a standard deck of 52 cards in suit-then-value order
func NewDeck52() Stack {
	var deck Stack
	for _, suit := range Suits {
		for _, value := range Values {
			deck.AddCard(Card{Suit: suit, Value: value})
		}
	}
	return deck
}

// ShuffleCards shuffles a deck of cards using the provided randomness source
func ShuffleCards(cards Stack, r *rand.Rand) Stack {
	shuffled := make(Stack, len(cards))
	copy(shuffled, cards)

	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return shuffled
}

// DealCard deals the top card from the deck and returns the card and the remaining deck
func DealCard(deck Stack) (Card, Stack) {
	if len(deck) == 0 {
		return Card{}, nil
	}
	return deck[0], deck[1:]
}

// DealCards deals count cards and returns them with the remaining deck
func DealCards(deck Stack, count int) (Stack, Stack) {
	if count > len(deck) {
		count = len(deck)
	}

	dealt := make(Stack, count)
	copy(dealt, deck[:count])

	return dealt, deck[count:]
}
