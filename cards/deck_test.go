package cards

import (
	"math/rand"
	"testing"
)

func TestNewDeck52(t *testing.T) {
	deck := NewDeck52()

	if len(deck) != 52 {
		t.Errorf("Expected deck to have 52 cards, got %d", len(deck))
	}

	// Every card must be distinct
	seen := make(map[Card]bool)
	for _, c := range deck {
		if seen[c] {
			t.Errorf("Duplicate card in deck: %s", c)
		}
		seen[c] = true
	}
}

func TestShuffleCards(t *testing.T) {
	originalDeck := NewDeck52()
	shuffledDeck := ShuffleCards(originalDeck, rand.New(rand.NewSource(1)))

	// Check same length
	if len(shuffledDeck) != len(originalDeck) {
		t.Errorf("Shuffled deck length %d does not match original deck length %d",
			len(shuffledDeck), len(originalDeck))
	}

	// Check that cards are shuffled (this is probabilistic but very likely)
	differences := 0
	for i := 0; i < len(originalDeck); i++ {
		if shuffledDeck[i] != originalDeck[i] {
			differences++
		}
	}

	if differences == 0 {
		t.Error("Shuffled deck is identical to original deck")
	}
}

func TestShuffleCardsDeterministic(t *testing.T) {
	first := ShuffleCards(NewDeck52(), rand.New(rand.NewSource(42)))
	second := ShuffleCards(NewDeck52(), rand.New(rand.NewSource(42)))

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Same seed should produce the same order, diverged at %d: %s vs %s",
				i, first[i], second[i])
		}
	}
}

func TestDealCard(t *testing.T) {
	deck := NewDeck52()
	initialLength := len(deck)

	card, remainingDeck := DealCard(deck)

	if len(remainingDeck) != initialLength-1 {
		t.Errorf("Expected remaining deck to have %d cards, got %d",
			initialLength-1, len(remainingDeck))
	}

	if card != deck[0] {
		t.Errorf("Expected dealt card to be the top card %s, got %s", deck[0], card)
	}

	if remainingDeck.Contains(card) {
		t.Errorf("Dealt card %s should no longer be in the deck", card)
	}
}

func TestDealCards(t *testing.T) {
	deck := NewDeck52()

	dealt, remaining := DealCards(deck, 3)
	if len(dealt) != 3 {
		t.Errorf("Expected 3 dealt cards, got %d", len(dealt))
	}
	if len(remaining) != 49 {
		t.Errorf("Expected 49 remaining cards, got %d", len(remaining))
	}

	// Asking for more cards than the deck holds deals what is left
	dealt, remaining = DealCards(remaining, 100)
	if len(dealt) != 49 {
		t.Errorf("Expected 49 dealt cards, got %d", len(dealt))
	}
	if len(remaining) != 0 {
		t.Errorf("Expected empty deck, got %d cards", len(remaining))
	}
}
