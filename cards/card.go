package cards

import "fmt"

// Suit represents a card suit
type Suit string

const (
	Hearts   Suit = "h"
	Diamonds Suit = "d"
	Clubs    Suit = "c"
	Spades   Suit = "s"
)

// Suits lists the four suits in deck-building order
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Value represents a card value
type Value string

const (
	Two   Value = "2"
	Three Value = "3"
	Four  Value = "4"
	Five  Value = "5"
	Six   Value = "6"
	Seven Value = "7"
	Eight Value = "8"
	Nine  Value = "9"
	Ten   Value = "T"
	Jack  Value = "J"
	Queen Value = "Q"
	King  Value = "K"
	Ace   Value = "A"
)

// Values lists the thirteen values in ascending order
var Values = []Value{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// Card represents a playing card
type Card struct {
	Suit  Suit
	Value Value
}

// String returns the compact two-character form of a card, e.g. "Th"
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Value, c.Suit)
}

// Equals checks if two cards are equal
func (c Card) Equals(other Card) bool {
	return c.Suit == other.Suit && c.Value == other.Value
}

// Rank returns the numeric rank of the card's value, 2..14 with Ace high
func (c Card) Rank() int {
	for i, v := range Values {
		if v == c.Value {
			return i + 2
		}
	}
	return 0
}

// CardFromString parses the compact two-character form of a card
// e.g. "Th" -> Card{Suit: Hearts, Value: Ten}
func CardFromString(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card shorthand: %q", s)
	}

	var value Value
	switch s[:1] {
	case "2", "3", "4", "5", "6", "7", "8", "9", "T", "J", "Q", "K", "A":
		value = Value(s[:1])
	default:
		return Card{}, fmt.Errorf("invalid card value: %q", s[:1])
	}

	var suit Suit
	switch s[1:] {
	case "h", "d", "c", "s":
		suit = Suit(s[1:])
	default:
		return Card{}, fmt.Errorf("invalid card suit: %q", s[1:])
	}

	return Card{Suit: suit, Value: value}, nil
}
