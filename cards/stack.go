package cards

import "fmt"

// Stack represents an ordered collection of cards
type Stack []Card

// String returns the concatenated compact form of the stack, e.g. "Th9c2s"
func (s Stack) String() string {
	var out string
	for _, c := range s {
		out += c.String()
	}
	return out
}

// AddCard appends a card to the stack
func (s *Stack) AddCard(card Card) {
	*s = append(*s, card)
}

// Contains checks whether the stack holds the given card
func (s Stack) Contains(card Card) bool {
	for _, c := range s {
		if c.Equals(card) {
			return true
		}
	}
	return false
}

// ParseStack parses a concatenation of compact card forms, e.g. "AhKd"
func ParseStack(s string) (Stack, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid card string: %q", s)
	}

	var stack Stack
	for i := 0; i < len(s); i += 2 {
		card, err := CardFromString(s[i : i+2])
		if err != nil {
			return nil, err
		}
		stack = append(stack, card)
	}
	return stack, nil
}
