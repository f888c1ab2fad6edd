package cards

import "encoding/json"

// MarshalJSON encodes a card as its compact string form
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a card from its compact string form
func (c *Card) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	card, err := CardFromString(s)
	if err != nil {
		return err
	}
	*c = card
	return nil
}
