package deck

import "fmt"

const (
	// MinValue is the lowest card value in the deck
	MinValue = -2
	// MaxValue is the highest card value in the deck
	MaxValue = 12
)

// Card represents a Skyjo card.
// Value never changes once the card is created. Revealed and Removed
// only ever go from false to true during a round.
type Card struct {
	Value    int  `json:"value"`
	Revealed bool `json:"isRevealed"`
	Removed  bool `json:"isRemoved,omitempty"`
}

// NewCard constructs a face-down card
func NewCard(value int) Card {
	if value < MinValue || value > MaxValue {
		panic(fmt.Sprintf("card value %d out of range", value))
	}
	return Card{Value: value}
}

// Hidden reports whether the card is still in play and face down
func (c Card) Hidden() bool {
	return !c.Revealed && !c.Removed
}

// Resolved reports whether the card no longer hides anything
func (c Card) Resolved() bool {
	return c.Revealed || c.Removed
}

func (c Card) String() string {
	switch {
	case c.Removed:
		return "x"
	case !c.Revealed:
		return "?"
	}
	return fmt.Sprintf("%d", c.Value)
}
