package game

import "fmt"

// TurnPhase is the step the current player has reached within their turn
type TurnPhase int

const (
	// AwaitingDraw: the player must draw from the deck or the discard pile
	AwaitingDraw TurnPhase = iota
	// HoldingDrawnCard: the player must exchange the drawn card or discard it
	HoldingDrawnCard
	// AwaitingMandatoryReveal: the drawn card was discarded, so a hidden card must be turned over
	AwaitingMandatoryReveal
)

var phaseNames = map[TurnPhase]string{
	AwaitingDraw:            "AwaitingDraw",
	HoldingDrawnCard:        "HoldingDrawnCard",
	AwaitingMandatoryReveal: "AwaitingMandatoryReveal",
}

var nameToPhase = map[string]TurnPhase{
	"AwaitingDraw":            AwaitingDraw,
	"HoldingDrawnCard":        HoldingDrawnCard,
	"AwaitingMandatoryReveal": AwaitingMandatoryReveal,
}

func (p TurnPhase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("TurnPhase(%d)", int(p))
}

// MarshalText encodes the phase by name
func (p TurnPhase) MarshalText() ([]byte, error) {
	if _, ok := phaseNames[p]; !ok {
		return nil, fmt.Errorf("unknown turn phase %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name
func (p *TurnPhase) UnmarshalText(text []byte) error {
	phase, ok := nameToPhase[string(text)]
	if !ok {
		return fmt.Errorf("unknown turn phase %q", string(text))
	}
	*p = phase
	return nil
}
