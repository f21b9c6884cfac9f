package game

// LegalActions lists the kinds of action the current turn accepts.
// It is empty once the round is over.
func LegalActions(g Game) []ActionKind {
	s := g.State
	if s.IsRoundOver {
		return []ActionKind{}
	}

	switch g.Phase {
	case AwaitingDraw:
		legal := []ActionKind{}
		if len(s.Deck) > 0 || len(s.DiscardPile) > 1 {
			legal = append(legal, DrawFromDeck)
		}
		if len(s.DiscardPile) > 0 {
			legal = append(legal, DrawFromDiscard)
		}
		return legal

	case HoldingDrawnCard:
		return []ActionKind{Exchange, DiscardDrawn}

	case AwaitingMandatoryReveal:
		return []ActionKind{RevealMandatory}
	}

	return []ActionKind{}
}

// Hint is a short instruction for the player whose turn it is
func Hint(g Game) string {
	switch {
	case g.State.IsGameOver:
		return "The game is over"
	case g.State.IsRoundOver:
		return "The round is over"
	}

	switch g.Phase {
	case AwaitingDraw:
		return "Draw a card from the deck or the discard pile"
	case HoldingDrawnCard:
		return "Exchange the drawn card with one of yours, or discard it"
	case AwaitingMandatoryReveal:
		return "Turn over one of your face-down cards"
	}
	return ""
}
