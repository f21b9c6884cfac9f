package game

import "github.com/minaorangina/skyjo/deck"

// NoInitiator marks that nobody has triggered the last round yet
const NoInitiator = -1

// Player is one seat at the table. ID is the player's position.
type Player struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	Cards             Board  `json:"cards"`
	TotalScore        int    `json:"totalScore"`
	CurrentRoundScore int    `json:"currentRoundScore"`
	HasFinishedRound  bool   `json:"hasFinishedRound"`
}

// State is everything that describes a round in progress.
// It is the value that gets persisted between turns.
type State struct {
	Players            []Player  `json:"players"`
	CurrentPlayerIndex int       `json:"currentPlayerIndex"`
	Deck               deck.Deck `json:"deck"`
	DiscardPile        deck.Deck `json:"discardPile"`
	IsLastRound        bool      `json:"isLastRound"`
	LastRoundInitiator int       `json:"lastRoundInitiator"`
	IsRoundOver        bool      `json:"isRoundOver"`
	IsGameOver         bool      `json:"isGameOver"`
	RoundNumber        int       `json:"roundNumber"`
}

// Clone returns a deep copy
func (s State) Clone() State {
	c := s
	if s.Players != nil {
		c.Players = make([]Player, len(s.Players))
		copy(c.Players, s.Players)
	}
	c.Deck = cloneCards(s.Deck)
	c.DiscardPile = cloneCards(s.DiscardPile)
	return c
}

// CurrentPlayer returns the player whose turn it is
func (s State) CurrentPlayer() Player {
	return s.Players[s.CurrentPlayerIndex]
}

// DiscardTop returns the top of the discard pile
func (s State) DiscardTop() (deck.Card, bool) {
	return s.DiscardPile.Top()
}

// HasInitiator reports whether the last round has been triggered by someone
func (s State) HasInitiator() bool {
	return s.LastRoundInitiator != NoInitiator
}

func (s State) boards() [][]deck.Card {
	groups := make([][]deck.Card, 0, len(s.Players))
	for i := range s.Players {
		groups = append(groups, s.Players[i].Cards.Cards())
	}
	return groups
}

func cloneCards(d deck.Deck) deck.Deck {
	if d == nil {
		return nil
	}
	c := make(deck.Deck, len(d))
	copy(c, d)
	return c
}
