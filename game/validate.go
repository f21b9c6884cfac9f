package game

import (
	"fmt"
	"sort"

	"github.com/minaorangina/skyjo/deck"
)

// Validate checks that s could have been reached by playing the game:
// its shape, its indices, and that it holds exactly one full deck of cards.
func (s State) Validate() error {
	n := len(s.Players)
	if n < MinPlayers || n > MaxPlayers {
		return invalidState("%d players", n)
	}
	if s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= n {
		return invalidState("current player %d out of range", s.CurrentPlayerIndex)
	}
	if s.RoundNumber < 1 {
		return invalidState("round number %d", s.RoundNumber)
	}
	if s.LastRoundInitiator != NoInitiator && (s.LastRoundInitiator < 0 || s.LastRoundInitiator >= n) {
		return invalidState("last round initiator %d out of range", s.LastRoundInitiator)
	}
	if s.IsLastRound != s.HasInitiator() {
		return invalidState("last round flag disagrees with initiator %d", s.LastRoundInitiator)
	}
	if s.IsGameOver && !s.IsRoundOver {
		return invalidState("game over before the round is over")
	}

	for i, p := range s.Players {
		for _, c := range p.Cards.Cards() {
			if c.Removed && !c.Revealed {
				return invalidState("player %d has a removed card that was never revealed", i)
			}
		}
	}

	groups := append(s.boards(), s.Deck, s.DiscardPile)
	return conserved(deck.Counts(groups...))
}

// CheckConservation verifies that the deck, the discard pile, every board
// and the held card together make up exactly one full deck
func CheckConservation(g Game) error {
	groups := append(g.State.boards(), g.State.Deck, g.State.DiscardPile)
	if g.Held != nil {
		groups = append(groups, []deck.Card{*g.Held})
	}
	return conserved(deck.Counts(groups...))
}

func conserved(counts map[int]int) error {
	want := deck.Distribution()

	values := make([]int, 0, len(want)+len(counts))
	for v := range want {
		values = append(values, v)
	}
	for v := range counts {
		if _, ok := want[v]; !ok {
			values = append(values, v)
		}
	}
	sort.Ints(values)

	for _, v := range values {
		if counts[v] != want[v] {
			return fmt.Errorf("%w: %d cards of value %d, want %d", ErrInvalidState, counts[v], v, want[v])
		}
	}
	return nil
}
