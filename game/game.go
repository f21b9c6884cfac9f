// Package game implements the Skyjo rules: dealing, the turn state machine,
// column clearing, the last round and scoring.
//
// Transitions are pure: Apply never modifies the Game it is given and
// returns a fresh value instead.
package game

import (
	"strings"

	"github.com/minaorangina/skyjo/deck"
)

// Game is a State plus the progress of the current turn.
// Only State is persisted; a Game is always resumed at the start of a turn.
type Game struct {
	State State
	Phase TurnPhase
	// Held is the card drawn this turn, outside of any board
	Held *deck.Card
	// RNG is the xorshift state used for deals and reshuffles
	RNG   uint64
	Rules Rules
	// Result is set once the round has been scored
	Result *RoundResult
}

// NewGame deals the first round for the named players
func NewGame(names []string, rules Rules, seed uint64) (Game, error) {
	if len(names) < MinPlayers {
		return Game{}, ErrTooFewPlayers
	}
	if len(names) > MaxPlayers {
		return Game{}, ErrTooManyPlayers
	}

	players := make([]Player, 0, len(names))
	for i, n := range names {
		name := strings.TrimSpace(n)
		if name == "" {
			return Game{}, ErrEmptyName
		}
		players = append(players, Player{ID: i, Name: name})
	}

	rng := deck.NewRNG(seed)
	return Game{
		State: Deal(players, 1, rng),
		Phase: AwaitingDraw,
		RNG:   rng.State(),
		Rules: rules,
	}, nil
}

// Resume wraps a persisted State at the start of its current turn
func Resume(s State, rules Rules, seed uint64) (Game, error) {
	if err := s.Validate(); err != nil {
		return Game{}, err
	}
	return Game{
		State: s.Clone(),
		Phase: AwaitingDraw,
		RNG:   deck.NewRNG(seed).State(),
		Rules: rules,
	}, nil
}

// NextRound deals a fresh round once the previous one has been scored.
// Names and totals carry over; the round number goes up by one.
func NextRound(g Game) (Game, error) {
	if g.State.IsGameOver {
		return g, ErrGameOver
	}
	if !g.State.IsRoundOver {
		return g, ErrRoundNotOver
	}

	players := make([]Player, 0, len(g.State.Players))
	for _, p := range g.State.Players {
		players = append(players, Player{ID: p.ID, Name: p.Name, TotalScore: p.TotalScore})
	}

	rng := deck.NewRNG(g.RNG)
	return Game{
		State: Deal(players, g.State.RoundNumber+1, rng),
		Phase: AwaitingDraw,
		RNG:   rng.State(),
		Rules: g.Rules,
	}, nil
}

// Clone returns a deep copy
func (g Game) Clone() Game {
	c := g
	c.State = g.State.Clone()
	if g.Held != nil {
		held := *g.Held
		c.Held = &held
	}
	if g.Result != nil {
		r := g.Result.clone()
		c.Result = &r
	}
	return c
}
