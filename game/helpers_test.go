package game

import (
	"testing"

	"github.com/minaorangina/skyjo/deck"
	"github.com/stretchr/testify/require"
)

type cells [Rows][Cols]int

// fixture deals the given boards face down and builds the deck from the
// rest of a full deck in ascending order, so the highest values are on top.
// The top card of that deck starts the discard pile.
func fixture(t *testing.T, boards ...cells) Game {
	t.Helper()

	remaining := deck.Distribution()
	players := make([]Player, 0, len(boards))
	for i, b := range boards {
		var board Board
		for row := 0; row < Rows; row++ {
			for col := 0; col < Cols; col++ {
				v := b[row][col]
				remaining[v]--
				require.GreaterOrEqual(t, remaining[v], 0, "too many cards of value %d", v)
				board[row][col] = deck.NewCard(v)
			}
		}
		players = append(players, Player{ID: i, Name: string(rune('A' + i)), Cards: board})
	}

	d := deck.Deck{}
	for v := deck.MinValue; v <= deck.MaxValue; v++ {
		for i := 0; i < remaining[v]; i++ {
			d = append(d, deck.NewCard(v))
		}
	}
	top, _ := d.Draw()
	top.Revealed = true

	g := Game{
		State: State{
			Players:            players,
			Deck:               d,
			DiscardPile:        deck.Deck{top},
			LastRoundInitiator: NoInitiator,
			RoundNumber:        1,
		},
		Phase: AwaitingDraw,
		RNG:   1,
		Rules: DefaultRules(),
	}
	require.NoError(t, CheckConservation(g))
	return g
}

// revealAllBut turns over every card on the player's board except the given cells
func revealAllBut(g *Game, player int, except ...[2]int) {
	board := &g.State.Players[player].Cards
	for row := 0; row < Rows; row++ {
	cell:
		for col := 0; col < Cols; col++ {
			for _, e := range except {
				if e[0] == row && e[1] == col {
					continue cell
				}
			}
			board[row][col].Revealed = true
		}
	}
}

func reveal(g *Game, player int, at ...[2]int) {
	for _, rc := range at {
		g.State.Players[player].Cards[rc[0]][rc[1]].Revealed = true
	}
}

// onTopOfDeck moves a card of the given value to the top of the deck
func onTopOfDeck(t *testing.T, g *Game, value int) {
	t.Helper()

	d := g.State.Deck
	for i := len(d) - 1; i >= 0; i-- {
		if d[i].Value == value {
			d[i], d[len(d)-1] = d[len(d)-1], d[i]
			return
		}
	}
	t.Fatalf("no card of value %d left in the deck", value)
}

// play applies each action in turn, failing on the first error
func play(t *testing.T, g Game, actions ...Action) Game {
	t.Helper()

	for _, a := range actions {
		next, err := Apply(g, a)
		require.NoError(t, err, "applying %s", a)
		require.NoError(t, CheckConservation(next), "after %s", a)
		g = next
	}
	return g
}

func drawDeck(p int) Action    { return Action{Kind: DrawFromDeck, Player: p} }
func drawDiscard(p int) Action { return Action{Kind: DrawFromDiscard, Player: p} }
func discard(p int) Action     { return Action{Kind: DiscardDrawn, Player: p} }
func exchange(p, row, col int) Action {
	return Action{Kind: Exchange, Player: p, Row: row, Col: col}
}
func revealAt(p, row, col int) Action {
	return Action{Kind: RevealMandatory, Player: p, Row: row, Col: col}
}

var (
	boardA = cells{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10, 11, -1}}
	boardB = cells{{-1, 0, 1, 2}, {3, 4, 5, 6}, {7, 8, 9, 10}}
	boardC = cells{{-1, 0, 1, 2}, {3, 4, 5, 6}, {7, 8, 9, 10}}
)
