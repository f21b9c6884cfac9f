package game

import (
	"fmt"

	"github.com/minaorangina/skyjo/deck"
)

// ActionKind names the moves a player can make
type ActionKind int

const (
	DrawFromDeck ActionKind = iota
	DrawFromDiscard
	Exchange
	DiscardDrawn
	RevealMandatory
)

var actionNames = map[ActionKind]string{
	DrawFromDeck:    "DrawFromDeck",
	DrawFromDiscard: "DrawFromDiscard",
	Exchange:        "Exchange",
	DiscardDrawn:    "DiscardDrawn",
	RevealMandatory: "RevealMandatory",
}

func (k ActionKind) String() string {
	if name, ok := actionNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// Action is one move by one player. Row and Col are only read by
// Exchange and RevealMandatory.
type Action struct {
	Kind   ActionKind
	Player int
	Row    int
	Col    int
}

func (a Action) String() string {
	switch a.Kind {
	case Exchange, RevealMandatory:
		return fmt.Sprintf("%s(player=%d, row=%d, col=%d)", a.Kind, a.Player, a.Row, a.Col)
	}
	return fmt.Sprintf("%s(player=%d)", a.Kind, a.Player)
}

// Apply returns the game that results from a. g itself is never modified.
// When a is rejected, g is returned unchanged alongside the error.
func Apply(g Game, a Action) (Game, error) {
	if err := check(g, a); err != nil {
		return g, err
	}

	next := g.Clone()
	var err error

	switch a.Kind {
	case DrawFromDeck:
		err = next.drawFromDeck()
	case DrawFromDiscard:
		err = next.drawFromDiscard()
	case Exchange:
		next.exchange(a.Player, a.Row, a.Col)
	case DiscardDrawn:
		next.discardDrawn()
	case RevealMandatory:
		next.revealMandatory(a.Player, a.Row, a.Col)
	}

	if err != nil {
		return g, err
	}
	return next, nil
}

// check rejects anything the current turn does not allow, before any change is made
func check(g Game, a Action) error {
	s := g.State
	if s.IsRoundOver {
		return invalidAction("round %d is over", s.RoundNumber)
	}
	if a.Player != s.CurrentPlayerIndex {
		return invalidAction("it is player %d's turn, not player %d's", s.CurrentPlayerIndex, a.Player)
	}

	switch a.Kind {
	case DrawFromDeck, DrawFromDiscard:
		if g.Phase != AwaitingDraw {
			return invalidAction("cannot draw during %s", g.Phase)
		}

	case DiscardDrawn:
		if g.Phase != HoldingDrawnCard || g.Held == nil {
			return invalidAction("nothing to discard during %s", g.Phase)
		}

	case Exchange:
		if g.Phase != HoldingDrawnCard || g.Held == nil {
			return invalidAction("nothing to exchange during %s", g.Phase)
		}
		if !InBounds(a.Row, a.Col) {
			return invalidAction("cell (%d, %d) is off the board", a.Row, a.Col)
		}
		if s.Players[a.Player].Cards.At(a.Row, a.Col).Removed {
			return invalidAction("cell (%d, %d) has been cleared", a.Row, a.Col)
		}

	case RevealMandatory:
		if g.Phase != AwaitingMandatoryReveal {
			return invalidAction("no reveal is due during %s", g.Phase)
		}
		if !InBounds(a.Row, a.Col) {
			return invalidAction("cell (%d, %d) is off the board", a.Row, a.Col)
		}
		if !s.Players[a.Player].Cards.At(a.Row, a.Col).Hidden() {
			return invalidAction("cell (%d, %d) is not face down", a.Row, a.Col)
		}

	default:
		return invalidAction("unknown action %d", int(a.Kind))
	}

	return nil
}

func (g *Game) drawFromDeck() error {
	if len(g.State.Deck) == 0 {
		g.reshuffleDiscard()
	}
	c, ok := g.State.Deck.Draw()
	if !ok {
		return fmt.Errorf("%w: deck and discard pile are exhausted", ErrEmptySource)
	}
	g.hold(c)
	return nil
}

func (g *Game) drawFromDiscard() error {
	c, ok := g.State.DiscardPile.Draw()
	if !ok {
		return fmt.Errorf("%w: discard pile", ErrEmptySource)
	}
	g.hold(c)
	return nil
}

func (g *Game) hold(c deck.Card) {
	c.Revealed = true
	g.Held = &c
	g.Phase = HoldingDrawnCard
}

// reshuffleDiscard turns every discard except the top face down and
// shuffles it back into the deck
func (g *Game) reshuffleDiscard() {
	pile := g.State.DiscardPile
	if len(pile) <= 1 {
		return
	}

	top := pile[len(pile)-1]
	recycled := make(deck.Deck, 0, len(pile)-1)
	for _, c := range pile[:len(pile)-1] {
		c.Revealed = false
		recycled = append(recycled, c)
	}

	rng := deck.NewRNG(g.RNG)
	recycled.Shuffle(rng)
	g.RNG = rng.State()

	g.State.Deck = recycled
	g.State.DiscardPile = deck.Deck{top}
}

func (g *Game) exchange(player, row, col int) {
	board := &g.State.Players[player].Cards

	displaced := board.At(row, col)
	displaced.Revealed = true
	board.Set(row, col, *g.Held)
	g.State.DiscardPile.Push(displaced)

	g.Held = nil
	g.endTurn(player)
}

func (g *Game) discardDrawn() {
	g.State.DiscardPile.Push(*g.Held)
	g.Held = nil
	g.Phase = AwaitingMandatoryReveal
}

func (g *Game) revealMandatory(player, row, col int) {
	board := &g.State.Players[player].Cards

	c := board.At(row, col)
	c.Revealed = true
	board.Set(row, col, c)

	g.endTurn(player)
}

// endTurn runs after every action that changes a board:
// clear columns, then work out who plays next or whether the round is over.
func (g *Game) endTurn(player int) {
	g.State.Players[player].Cards.ClearColumns()
	g.Phase = AwaitingDraw
	g.trackLastRound(player)
}
