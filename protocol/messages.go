package protocol

import (
	"github.com/minaorangina/skyjo/deck"
	"github.com/minaorangina/skyjo/game"
)

// InboundMessage is a message from a renderer to the GameEngine.
// Row and Col are only read by Exchange and Reveal.
type InboundMessage struct {
	Command Cmd `json:"command"`
	Player  int `json:"player"`
	Row     int `json:"row"`
	Col     int `json:"col"`
}

// OutboundMessage is a message from the GameEngine to a renderer
type OutboundMessage struct {
	Command Cmd               `json:"command"`
	GameID  string            `json:"gameID,omitempty"`
	View    *View             `json:"view,omitempty"`
	Result  *game.RoundResult `json:"result,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// View is a read-only snapshot of a game for rendering.
// Nothing in it is shared with the engine.
type View struct {
	State     game.State     `json:"state"`
	Phase     game.TurnPhase `json:"phase"`
	Held      *deck.Card     `json:"held,omitempty"`
	DeckCount int            `json:"deckCount"`
	// Legal lists the commands the current player may send
	Legal []Cmd  `json:"legal"`
	Hint  string `json:"hint"`
	// FinalTurnsLeft names the players still owed a turn in the last round
	FinalTurnsLeft []string          `json:"finalTurnsLeft"`
	Result         *game.RoundResult `json:"result,omitempty"`
}

var actionCmds = map[game.ActionKind]Cmd{
	game.DrawFromDeck:    DrawDeck,
	game.DrawFromDiscard: DrawDiscard,
	game.Exchange:        Exchange,
	game.DiscardDrawn:    Discard,
	game.RevealMandatory: Reveal,
}

var cmdActions = map[Cmd]game.ActionKind{
	DrawDeck:    game.DrawFromDeck,
	DrawDiscard: game.DrawFromDiscard,
	Exchange:    game.Exchange,
	Discard:     game.DiscardDrawn,
	Reveal:      game.RevealMandatory,
}

// CmdFor returns the command that carries an action kind
func CmdFor(k game.ActionKind) Cmd {
	return actionCmds[k]
}

// Action converts a message into a game action.
// ok is false for commands that are not player actions, such as NextRound.
func (m InboundMessage) Action() (a game.Action, ok bool) {
	kind, ok := cmdActions[m.Command]
	if !ok {
		return game.Action{}, false
	}
	return game.Action{Kind: kind, Player: m.Player, Row: m.Row, Col: m.Col}, true
}

// NewView builds a View of g. The state is deep-copied.
func NewView(g game.Game) View {
	g = g.Clone()

	legal := []Cmd{}
	for _, k := range game.LegalActions(g) {
		legal = append(legal, CmdFor(k))
	}
	if g.State.IsRoundOver && !g.State.IsGameOver {
		legal = append(legal, NextRound)
	}

	finalTurns := []string{}
	for _, i := range game.FinalTurnsLeft(g.State) {
		finalTurns = append(finalTurns, g.State.Players[i].Name)
	}

	return View{
		State:          g.State,
		Phase:          g.Phase,
		Held:           g.Held,
		DeckCount:      len(g.State.Deck),
		Legal:          legal,
		Hint:           game.Hint(g),
		FinalTurnsLeft: finalTurns,
		Result:         g.Result,
	}
}
