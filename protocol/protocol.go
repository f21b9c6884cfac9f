// Package protocol defines the messages exchanged between a game engine
// and whatever is rendering it.
package protocol

import "fmt"

// Cmd represents a command
type Cmd int

const (
	Null Cmd = iota
	// DrawDeck and the commands up to NextRound are sent by the renderer
	DrawDeck
	DrawDiscard
	Exchange
	Discard
	Reveal
	NextRound
	// State and Error are sent by the engine
	State
	Error
)

var CmdNames = map[Cmd]string{
	Null:        "Null",
	DrawDeck:    "DrawDeck",
	DrawDiscard: "DrawDiscard",
	Exchange:    "Exchange",
	Discard:     "Discard",
	Reveal:      "Reveal",
	NextRound:   "NextRound",
	State:       "State",
	Error:       "Error",
}

var NameToCmd = map[string]Cmd{
	"Null":        Null,
	"DrawDeck":    DrawDeck,
	"DrawDiscard": DrawDiscard,
	"Exchange":    Exchange,
	"Discard":     Discard,
	"Reveal":      Reveal,
	"NextRound":   NextRound,
	"State":       State,
	"Error":       Error,
}

func (c Cmd) String() string {
	if name, ok := CmdNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Cmd(%d)", int(c))
}

// ParseCmd looks a command up by name
func ParseCmd(name string) (Cmd, bool) {
	c, ok := NameToCmd[name]
	return c, ok
}

// Inbound reports whether the renderer may send this command
func (c Cmd) Inbound() bool {
	return c >= DrawDeck && c <= NextRound
}
