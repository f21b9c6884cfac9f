package game

import (
	"encoding/json"
	"testing"

	utils "github.com/minaorangina/skyjo/internal"
	"github.com/stretchr/testify/assert"
)

func TestTurnPhaseText(t *testing.T) {
	for _, p := range []TurnPhase{AwaitingDraw, HoldingDrawnCard, AwaitingMandatoryReveal} {
		data, err := json.Marshal(p)
		utils.AssertNoError(t, err)

		var got TurnPhase
		utils.AssertNoError(t, json.Unmarshal(data, &got))
		utils.AssertEqual(t, got, p)
	}

	data, _ := json.Marshal(HoldingDrawnCard)
	utils.AssertEqual(t, string(data), `"HoldingDrawnCard"`)

	var p TurnPhase
	assert.Error(t, json.Unmarshal([]byte(`"Sleeping"`), &p))
	_, err := TurnPhase(9).MarshalText()
	assert.Error(t, err)
	utils.AssertEqual(t, TurnPhase(9).String(), "TurnPhase(9)")
}

func TestActionString(t *testing.T) {
	utils.AssertEqual(t, drawDeck(1).String(), "DrawFromDeck(player=1)")
	utils.AssertEqual(t, exchange(0, 2, 3).String(), "Exchange(player=0, row=2, col=3)")
	utils.AssertEqual(t, ActionKind(9).String(), "ActionKind(9)")
}

func TestLegalActions(t *testing.T) {
	g := fixture(t, boardA, boardB)
	assert.Equal(t, []ActionKind{DrawFromDeck, DrawFromDiscard}, LegalActions(g))
	assert.Equal(t, "Draw a card from the deck or the discard pile", Hint(g))

	g = play(t, g, drawDeck(0))
	assert.Equal(t, []ActionKind{Exchange, DiscardDrawn}, LegalActions(g))

	g = play(t, g, exchange(0, 0, 0))
	g.State.Deck = nil
	assert.Equal(t, []ActionKind{DrawFromDeck, DrawFromDiscard}, LegalActions(g))

	g.State.DiscardPile = g.State.DiscardPile[:1]
	assert.Equal(t, []ActionKind{DrawFromDiscard}, LegalActions(g))
}
