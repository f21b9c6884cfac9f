package game

import (
	"encoding/json"
	"testing"

	"github.com/minaorangina/skyjo/deck"
	utils "github.com/minaorangina/skyjo/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boardOf(values cells, revealed bool) Board {
	var b Board
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			b[row][col] = deck.Card{Value: values[row][col], Revealed: revealed}
		}
	}
	return b
}

func TestNewBoard(t *testing.T) {
	d := deck.New()
	cards := d.Deal(CardsPerBoard)
	b, err := NewBoard(cards)
	utils.AssertNoError(t, err)

	t.Log("Cards are laid out row by row")
	utils.AssertEqual(t, b.At(0, 0), cards[0])
	utils.AssertEqual(t, b.At(0, 3), cards[3])
	utils.AssertEqual(t, b.At(1, 0), cards[4])
	utils.AssertEqual(t, b.At(2, 3), cards[11])
	assert.Equal(t, cards, b.Cards())

	_, err = NewBoard(cards[:11])
	utils.AssertErrored(t, err)
}

func TestInBounds(t *testing.T) {
	utils.AssertTrue(t, InBounds(0, 0))
	utils.AssertTrue(t, InBounds(2, 3))
	assert.False(t, InBounds(3, 0))
	assert.False(t, InBounds(0, 4))
	assert.False(t, InBounds(-1, 0))
	assert.False(t, InBounds(0, -1))
}

func TestClearColumns(t *testing.T) {
	t.Run("clears only revealed matching columns", func(t *testing.T) {
		b := boardOf(cells{{7, 3, -2, 1}, {7, 3, -2, 2}, {7, 3, -2, 1}}, true)
		b[1][1].Revealed = false

		cleared := b.ClearColumns()

		assert.Equal(t, []int{0, 2}, cleared)
		for row := 0; row < Rows; row++ {
			utils.AssertTrue(t, b.At(row, 0).Removed)
			utils.AssertEqual(t, b.At(row, 1).Removed, false)
			utils.AssertTrue(t, b.At(row, 2).Removed)
			utils.AssertEqual(t, b.At(row, 3).Removed, false)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		b := boardOf(cells{{7, 3, 0, 1}, {7, 4, 0, 2}, {7, 5, 0, 1}}, true)
		b.ClearColumns()
		once := b

		cleared := b.ClearColumns()

		assert.Empty(t, cleared)
		assert.Equal(t, once, b)
	})
}

func TestBoardScore(t *testing.T) {
	b := boardOf(cells{{1, 2, 3, 4}, {5, 6, 7, 8}, {-2, -1, 0, 12}}, false)
	b[0][0].Revealed = true
	b[2][3].Revealed = true

	utils.AssertEqual(t, b.Score(), 45)
	utils.AssertEqual(t, b.VisibleScore(), 13)
	utils.AssertEqual(t, b.HiddenCount(), 10)
	utils.AssertEqual(t, b.Resolved(), false)

	b.RevealAll()
	utils.AssertTrue(t, b.Resolved())
	utils.AssertEqual(t, b.VisibleScore(), 45)
}

func TestBoardJSON(t *testing.T) {
	t.Run("round trips as nested rows", func(t *testing.T) {
		b := boardOf(cells{{1, 2, 3, 4}, {5, 6, 7, 8}, {-2, -1, 0, 12}}, false)
		b[1][2] = deck.Card{Value: 7, Revealed: true, Removed: true}

		data, err := json.Marshal(b)
		require.NoError(t, err)

		var got Board
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, b, got)
	})

	t.Run("rejects a grid of the wrong shape", func(t *testing.T) {
		var b Board
		assert.Error(t, json.Unmarshal([]byte(`[[{"value":1}]]`), &b))
		assert.Error(t, json.Unmarshal([]byte(`[[],[],[]]`), &b))
		assert.Error(t, json.Unmarshal([]byte(`{}`), &b))
	})
}
