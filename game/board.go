package game

import (
	"encoding/json"
	"fmt"

	"github.com/minaorangina/skyjo/deck"
)

const (
	Rows          = 3
	Cols          = 4
	CardsPerBoard = Rows * Cols

	numInitiallyRevealed = 2
)

// Board is a player's grid of cards, addressed by (row, col)
type Board [Rows][Cols]deck.Card

// NewBoard lays out exactly CardsPerBoard cards row by row
func NewBoard(cards []deck.Card) (Board, error) {
	var b Board
	if len(cards) != CardsPerBoard {
		return b, fmt.Errorf("a board needs %d cards, got %d", CardsPerBoard, len(cards))
	}
	for i, c := range cards {
		b[i/Cols][i%Cols] = c
	}
	return b, nil
}

// InBounds reports whether (row, col) addresses a cell
func InBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

// At returns the card at (row, col)
func (b *Board) At(row, col int) deck.Card {
	return b[row][col]
}

// Set replaces the card at (row, col)
func (b *Board) Set(row, col int, c deck.Card) {
	b[row][col] = c
}

// Cards returns every cell in row-major order
func (b *Board) Cards() []deck.Card {
	cards := make([]deck.Card, 0, CardsPerBoard)
	for _, row := range b {
		cards = append(cards, row[:]...)
	}
	return cards
}

// Resolved reports whether every cell is revealed or removed
func (b *Board) Resolved() bool {
	for _, row := range b {
		for _, c := range row {
			if !c.Resolved() {
				return false
			}
		}
	}
	return true
}

// HiddenCount counts cells still face down and in play
func (b *Board) HiddenCount() int {
	n := 0
	for _, row := range b {
		for _, c := range row {
			if c.Hidden() {
				n++
			}
		}
	}
	return n
}

// ClearColumns removes every column of three revealed, equal cards
// and returns the cleared column indices. Safe to call after every action.
func (b *Board) ClearColumns() []int {
	cleared := []int{}
	for col := 0; col < Cols; col++ {
		if !b.columnMatches(col) {
			continue
		}
		for row := 0; row < Rows; row++ {
			b[row][col].Removed = true
		}
		cleared = append(cleared, col)
	}
	return cleared
}

func (b *Board) columnMatches(col int) bool {
	first := b[0][col]
	for row := 0; row < Rows; row++ {
		c := b[row][col]
		if !c.Revealed || c.Removed || c.Value != first.Value {
			return false
		}
	}
	return true
}

// RevealAll turns over every card still in play
func (b *Board) RevealAll() {
	for row := range b {
		for col := range b[row] {
			if !b[row][col].Removed {
				b[row][col].Revealed = true
			}
		}
	}
}

// Score sums the values of every card still in play, hidden or not
func (b *Board) Score() int {
	score := 0
	for _, row := range b {
		for _, c := range row {
			if !c.Removed {
				score += c.Value
			}
		}
	}
	return score
}

// VisibleScore sums only the face-up cards still in play
func (b *Board) VisibleScore() int {
	score := 0
	for _, row := range b {
		for _, c := range row {
			if c.Revealed && !c.Removed {
				score += c.Value
			}
		}
	}
	return score
}

// UnmarshalJSON only accepts a complete grid
func (b *Board) UnmarshalJSON(data []byte) error {
	var rows [][]deck.Card
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	if len(rows) != Rows {
		return fmt.Errorf("board has %d rows, want %d", len(rows), Rows)
	}
	for r, row := range rows {
		if len(row) != Cols {
			return fmt.Errorf("board row %d has %d cards, want %d", r, len(row), Cols)
		}
		copy(b[r][:], row)
	}
	return nil
}
