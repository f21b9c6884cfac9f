// Package cli plays a game in the terminal, passing one keyboard between players.
package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/minaorangina/skyjo/deck"
	"github.com/minaorangina/skyjo/game"
	"github.com/minaorangina/skyjo/protocol"
)

const (
	helpText = `Commands:
  d          draw from the deck
  p          take the top of the discard pile
  e ROW COL  exchange the drawn card with one of yours
  x          discard the drawn card
  r ROW COL  turn over one of your face-down cards
  n          start the next round
  h          show this help
  q          quit
`
	welcomeText   = "Welcome to Skyjo!\n"
	askNameText   = "Name of player %d (leave empty to start): "
	nextRoundText = "Press enter to deal the next round, or q to quit: "
	gameOverText  = "\nGame over! Final standings:\n"
	byeText       = "Bye!\n"
)

var (
	blue   = color.New(color.FgHiCyan).SprintFunc()
	green  = color.New(color.FgHiGreen).SprintFunc()
	yellow = color.New(color.FgHiYellow).SprintFunc()
	red    = color.New(color.FgHiRed).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	alert  = color.New(color.FgRed, color.Bold).SprintFunc()
)

func SendText(w io.Writer, text string, a ...interface{}) {
	fmt.Fprintf(w, text, a...)
}

// paint colours a card value by how much it costs
func paint(value int, text string) string {
	switch {
	case value < 0:
		return blue(text)
	case value <= 4:
		return green(text)
	case value <= 8:
		return yellow(text)
	}
	return red(text)
}

// CardText renders a card padded to a fixed width
func CardText(c deck.Card) string {
	text := fmt.Sprintf("%3s", c.String())
	if c.Removed || !c.Revealed {
		return faint(text)
	}
	return paint(c.Value, text)
}

// BoardText renders a player's grid with 1-based row and column numbers
func BoardText(b game.Board) string {
	var sb strings.Builder
	sb.WriteString("    ")
	for col := 1; col <= game.Cols; col++ {
		sb.WriteString(fmt.Sprintf("%3d ", col))
	}
	sb.WriteString("\n")

	for row := 0; row < game.Rows; row++ {
		sb.WriteString(fmt.Sprintf("%3d ", row+1))
		for col := 0; col < game.Cols; col++ {
			sb.WriteString(CardText(b.At(row, col)) + " ")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ViewText renders the whole table as seen by the player whose turn it is
func ViewText(v protocol.View) string {
	s := v.State
	var sb strings.Builder

	sb.WriteString(bold(fmt.Sprintf("\n=== Round %d ===", s.RoundNumber)) + "\n")
	for i, p := range s.Players {
		marker := "  "
		if i == s.CurrentPlayerIndex && !s.IsRoundOver {
			marker = "> "
		}
		sb.WriteString(fmt.Sprintf("%s%s  total %d  showing %d\n", marker, bold(p.Name), p.TotalScore, p.Cards.VisibleScore()))
		sb.WriteString(BoardText(p.Cards))
	}

	top := "empty"
	if c, ok := s.DiscardTop(); ok {
		top = CardText(c)
	}
	sb.WriteString(fmt.Sprintf("\nDeck: %d cards   Discard pile: %s\n", v.DeckCount, top))

	if v.Held != nil {
		sb.WriteString(fmt.Sprintf("Drawn card: %s\n", CardText(*v.Held)))
	}

	if len(v.FinalTurnsLeft) > 0 {
		sb.WriteString(alert(fmt.Sprintf("Last round! Still to play: %s", strings.Join(v.FinalTurnsLeft, ", "))) + "\n")
	}

	if !s.IsRoundOver {
		sb.WriteString(fmt.Sprintf("%s: %s\n", s.CurrentPlayer().Name, v.Hint))
	}
	return sb.String()
}

// ResultText renders a scored round, lowest score first
func ResultText(r game.RoundResult, players []game.Player) string {
	var sb strings.Builder
	sb.WriteString(bold(fmt.Sprintf("\nRound %d scores:", r.Round)) + "\n")

	for place, i := range r.Ranking {
		line := fmt.Sprintf("%d. %-12s %4d", place+1, players[i].Name, r.Scores[i])
		if i == r.Initiator && r.Doubled {
			line += fmt.Sprintf("  (%d x2)", r.RawScores[i])
		}
		line += fmt.Sprintf("   total %d", players[i].TotalScore)
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

// StandingsText ranks players by total score
func StandingsText(players []game.Player) string {
	order := make([]int, len(players))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return players[order[a]].TotalScore < players[order[b]].TotalScore
	})

	var sb strings.Builder
	for place, i := range order {
		sb.WriteString(fmt.Sprintf("%d. %-12s %4d\n", place+1, players[i].Name, players[i].TotalScore))
	}
	return sb.String()
}
