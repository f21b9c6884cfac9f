package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/minaorangina/skyjo/engine"
	"github.com/minaorangina/skyjo/game"
	"github.com/minaorangina/skyjo/protocol"
)

var (
	errQuit = errors.New("quit")
	errHelp = errors.New("help")

	ErrFnUnknownCommand = func(input string) error {
		return fmt.Errorf("unknown command %q, type h for help", input)
	}
	ErrFnBadCell = func(input string) error {
		return fmt.Errorf("%q needs a row from 1 to %d and a column from 1 to %d", input, game.Rows, game.Cols)
	}
)

// AskNames prompts for between two and four player names
func AskNames(in *bufio.Scanner, out io.Writer) ([]string, error) {
	SendText(out, welcomeText)

	names := []string{}
	for len(names) < game.MaxPlayers {
		SendText(out, askNameText, len(names)+1)
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return nil, err
			}
			break
		}

		name := strings.TrimSpace(in.Text())
		if name == "" {
			if len(names) >= game.MinPlayers {
				break
			}
			SendText(out, "At least %d players are needed.\n", game.MinPlayers)
			continue
		}
		names = append(names, name)
	}

	if len(names) < game.MinPlayers {
		return nil, game.ErrTooFewPlayers
	}
	return names, nil
}

// ParseCommand turns a line of input into a message from the given player
func ParseCommand(line string, player int) (protocol.InboundMessage, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return protocol.InboundMessage{}, errHelp
	}

	msg := protocol.InboundMessage{Player: player}
	switch fields[0] {
	case "d", "deck":
		msg.Command = protocol.DrawDeck
	case "p", "pile":
		msg.Command = protocol.DrawDiscard
	case "x", "discard":
		msg.Command = protocol.Discard
	case "n", "next":
		msg.Command = protocol.NextRound
	case "e", "exchange", "r", "reveal":
		msg.Command = protocol.Exchange
		if fields[0][0] == 'r' {
			msg.Command = protocol.Reveal
		}
		row, col, err := parseCell(fields[1:])
		if err != nil {
			return protocol.InboundMessage{}, ErrFnBadCell(line)
		}
		msg.Row, msg.Col = row, col
	case "h", "help", "?":
		return protocol.InboundMessage{}, errHelp
	case "q", "quit", "exit":
		return protocol.InboundMessage{}, errQuit
	default:
		return protocol.InboundMessage{}, ErrFnUnknownCommand(line)
	}
	return msg, nil
}

// parseCell reads 1-based "ROW COL" into 0-based indices
func parseCell(fields []string) (int, int, error) {
	if len(fields) != 2 {
		return 0, 0, errors.New("want ROW COL")
	}
	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, err
	}
	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, err
	}
	if !game.InBounds(row-1, col-1) {
		return 0, 0, errors.New("out of range")
	}
	return row - 1, col - 1, nil
}

// Play runs the game until it ends, the input runs out or someone quits
func Play(ctx context.Context, ge *engine.GameEngine, in *bufio.Scanner, out io.Writer) error {
	for {
		v := ge.View()
		s := v.State
		SendText(out, "%s", ViewText(v))

		if s.IsRoundOver {
			if v.Result != nil {
				SendText(out, "%s", ResultText(*v.Result, s.Players))
			}
			if s.IsGameOver {
				SendText(out, gameOverText)
				SendText(out, "%s", StandingsText(s.Players))
				return nil
			}

			SendText(out, nextRoundText)
			if !in.Scan() || strings.HasPrefix(strings.TrimSpace(strings.ToLower(in.Text())), "q") {
				SendText(out, byeText)
				return in.Err()
			}
			if err := ge.StartNextRound(ctx); err != nil {
				return err
			}
			continue
		}

		SendText(out, "> ")
		if !in.Scan() {
			SendText(out, byeText)
			return in.Err()
		}

		msg, err := ParseCommand(in.Text(), s.CurrentPlayerIndex)
		switch {
		case errors.Is(err, errQuit):
			SendText(out, byeText)
			return nil
		case errors.Is(err, errHelp):
			SendText(out, helpText)
			continue
		case err != nil:
			SendText(out, "%s\n", alert(err.Error()))
			continue
		}

		if err := ge.Handle(ctx, msg); err != nil {
			SendText(out, "%s\n", alert(err.Error()))
		}
	}
}
