package game

import "github.com/minaorangina/skyjo/deck"

// Deal builds the State for a new round: a shuffled full deck, twelve cards
// per player dealt row by row, two random cells revealed on every board,
// and one face-up card to start the discard pile.
// Players keep their ID, Name and TotalScore; everything else is reset.
func Deal(players []Player, roundNumber int, rng *deck.RNG) State {
	d := deck.New()
	d.Shuffle(rng)

	dealt := make([]Player, 0, len(players))
	for _, p := range players {
		board, err := NewBoard(d.Deal(CardsPerBoard))
		if err != nil {
			// a full deck always covers MaxPlayers boards
			panic(err)
		}
		revealRandomCells(&board, numInitiallyRevealed, rng)

		dealt = append(dealt, Player{
			ID:         p.ID,
			Name:       p.Name,
			Cards:      board,
			TotalScore: p.TotalScore,
		})
	}

	top, _ := d.Draw()
	top.Revealed = true

	return State{
		Players:            dealt,
		CurrentPlayerIndex: 0,
		Deck:               d,
		DiscardPile:        deck.Deck{top},
		LastRoundInitiator: NoInitiator,
		RoundNumber:        roundNumber,
	}
}

// revealRandomCells turns over n distinct cells, sampling again on a repeat
func revealRandomCells(b *Board, n int, rng deck.Intner) {
	for revealed := 0; revealed < n; {
		row, col := rng.Intn(Rows), rng.Intn(Cols)
		if b[row][col].Revealed {
			continue
		}
		b[row][col].Revealed = true
		revealed++
	}
}
