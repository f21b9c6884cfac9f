package game

// trackLastRound decides what happens after player's board changed.
//
// The first player to resolve their whole board starts the last round;
// from then on every other player gets exactly one more turn, and the
// round is scored once they have all had it.
func (g *Game) trackLastRound(player int) {
	s := &g.State
	n := len(s.Players)
	resolved := s.Players[player].Cards.Resolved()

	if !s.IsLastRound {
		if resolved {
			s.IsLastRound = true
			s.LastRoundInitiator = player
			s.Players[player].HasFinishedRound = true
		}
		s.CurrentPlayerIndex = (player + 1) % n
		return
	}

	// In the last round any completed turn is the player's final one,
	// whether or not their board is resolved. Scoring reveals the rest.
	s.Players[player].HasFinishedRound = true

	if g.everyoneHadFinalTurn() {
		result := scoreRound(s, g.Rules)
		g.Result = &result
		return
	}

	next := (player + 1) % n
	for s.Players[next].HasFinishedRound {
		next = (next + 1) % n
		if next == player {
			// nobody left to play; everyoneHadFinalTurn should have caught this
			return
		}
	}
	s.CurrentPlayerIndex = next
}

func (g *Game) everyoneHadFinalTurn() bool {
	for i, p := range g.State.Players {
		if i == g.State.LastRoundInitiator {
			continue
		}
		if !p.HasFinishedRound {
			return false
		}
	}
	return true
}

// FinalTurnsLeft lists the players still owed a turn in the last round
func FinalTurnsLeft(s State) []int {
	left := []int{}
	if !s.IsLastRound || s.IsRoundOver {
		return left
	}
	for i, p := range s.Players {
		if !p.HasFinishedRound {
			left = append(left, i)
		}
	}
	return left
}
