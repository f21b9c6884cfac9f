package game

import "sort"

// RoundResult summarises how a round was scored
type RoundResult struct {
	Round     int `json:"round"`
	Initiator int `json:"initiator"`
	// Doubled is true when the initiator's score was doubled for not being the lowest
	Doubled   bool  `json:"doubled"`
	Minimum   int   `json:"minimum"`
	RawScores []int `json:"rawScores"`
	Scores    []int `json:"scores"`
	// Ranking lists player indices from lowest to highest round score
	Ranking []int `json:"ranking"`
}

func (r RoundResult) clone() RoundResult {
	c := r
	c.RawScores = append([]int(nil), r.RawScores...)
	c.Scores = append([]int(nil), r.Scores...)
	c.Ranking = append([]int(nil), r.Ranking...)
	return c
}

// scoreRound reveals every card still in play, scores each board,
// doubles the initiator unless they hold the lowest score,
// adds the round to the totals and checks the score limit.
func scoreRound(s *State, rules Rules) RoundResult {
	result := RoundResult{
		Round:     s.RoundNumber,
		Initiator: s.LastRoundInitiator,
		RawScores: make([]int, len(s.Players)),
		Scores:    make([]int, len(s.Players)),
	}

	lowest := 0
	for i := range s.Players {
		p := &s.Players[i]
		p.Cards.RevealAll()
		p.CurrentRoundScore = p.Cards.Score()
		result.RawScores[i] = p.CurrentRoundScore

		if p.CurrentRoundScore < s.Players[lowest].CurrentRoundScore {
			lowest = i
		}
	}
	result.Minimum = s.Players[lowest].CurrentRoundScore

	if s.HasInitiator() {
		initiator := &s.Players[s.LastRoundInitiator]
		if initiator.CurrentRoundScore != result.Minimum {
			initiator.CurrentRoundScore *= 2
			result.Doubled = true
		}
	}

	limit := rules.scoreLimit()
	for i := range s.Players {
		p := &s.Players[i]
		p.TotalScore += p.CurrentRoundScore
		result.Scores[i] = p.CurrentRoundScore
		if p.TotalScore >= limit {
			s.IsGameOver = true
		}
	}
	s.IsRoundOver = true

	result.Ranking = make([]int, len(s.Players))
	for i := range result.Ranking {
		result.Ranking[i] = i
	}
	sort.SliceStable(result.Ranking, func(a, b int) bool {
		return result.Scores[result.Ranking[a]] < result.Scores[result.Ranking[b]]
	})

	return result
}
