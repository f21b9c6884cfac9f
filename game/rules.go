package game

const (
	MinPlayers = 2
	MaxPlayers = 4

	// DefaultScoreLimit ends the game once any total reaches it
	DefaultScoreLimit = 100
)

// Rules holds the configurable parts of a game
type Rules struct {
	ScoreLimit int // 0 = DefaultScoreLimit
}

// DefaultRules returns the standard rules
func DefaultRules() Rules {
	return Rules{ScoreLimit: DefaultScoreLimit}
}

func (r Rules) scoreLimit() int {
	if r.ScoreLimit <= 0 {
		return DefaultScoreLimit
	}
	return r.ScoreLimit
}
