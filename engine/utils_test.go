package engine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/minaorangina/skyjo/game"
	"github.com/minaorangina/skyjo/store"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

// SpyStore wraps an in-memory store and records every call
type SpyStore struct {
	*store.InMemoryGameStore
	mu      sync.Mutex
	saved   []game.State
	cleared int
	failing bool
}

func NewSpyStore() *SpyStore {
	return &SpyStore{InMemoryGameStore: store.NewInMemoryGameStore()}
}

func (s *SpyStore) Save(ctx context.Context, key string, state game.State) error {
	s.mu.Lock()
	s.saved = append(s.saved, state.Clone())
	failing := s.failing
	s.mu.Unlock()

	if failing {
		return errors.New("disk on fire")
	}
	return s.InMemoryGameStore.Save(ctx, key, state)
}

func (s *SpyStore) Clear(ctx context.Context, key string) error {
	s.mu.Lock()
	s.cleared++
	s.mu.Unlock()
	return s.InMemoryGameStore.Clear(ctx, key)
}

func (s *SpyStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saved)
}

func newTestEngine(t *testing.T, s store.GameStore) (*GameEngine, *test.Hook) {
	t.Helper()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	ge, err := NewGameEngine(GameEngineOpts{
		GameID: "the-game",
		Names:  []string{"Ann", "Bo", "Cy"},
		Rules:  game.DefaultRules(),
		Seed:   99,
		Store:  s,
		Log:    logger,
	})
	require.NoError(t, err)
	return ge, hook
}

// playTurn discards whatever is drawn and reveals the first face-down card
func playTurn(t *testing.T, ge *GameEngine) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, ge.DrawFromDeck(ctx))
	require.NoError(t, ge.DiscardDrawn(ctx))

	g := ge.Game()
	player := g.State.CurrentPlayerIndex
	board := g.State.Players[player].Cards
	for row := 0; row < game.Rows; row++ {
		for col := 0; col < game.Cols; col++ {
			if board.At(row, col).Hidden() {
				require.NoError(t, ge.RevealMandatory(ctx, player, row, col))
				return
			}
		}
	}
	t.Fatalf("player %d has no face-down card", player)
}
