package server

import (
	"errors"
	"fmt"
	"sync"

	"github.com/minaorangina/skyjo/engine"
)

var (
	ErrUnknownGameID     = errors.New("unknown game ID")
	ErrFnUnknownGameID   = func(gameID string) error { return fmt.Errorf("%w '%s'", ErrUnknownGameID, gameID) }
	ErrFnDuplicateGameID = func(gameID string) error { return fmt.Errorf("game with id %s already exists", gameID) }
)

// GameStore keeps track of the games being played
type GameStore interface {
	FindGame(gameID string) (*engine.GameEngine, bool)
	AddGame(game *engine.GameEngine) error
	RemoveGame(gameID string)
}

// InMemoryGameStore maps game id to game engine
type InMemoryGameStore struct {
	mu    sync.RWMutex
	games map[string]*engine.GameEngine
}

// NewInMemoryGameStore constructs an InMemoryGameStore
func NewInMemoryGameStore() *InMemoryGameStore {
	return &InMemoryGameStore{
		games: map[string]*engine.GameEngine{},
	}
}

func (s *InMemoryGameStore) FindGame(gameID string) (*engine.GameEngine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.games[gameID]
	return game, ok
}

func (s *InMemoryGameStore) AddGame(game *engine.GameEngine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[game.ID()]; exists {
		return ErrFnDuplicateGameID(game.ID())
	}
	s.games[game.ID()] = game
	return nil
}

func (s *InMemoryGameStore) RemoveGame(gameID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, gameID)
}
