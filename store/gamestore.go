// Package store persists game snapshots between turns.
//
// Every implementation keeps one JSON-encoded game.State per key and
// validates it again on the way out.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/minaorangina/skyjo/game"
)

// DefaultKey is the key a single-game renderer saves under
const DefaultKey = "gameState"

var (
	ErrMissingKey = errors.New("store key is required")
	ErrFnCorrupt  = func(key string, err error) error {
		return fmt.Errorf("%w: snapshot %q: %s", game.ErrInvalidState, key, err)
	}
)

// GameStore saves and loads snapshots of a round in progress
type GameStore interface {
	Save(ctx context.Context, key string, s game.State) error
	// Load reports false when nothing is saved under key
	Load(ctx context.Context, key string) (game.State, bool, error)
	Clear(ctx context.Context, key string) error
}

// Encode serialises a snapshot
func Encode(s game.State) ([]byte, error) {
	return json.Marshal(s)
}

// Decode parses and validates a snapshot
func Decode(key string, data []byte) (game.State, error) {
	var s game.State
	if err := json.Unmarshal(data, &s); err != nil {
		return game.State{}, ErrFnCorrupt(key, err)
	}
	if err := s.Validate(); err != nil {
		return game.State{}, fmt.Errorf("snapshot %q: %w", key, err)
	}
	return s, nil
}

func checkKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrMissingKey
	}
	return key, nil
}

// InMemoryGameStore maps keys to encoded snapshots
type InMemoryGameStore struct {
	mu        sync.RWMutex
	Snapshots map[string][]byte
}

// NewInMemoryGameStore constructs an InMemoryGameStore
func NewInMemoryGameStore() *InMemoryGameStore {
	return &InMemoryGameStore{
		Snapshots: map[string][]byte{},
	}
}

func (s *InMemoryGameStore) Save(ctx context.Context, key string, state game.State) error {
	key, err := checkKey(key)
	if err != nil {
		return err
	}
	data, err := Encode(state)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Snapshots[key] = data
	return nil
}

func (s *InMemoryGameStore) Load(ctx context.Context, key string) (game.State, bool, error) {
	key, err := checkKey(key)
	if err != nil {
		return game.State{}, false, err
	}

	s.mu.RLock()
	data, ok := s.Snapshots[key]
	s.mu.RUnlock()
	if !ok {
		return game.State{}, false, nil
	}

	state, err := Decode(key, data)
	if err != nil {
		return game.State{}, false, err
	}
	return state, true, nil
}

func (s *InMemoryGameStore) Clear(ctx context.Context, key string) error {
	key, err := checkKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Snapshots, key)
	return nil
}
