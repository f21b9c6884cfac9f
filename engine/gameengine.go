// Package engine owns a running game: it feeds actions through the rules,
// persists the result at the end of every turn and tells subscribers
// what changed.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/minaorangina/skyjo/game"
	"github.com/minaorangina/skyjo/protocol"
	"github.com/minaorangina/skyjo/store"
	"github.com/sirupsen/logrus"
)

var ErrUnknownCommand = errors.New("unknown command")

// subscriberBuffer is how many updates a slow subscriber may fall behind
// before it starts missing them
const subscriberBuffer = 16

type GameEngineOpts struct {
	GameID string
	Names  []string
	Rules  game.Rules
	// Seed drives every shuffle. 0 picks a random one.
	Seed  uint64
	Store store.GameStore
	// StoreKey defaults to the game ID
	StoreKey string
	Log      logrus.FieldLogger
}

// GameEngine is the only owner of a game.Game.
// Its methods may be called from any goroutine.
type GameEngine struct {
	id    string
	key   string
	rules game.Rules
	store store.GameStore
	log   logrus.FieldLogger

	mu          sync.Mutex
	game        game.Game
	subscribers map[int]chan protocol.OutboundMessage
	nextSubID   int
}

// NewGameEngine deals a new game for the named players
func NewGameEngine(opts GameEngineOpts) (*GameEngine, error) {
	if opts.GameID == "" {
		opts.GameID = NewID()
	}
	if opts.StoreKey == "" {
		opts.StoreKey = opts.GameID
	}
	if opts.Seed == 0 {
		opts.Seed = NewSeed()
	}
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}

	g, err := game.NewGame(opts.Names, opts.Rules, opts.Seed)
	if err != nil {
		return nil, err
	}

	ge := &GameEngine{
		id:          opts.GameID,
		key:         opts.StoreKey,
		rules:       opts.Rules,
		store:       opts.Store,
		log:         opts.Log.WithField("game_id", opts.GameID),
		game:        g,
		subscribers: map[int]chan protocol.OutboundMessage{},
	}

	ge.log.WithFields(logrus.Fields{
		"players": len(opts.Names),
		"seed":    opts.Seed,
	}).Info("game created")

	return ge, nil
}

func (ge *GameEngine) ID() string {
	return ge.id
}

// Resume replaces the freshly dealt game with the snapshot in the store, if there is one.
// Otherwise it saves the current game so that it can be resumed later.
func (ge *GameEngine) Resume(ctx context.Context) (bool, error) {
	if ge.store == nil {
		return false, nil
	}

	ge.mu.Lock()
	defer ge.mu.Unlock()

	s, ok, err := ge.store.Load(ctx, ge.key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, ge.store.Save(ctx, ge.key, ge.game.State)
	}

	g, err := game.Resume(s, ge.rules, NewSeed())
	if err != nil {
		return false, err
	}
	ge.game = g

	ge.log.WithField("round", s.RoundNumber).Info("game resumed")
	ge.broadcast()
	return true, nil
}

// DrawFromDeck draws for the current player
func (ge *GameEngine) DrawFromDeck(ctx context.Context) error {
	return ge.apply(ctx, func(g game.Game) game.Action {
		return game.Action{Kind: game.DrawFromDeck, Player: g.State.CurrentPlayerIndex}
	})
}

// DrawFromDiscard draws for the current player
func (ge *GameEngine) DrawFromDiscard(ctx context.Context) error {
	return ge.apply(ctx, func(g game.Game) game.Action {
		return game.Action{Kind: game.DrawFromDiscard, Player: g.State.CurrentPlayerIndex}
	})
}

func (ge *GameEngine) Exchange(ctx context.Context, player, row, col int) error {
	return ge.apply(ctx, func(game.Game) game.Action {
		return game.Action{Kind: game.Exchange, Player: player, Row: row, Col: col}
	})
}

// DiscardDrawn discards the current player's drawn card
func (ge *GameEngine) DiscardDrawn(ctx context.Context) error {
	return ge.apply(ctx, func(g game.Game) game.Action {
		return game.Action{Kind: game.DiscardDrawn, Player: g.State.CurrentPlayerIndex}
	})
}

func (ge *GameEngine) RevealMandatory(ctx context.Context, player, row, col int) error {
	return ge.apply(ctx, func(game.Game) game.Action {
		return game.Action{Kind: game.RevealMandatory, Player: player, Row: row, Col: col}
	})
}

// StartNextRound deals the next round once the current one has been scored
func (ge *GameEngine) StartNextRound(ctx context.Context) error {
	ge.mu.Lock()
	defer ge.mu.Unlock()

	next, err := game.NextRound(ge.game)
	if err != nil {
		ge.log.WithError(err).Debug("next round refused")
		return err
	}
	ge.game = next

	ge.log.WithField("round", next.State.RoundNumber).Info("round started")
	ge.persist(ctx)
	ge.broadcast()
	return nil
}

// Handle carries out an inbound command
func (ge *GameEngine) Handle(ctx context.Context, msg protocol.InboundMessage) error {
	if a, ok := msg.Action(); ok {
		return ge.apply(ctx, func(game.Game) game.Action { return a })
	}
	if msg.Command == protocol.NextRound {
		return ge.StartNextRound(ctx)
	}
	return fmt.Errorf("%w: %s", ErrUnknownCommand, msg.Command)
}

// Receive carries out an inbound command and describes the outcome
func (ge *GameEngine) Receive(ctx context.Context, msg protocol.InboundMessage) protocol.OutboundMessage {
	if err := ge.Handle(ctx, msg); err != nil {
		return ge.ErrorMessage(err)
	}
	return ge.StateMessage()
}

// StateMessage describes the game as it is now
func (ge *GameEngine) StateMessage() protocol.OutboundMessage {
	ge.mu.Lock()
	defer ge.mu.Unlock()
	return ge.stateMessageLocked()
}

// ErrorMessage describes a failed command
func (ge *GameEngine) ErrorMessage(err error) protocol.OutboundMessage {
	return protocol.OutboundMessage{
		Command: protocol.Error,
		GameID:  ge.id,
		Error:   err.Error(),
	}
}

// View returns a copy of the game for rendering
func (ge *GameEngine) View() protocol.View {
	ge.mu.Lock()
	defer ge.mu.Unlock()
	return protocol.NewView(ge.game)
}

// Game returns a copy of the game
func (ge *GameEngine) Game() game.Game {
	ge.mu.Lock()
	defer ge.mu.Unlock()
	return ge.game.Clone()
}

// Subscribe returns a channel that receives a State message after every change.
// Call the returned func to stop receiving.
func (ge *GameEngine) Subscribe() (<-chan protocol.OutboundMessage, func()) {
	ge.mu.Lock()
	defer ge.mu.Unlock()

	id := ge.nextSubID
	ge.nextSubID++
	ch := make(chan protocol.OutboundMessage, subscriberBuffer)
	ge.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			ge.mu.Lock()
			defer ge.mu.Unlock()
			delete(ge.subscribers, id)
			close(ch)
		})
	}
}

func (ge *GameEngine) apply(ctx context.Context, action func(game.Game) game.Action) error {
	ge.mu.Lock()
	defer ge.mu.Unlock()

	prev := ge.game
	a := action(prev)
	log := ge.log.WithFields(logrus.Fields{
		"player": a.Player,
		"action": a.Kind.String(),
	})

	next, err := game.Apply(prev, a)
	if err != nil {
		log.WithError(err).Debug("action rejected")
		return err
	}
	ge.game = next
	log.Debug("action accepted")

	s := next.State
	if s.IsLastRound && !prev.State.IsLastRound {
		ge.log.WithFields(logrus.Fields{
			"initiator": s.LastRoundInitiator,
			"name":      s.Players[s.LastRoundInitiator].Name,
		}).Info("last round triggered")
	}
	if s.IsRoundOver && next.Result != nil {
		ge.log.WithFields(logrus.Fields{
			"round":   next.Result.Round,
			"scores":  next.Result.Scores,
			"doubled": next.Result.Doubled,
		}).Info("round scored")
	}
	if s.IsGameOver {
		ge.log.WithField("ranking", next.Result.Ranking).Info("game over")
	}

	ge.persist(ctx)
	ge.broadcast()
	return nil
}

// persist saves the game at the end of a turn and clears it once the game is over.
// Mid-turn states are never saved.
func (ge *GameEngine) persist(ctx context.Context) {
	if ge.store == nil {
		return
	}

	g := ge.game
	var err error
	switch {
	case g.State.IsGameOver:
		err = ge.store.Clear(ctx, ge.key)
	case g.Phase == game.AwaitingDraw && g.Held == nil:
		err = ge.store.Save(ctx, ge.key, g.State)
	default:
		return
	}

	if err != nil {
		ge.log.WithError(err).Error("could not persist game")
	}
}

func (ge *GameEngine) stateMessageLocked() protocol.OutboundMessage {
	view := protocol.NewView(ge.game)
	return protocol.OutboundMessage{
		Command: protocol.State,
		GameID:  ge.id,
		View:    &view,
		Result:  view.Result,
	}
}

// broadcast must be called with mu held
func (ge *GameEngine) broadcast() {
	if len(ge.subscribers) == 0 {
		return
	}
	msg := ge.stateMessageLocked()
	for id, ch := range ge.subscribers {
		select {
		case ch <- msg:
		default:
			ge.log.WithField("subscriber", id).Warn("subscriber is falling behind, update dropped")
		}
	}
}
