// Package server exposes games over HTTP and WebSocket for a browser renderer.
// Every game is played on one shared screen, so there are no seats or logins.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/minaorangina/skyjo/engine"
	"github.com/minaorangina/skyjo/game"
	"github.com/minaorangina/skyjo/protocol"
	"github.com/minaorangina/skyjo/store"
	"github.com/sirupsen/logrus"
)

type NewGameReq struct {
	Names []string `json:"names"`
}

type NewGameRes struct {
	GameID string        `json:"game_id"`
	View   protocol.View `json:"view"`
}

type ServerOpts struct {
	Addr  string
	Games GameStore
	// Snapshots persists every game between turns. Optional.
	Snapshots      store.GameStore
	Rules          game.Rules
	Seed           uint64
	AllowedOrigins []string
	Log            *logrus.Logger
}

// GameServer is a game server
type GameServer struct {
	http.Server
	games     GameStore
	snapshots store.GameStore
	rules     game.Rules
	seed      uint64
	log       *logrus.Logger
	logWriter io.WriteCloser
}

// NewServer creates a new GameServer
func NewServer(opts ServerOpts) *GameServer {
	if opts.Games == nil {
		opts.Games = NewInMemoryGameStore()
	}
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	s := &GameServer{
		games:     opts.Games,
		snapshots: opts.Snapshots,
		rules:     opts.Rules,
		seed:      opts.Seed,
		log:       opts.Log,
		logWriter: opts.Log.WriterLevel(logrus.InfoLevel),
	}

	router := http.NewServeMux()
	router.Handle("/new", http.HandlerFunc(s.HandleNewGame))
	router.Handle("/game/", http.HandlerFunc(s.HandleGame))
	router.Handle("/ws", http.HandlerFunc(s.HandleWS))

	cors := handlers.CORS(
		handlers.AllowedOrigins(opts.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	s.Addr = opts.Addr
	s.Handler = cors(handlers.LoggingHandler(s.logWriter, router))

	return s
}

// ServeHTTP serves http
func (s *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Handler.ServeHTTP(w, r)
}

// Close stops the server and its request log
func (s *GameServer) Close() error {
	err := s.Server.Close()
	s.logWriter.Close()
	return err
}

// HandleNewGame handles a request to create a new game
func (s *GameServer) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var data NewGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		s.writeParseError(err, w)
		return
	}

	ge, err := engine.NewGameEngine(engine.GameEngineOpts{
		Names: data.Names,
		Rules: s.rules,
		Seed:  s.seed,
		Store: s.snapshots,
		Log:   s.log,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	if _, err := ge.Resume(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.games.AddGame(ge); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, NewGameRes{GameID: ge.ID(), View: ge.View()})
}

// HandleGame serves GET /game/{id} and POST /game/{id}/action
func (s *GameServer) HandleGame(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/game/"), "/"), "/")
	gameID := parts[0]
	if gameID == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("missing game ID"))
		return
	}

	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		s.handleFindGame(w, r, gameID)
	case len(parts) == 2 && parts[1] == "action" && r.Method == http.MethodPost:
		s.handleAction(w, r, gameID)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (s *GameServer) handleFindGame(w http.ResponseWriter, r *http.Request, gameID string) {
	ge, err := s.findGame(r.Context(), gameID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, ge.StateMessage())
}

func (s *GameServer) handleAction(w http.ResponseWriter, r *http.Request, gameID string) {
	ge, err := s.findGame(r.Context(), gameID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var msg protocol.InboundMessage
	err = json.NewDecoder(r.Body).Decode(&msg)
	defer r.Body.Close()
	if err != nil {
		s.writeParseError(err, w)
		return
	}

	if err := ge.Handle(r.Context(), msg); err != nil {
		s.writeJSON(w, statusFor(err), ge.ErrorMessage(err))
		return
	}

	s.writeJSON(w, http.StatusOK, ge.StateMessage())
}

// findGame looks in memory first, then brings back a saved game
func (s *GameServer) findGame(ctx context.Context, gameID string) (*engine.GameEngine, error) {
	if ge, ok := s.games.FindGame(gameID); ok {
		return ge, nil
	}
	if s.snapshots == nil {
		return nil, ErrFnUnknownGameID(gameID)
	}

	saved, ok, err := s.snapshots.Load(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrFnUnknownGameID(gameID)
	}

	names := make([]string, 0, len(saved.Players))
	for _, p := range saved.Players {
		names = append(names, p.Name)
	}
	ge, err := engine.NewGameEngine(engine.GameEngineOpts{
		GameID: gameID,
		Names:  names,
		Rules:  s.rules,
		Store:  s.snapshots,
		Log:    s.log,
	})
	if err != nil {
		return nil, err
	}
	if _, err := ge.Resume(ctx); err != nil {
		return nil, err
	}

	if err := s.games.AddGame(ge); err != nil {
		// someone else resumed it first
		if existing, ok := s.games.FindGame(gameID); ok {
			return existing, nil
		}
		return nil, err
	}
	return ge, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrUnknownGameID):
		return http.StatusNotFound
	case errors.Is(err, game.ErrInvalidAction),
		errors.Is(err, game.ErrEmptySource),
		errors.Is(err, game.ErrRoundNotOver),
		errors.Is(err, game.ErrGameOver):
		return http.StatusConflict
	case errors.Is(err, game.ErrInvalidState):
		return http.StatusUnprocessableEntity
	case errors.Is(err, game.ErrTooFewPlayers),
		errors.Is(err, game.ErrTooManyPlayers),
		errors.Is(err, game.ErrEmptyName),
		errors.Is(err, engine.ErrUnknownCommand):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *GameServer) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.WithError(err).Error("request failed")
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	w.Write([]byte(err.Error()))
}

func (s *GameServer) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		s.log.WithError(err).Error("could not encode response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}

func (s *GameServer) writeParseError(err error, w http.ResponseWriter) {
	w.Header().Add("Content-Type", "text/plain")
	w.WriteHeader(http.StatusBadRequest)
	if err == io.EOF {
		w.Write([]byte("Missing body"))
		return
	}
	w.Write([]byte("Invalid JSON: " + err.Error()))
}
