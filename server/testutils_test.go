package server

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/skyjo/engine"
	"github.com/minaorangina/skyjo/game"
	utils "github.com/minaorangina/skyjo/internal"
	"github.com/minaorangina/skyjo/protocol"
	"github.com/minaorangina/skyjo/store"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func quietLogger() *logrus.Logger {
	logger, _ := test.NewNullLogger()
	return logger
}

func newTestServer(t *testing.T, snapshots store.GameStore) *GameServer {
	t.Helper()

	s := NewServer(ServerOpts{
		Snapshots: snapshots,
		Rules:     game.DefaultRules(),
		Seed:      17,
		Log:       quietLogger(),
	})
	t.Cleanup(func() { s.Close() })
	return s
}

func newServerWithGame(t *testing.T, snapshots store.GameStore) (*GameServer, *engine.GameEngine) {
	t.Helper()

	s := newTestServer(t, snapshots)
	ge, err := engine.NewGameEngine(engine.GameEngineOpts{
		GameID: "some-game-id",
		Names:  []string{"Ann", "Bo"},
		Seed:   17,
		Store:  snapshots,
		Log:    quietLogger(),
	})
	utils.AssertNoError(t, err)
	utils.AssertNoError(t, s.games.AddGame(ge))
	return s, ge
}

func mustMakeJson(t *testing.T, input interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(input)
	utils.AssertNoError(t, err)

	return data
}

func newCreateGameRequest(data []byte) *http.Request {
	request, _ := http.NewRequest(http.MethodPost, "/new", bytes.NewBuffer(data))
	return request
}

func newGetGameRequest(gameID string) *http.Request {
	request, _ := http.NewRequest(http.MethodGet, "/game/"+gameID, nil)
	return request
}

func newActionRequest(t *testing.T, gameID string, msg protocol.InboundMessage) *http.Request {
	request, _ := http.NewRequest(http.MethodPost, "/game/"+gameID+"/action", bytes.NewBuffer(mustMakeJson(t, msg)))
	return request
}

// ASSERTIONS

func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("got status %d, want %d", got, want)
	}
}

func decodeOutbound(t *testing.T, body *bytes.Buffer) protocol.OutboundMessage {
	t.Helper()
	bodyBytes, err := ioutil.ReadAll(body)
	utils.AssertNoError(t, err)

	var got protocol.OutboundMessage
	if err := json.Unmarshal(bodyBytes, &got); err != nil {
		t.Fatalf("could not unmarshal json: %s: %s", err.Error(), bodyBytes)
	}
	return got
}

func mustDialWS(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	ws, resp, err := websocket.DefaultDialer.Dial(url, nil)

	if err != nil {
		var body []byte
		code := 0
		if resp != nil {
			body, _ = ioutil.ReadAll(resp.Body)
			code = resp.StatusCode
		}
		t.Fatalf("could not open a ws connection on %s, code %d: %s, %v", url, code, body, err)
	}
	if ws == nil {
		t.Fatal("unexpected nil websocket conn")
	}

	return ws
}

func makeWSUrl(serverURL, gameID string) string {
	return "ws" + strings.TrimPrefix(serverURL, "http") + "/ws?game_id=" + gameID
}

func startTestServer(s *GameServer) *httptest.Server {
	return httptest.NewServer(s)
}

func decodeJSON(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func websocketDial(url string) (*websocket.Conn, *http.Response, error) {
	return websocket.DefaultDialer.Dial(url, nil)
}
