package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	worldLine = `{"width":9,"height":9}`
	stateLine = `{"turn":1,"robots":[],"local":{"location":[4,4],"hp":50,"player_id":1,"robot_id":7}}`
)

func TestRunStdio(t *testing.T) {
	in := strings.NewReader(worldLine + "\n" + stateLine + "\n" + stateLine + "\n")
	var out bytes.Buffer
	code := run([]string{"-policy", "center"}, env(nil), in, &out)
	assert.Equal(t, 0, code)
	assert.Equal(t, "[\"guard\"]\n[\"guard\"]\n", out.String())
}

func TestRunMalformedState(t *testing.T) {
	in := strings.NewReader(worldLine + "\n" + `{"robots":[]}` + "\n")
	var out bytes.Buffer
	assert.Equal(t, 1, run(nil, env(nil), in, &out))
	assert.Zero(t, out.Len())
}

func TestRunBadConfig(t *testing.T) {
	assert.Equal(t, 2, run([]string{"-policy", "nope"}, env(nil), strings.NewReader(""), &bytes.Buffer{}))
}

func TestRunClosesWebsocketOnFailure(t *testing.T) {
	closed := make(chan error, 1)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			closed <- err
			return
		}
		defer ws.Close()
		ws.WriteMessage(websocket.TextMessage, []byte(worldLine))
		ws.WriteMessage(websocket.TextMessage, []byte(`{"turn":"one"}`))
		_, _, err = ws.ReadMessage()
		closed <- err
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/play"
	code := run([]string{"-connect", url}, env(nil), strings.NewReader(""), &bytes.Buffer{})
	assert.Equal(t, 1, code)

	err := <-closed
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}

func TestRunJournalsToRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	in := strings.NewReader(worldLine + "\n" + stateLine + "\n" + stateLine + "\n")
	code := run([]string{"-redis", mr.Addr(), "-session", "game1"}, env(nil), in, &bytes.Buffer{})
	require.Equal(t, 0, code)

	turns, err := mr.List("littlebots:session:game1:turns")
	require.NoError(t, err)
	assert.Len(t, turns, 2)
	assert.Equal(t, journalTTL, mr.TTL("littlebots:session:game1:turns"))
}
