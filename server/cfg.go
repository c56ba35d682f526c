package server

import (
	"fmt"

	"github.com/matryer/way"
)

const (
	URI_WS       = "/play"
	URI_SESSIONS = "/sessions"
)

func (ss SessionState) Name() string {
	switch ss {
	case SS_NEW:
		return "SS_NEW"
	case SS_PLAY:
		return "SS_PLAY"
	case SS_OVER:
		return "SS_OVER"
	case SS_ERR:
		return "SS_ERR"
	default:
		return fmt.Sprintf("n/a:%d", ss)
	}
}

// Routes registers the websocket endpoint and the session listing.
func (s *RobotServer) Routes() *way.Router {
	router := way.NewRouter()
	router.HandleFunc("GET", URI_WS, s.HandleHttpCall())
	router.HandleFunc("GET", URI_SESSIONS, s.HandleSessions())
	return router
}
