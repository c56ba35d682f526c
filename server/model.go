package server

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/agrif/littlebots/robot"
)

// PolicyFactory builds the policy for one session. Sessions never share a
// policy value.
type PolicyFactory func(session string) robot.Policy

// RobotServer accepts referee connections and plays one independent
// session per connection.
type RobotServer struct {
	Upgrader *websocket.Upgrader
	Policies PolicyFactory

	mu       sync.Mutex
	nextID   int
	sessions map[string]*Session
}

type SessionState int

const (
	SS_NEW SessionState = iota
	SS_PLAY
	SS_OVER
	SS_ERR
)

type Session struct {
	ID       string    `json:"id"`
	State    string    `json:"state"`
	Remote   string    `json:"remote"`
	Turns    int       `json:"turns"`
	LastTurn uint32    `json:"last_turn"`
	Started  time.Time `json:"started"`
	Ended    time.Time `json:"ended"`
	Err      string    `json:"error,omitempty"`

	state SessionState
}
