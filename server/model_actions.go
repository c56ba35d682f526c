package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/agrif/littlebots/model"
	"github.com/agrif/littlebots/protocol"
	"github.com/agrif/littlebots/robot"
	"github.com/agrif/littlebots/wsconn"
)

func NewRobotServer(policies PolicyFactory) *RobotServer {
	return &RobotServer{
		Upgrader: &websocket.Upgrader{},
		Policies: policies,
		sessions: make(map[string]*Session),
	}
}

// HandleHttpCall upgrades the request and plays a whole session on it. The
// handler returns when the session ends.
func (s *RobotServer) HandleHttpCall() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("HandleHttpCall - connection received from %s", r.RemoteAddr)

		ws, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already written the error response
			log.Warnf("HandleHttpCall websocket upgrade err %v", err)
			return
		}
		conn := wsconn.New(ws)
		defer conn.Close()

		id := s.open(r.RemoteAddr)
		entry := log.WithField("session", id)
		policy := s.counting(id, s.Policies(id))

		err = robot.NewRunner(protocol.New(conn, conn), policy).WithLogger(entry).Run()
		s.close(id, err)
	}
}

// HandleSessions lists known sessions as JSON, oldest first.
func (s *RobotServer) HandleSessions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(s.Sessions()); err != nil {
			log.Warnf("HandleSessions encode err %v", err)
		}
	}
}

// Sessions returns a copy of every session record, oldest first.
func (s *RobotServer) Sessions() []Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Session, 0, len(s.sessions))
	for _, ss := range s.sessions {
		out = append(out, *ss)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Started.Equal(out[j].Started) {
			return out[i].ID < out[j].ID
		}
		return out[i].Started.Before(out[j].Started)
	})
	return out
}

func (s *RobotServer) open(remote string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := fmt.Sprintf("s%d", s.nextID)
	s.sessions[id] = &Session{
		ID:      id,
		Remote:  remote,
		Started: time.Now(),
		state:   SS_PLAY,
		State:   SS_PLAY.Name(),
	}
	log.Infof("session %s opened", id)
	return id
}

// close records how the session ended. A peer hanging up between turns is a
// normal end; anything else is an error.
func (s *RobotServer) close(id string, err error) {
	state := SS_ERR
	if protocol.IsEndOfStream(err) {
		state = SS_OVER
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ss := s.sessions[id]
	ss.state = state
	ss.State = state.Name()
	ss.Ended = time.Now()
	if state == SS_ERR {
		ss.Err = err.Error()
		log.Warnf("session %s failed after %d turns: %v", id, ss.Turns, err)
		return
	}
	log.Infof("session %s over after %d turns", id, ss.Turns)
}

func (s *RobotServer) counting(id string, p robot.Policy) robot.Policy {
	return robot.PolicyFunc(func(info model.WorldInfo, state model.WorldState) model.Action {
		action := p.Act(info, state)
		s.mu.Lock()
		ss := s.sessions[id]
		ss.Turns++
		ss.LastTurn = state.Turn
		s.mu.Unlock()
		return action
	})
}
