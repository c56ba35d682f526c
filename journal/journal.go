// Package journal records the decisions a robot made, turn by turn.
package journal

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/agrif/littlebots/model"
	"github.com/agrif/littlebots/robot"
)

const recordTimeout = 2 * time.Second

// Entry is one answered turn.
type Entry struct {
	Session string           `json:"session"`
	Turn    uint32           `json:"turn"`
	State   model.WorldState `json:"state"`
	Action  model.Action     `json:"action"`
	At      time.Time        `json:"at"`
}

type Recorder interface {
	Record(ctx context.Context, e Entry) error
	Close() error
}

// Wrap returns a policy that records every decision of p under session.
// Recording failures are logged and never change the decision.
func Wrap(p robot.Policy, rec Recorder, session string) robot.Policy {
	return wrapped{policy: p, rec: rec, session: session, now: time.Now}
}

type wrapped struct {
	policy  robot.Policy
	rec     Recorder
	session string
	now     func() time.Time
}

func (w wrapped) Act(info model.WorldInfo, state model.WorldState) model.Action {
	action := w.policy.Act(info, state)

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	err := w.rec.Record(ctx, Entry{
		Session: w.session,
		Turn:    state.Turn,
		State:   state,
		Action:  action,
		At:      w.now(),
	})
	if err != nil {
		log.WithField("session", w.session).Warnf("journal: record turn %d: %v", state.Turn, err)
	}
	return action
}
