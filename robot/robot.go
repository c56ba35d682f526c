// Package robot drives one game session: the WorldInfo handshake followed by
// one WorldState in and one Action out per turn, for as long as the streams
// last.
package robot

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/agrif/littlebots/model"
	"github.com/agrif/littlebots/protocol"
)

// Policy chooses the action for one turn. It is called synchronously from
// the loop and never sees the streams.
type Policy interface {
	Act(info model.WorldInfo, state model.WorldState) model.Action
}

type PolicyFunc func(info model.WorldInfo, state model.WorldState) model.Action

func (f PolicyFunc) Act(info model.WorldInfo, state model.WorldState) model.Action {
	return f(info, state)
}

type State int

const (
	AwaitingWorldInfo State = iota
	AwaitingWorldState
	EmittingAction
)

func (s State) Name() string {
	switch s {
	case AwaitingWorldInfo:
		return "AWAITING_WORLD_INFO"
	case AwaitingWorldState:
		return "AWAITING_WORLD_STATE"
	case EmittingAction:
		return "EMITTING_ACTION"
	default:
		return fmt.Sprintf("n/a:%d", s)
	}
}

type Runner struct {
	prot   *protocol.Protocol
	policy Policy
	entry  *log.Entry

	state State
	info  model.WorldInfo
	turns int
}

func NewRunner(prot *protocol.Protocol, policy Policy) *Runner {
	return &Runner{
		prot:   prot,
		policy: policy,
		entry:  log.NewEntry(log.StandardLogger()),
		state:  AwaitingWorldInfo,
	}
}

// WithLogger replaces the entry used for session logging, e.g. one carrying
// a session field.
func (r *Runner) WithLogger(entry *log.Entry) *Runner {
	r.entry = entry
	return r
}

func (r *Runner) State() State { return r.state }

// Turns is the number of actions sent so far.
func (r *Runner) Turns() int { return r.turns }

// Info is the handshake received at the start of the session.
func (r *Runner) Info() model.WorldInfo { return r.info }

// Run performs the handshake and then answers turns until a receive, send or
// encode fails. It never returns nil.
func (r *Runner) Run() error {
	info, err := protocol.Receive[model.WorldInfo](r.prot)
	if err != nil {
		r.entry.Warnf("Runner.Run handshake failed: %v", err)
		return err
	}
	r.info = info
	r.state = AwaitingWorldState
	r.entry.Infof("Runner.Run world %dx%d", info.Width, info.Height)

	for {
		ws, err := protocol.Receive[model.WorldState](r.prot)
		if err != nil {
			r.entry.Warnf("Runner.Run stopped in %s after %d turns: %v", r.state.Name(), r.turns, err)
			return err
		}

		r.state = EmittingAction
		action := r.policy.Act(r.info, ws)
		if err := r.prot.Send(action); err != nil {
			r.entry.Warnf("Runner.Run stopped in %s after %d turns: %v", r.state.Name(), r.turns, err)
			return err
		}
		r.turns++
		r.state = AwaitingWorldState
		r.entry.WithFields(log.Fields{
			"turn":   ws.Turn,
			"robot":  ws.Local.RobotID,
			"action": action.String(),
		}).Debug("turn answered")
	}
}
