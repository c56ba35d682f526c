package policy

import (
	log "github.com/sirupsen/logrus"

	"github.com/agrif/littlebots/model"
	"github.com/agrif/littlebots/robot"
)

// Sanitize applies the referee's step rules before an action leaves the
// process: move and attack must target a cell adjacent to the local robot,
// anything else becomes a guard. The referee would make the same
// substitution on its side.
func Sanitize(p robot.Policy) robot.Policy {
	return robot.PolicyFunc(func(info model.WorldInfo, state model.WorldState) model.Action {
		action := p.Act(info, state)
		if valid(action, state.Local.Location) {
			return action
		}
		log.WithFields(log.Fields{
			"turn":     state.Turn,
			"robot":    state.Local.RobotID,
			"location": state.Local.Location,
			"action":   action.String(),
		}).Warn("Sanitize replaced invalid action with guard")
		return model.Guard()
	})
}

func valid(action model.Action, from model.Location) bool {
	switch action.Kind {
	case model.ActionMove, model.ActionAttack:
		return Adjacent(from, action.Target())
	case model.ActionGuard, model.ActionSuicide:
		return true
	default:
		return false
	}
}
