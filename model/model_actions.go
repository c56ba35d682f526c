package model

import (
	"encoding/json"
	"fmt"
)

type ActionKind int

const (
	ActionMove ActionKind = iota + 1
	ActionAttack
	ActionGuard
	ActionSuicide
)

type actionTag struct {
	name string
	// args is the number of coordinates carried after the tag, 0 or 2
	args int
}

var actionTags = map[ActionKind]actionTag{
	ActionMove:    {name: "move", args: 2},
	ActionAttack:  {name: "attack", args: 2},
	ActionGuard:   {name: "guard"},
	ActionSuicide: {name: "suicide"},
}

// Name returns the wire tag of the kind.
func (k ActionKind) Name() string {
	if t, ok := actionTags[k]; ok {
		return t.name
	}
	return fmt.Sprintf("n/a:%d", k)
}

func kindByName(name string) (ActionKind, bool) {
	for k, t := range actionTags {
		if t.name == name {
			return k, true
		}
	}
	return 0, false
}

// Action is the single order a robot gives per turn. X and Y are only
// meaningful for ActionMove and ActionAttack.
type Action struct {
	Kind ActionKind
	X, Y uint32
}

func Move(x, y uint32) Action   { return Action{Kind: ActionMove, X: x, Y: y} }
func Attack(x, y uint32) Action { return Action{Kind: ActionAttack, X: x, Y: y} }
func Guard() Action             { return Action{Kind: ActionGuard} }
func Suicide() Action           { return Action{Kind: ActionSuicide} }

// Target is the (X, Y) pair as a Location.
func (a Action) Target() Location {
	return Location{a.X, a.Y}
}

func (a Action) String() string {
	t, ok := actionTags[a.Kind]
	if !ok {
		return a.Kind.Name()
	}
	if t.args == 0 {
		return t.name
	}
	return fmt.Sprintf("%s(%d,%d)", t.name, a.X, a.Y)
}

// MarshalJSON encodes the action as ["tag"] or ["tag",[x,y]].
func (a Action) MarshalJSON() ([]byte, error) {
	t, ok := actionTags[a.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown action kind %d", a.Kind)
	}
	if t.args == 0 {
		return json.Marshal([1]string{t.name})
	}
	return json.Marshal([2]interface{}{t.name, a.Target()})
}

// UnmarshalJSON is the strict inverse of MarshalJSON. The referee never
// sends actions; this exists for tooling and tests.
func (a *Action) UnmarshalJSON(b []byte) error {
	var parts []json.RawMessage
	if err := strict(b, &parts); err != nil {
		return err
	}
	if parts == nil {
		return &FieldError{Reason: "null action"}
	}
	if len(parts) == 0 || len(parts) > 2 {
		return &FieldError{Reason: fmt.Sprintf("action has %d elements, want 1 or 2", len(parts))}
	}
	var name string
	if err := strict(parts[0], &name); err != nil {
		return &FieldError{Path: "[0]", Reason: "tag is not a string", Err: err}
	}
	kind, ok := kindByName(name)
	if !ok {
		return &FieldError{Path: "[0]", Reason: fmt.Sprintf("unknown action %q", name)}
	}
	t := actionTags[kind]
	if t.args == 0 {
		if len(parts) != 1 {
			return &FieldError{Reason: fmt.Sprintf("%s takes no arguments", name)}
		}
		*a = Action{Kind: kind}
		return nil
	}
	if len(parts) != 2 {
		return &FieldError{Reason: fmt.Sprintf("%s needs a coordinate pair", name)}
	}
	var target Location
	if err := target.UnmarshalJSON(parts[1]); err != nil {
		return nest("[1]", err)
	}
	*a = Action{Kind: kind, X: target[0], Y: target[1]}
	return nil
}
