package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// FieldError reports which part of a document failed to decode. Path is
// dotted for object keys and bracketed for array indexes, e.g.
// "robots[2].location".
type FieldError struct {
	Path   string
	Reason string
	Err    error
}

func (e *FieldError) Error() string {
	var b strings.Builder
	b.WriteString("model: ")
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	b.WriteString(e.Reason)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *FieldError) Unwrap() error { return e.Err }

// nest prefixes the path of err with name.
func nest(name string, err error) error {
	fe, ok := err.(*FieldError)
	if !ok {
		return &FieldError{Path: name, Reason: "invalid value", Err: err}
	}
	switch {
	case fe.Path == "":
		return &FieldError{Path: name, Reason: fe.Reason, Err: fe.Err}
	case strings.HasPrefix(fe.Path, "["):
		return &FieldError{Path: name + fe.Path, Reason: fe.Reason, Err: fe.Err}
	default:
		return &FieldError{Path: name + "." + fe.Path, Reason: fe.Reason, Err: fe.Err}
	}
}

// strict decodes exactly one JSON value from b into v.
func strict(b []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("trailing data after value")
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

type objectField struct {
	name string
	dst  interface{}
}

// decodeObject requires b to be a JSON object holding exactly the given keys,
// matched case-sensitively, none of them null.
func decodeObject(b []byte, fields ...objectField) error {
	var raw map[string]json.RawMessage
	if err := strict(b, &raw); err != nil {
		return &FieldError{Reason: "not an object", Err: err}
	}
	if raw == nil {
		return &FieldError{Reason: "null object"}
	}
	for _, f := range fields {
		v, ok := raw[f.name]
		if !ok {
			return &FieldError{Path: f.name, Reason: "missing field"}
		}
		delete(raw, f.name)
		if isNull(v) {
			return &FieldError{Path: f.name, Reason: "null value"}
		}
		if err := strict(v, f.dst); err != nil {
			return nest(f.name, err)
		}
	}
	if len(raw) > 0 {
		extra := make([]string, 0, len(raw))
		for k := range raw {
			extra = append(extra, k)
		}
		sort.Strings(extra)
		return &FieldError{Path: extra[0], Reason: "unexpected field"}
	}
	return nil
}

func (w *WorldInfo) UnmarshalJSON(b []byte) error {
	var out WorldInfo
	if err := decodeObject(b,
		objectField{"width", &out.Width},
		objectField{"height", &out.Height},
	); err != nil {
		return err
	}
	*w = out
	return nil
}

func (l *Location) UnmarshalJSON(b []byte) error {
	var parts []json.RawMessage
	if err := strict(b, &parts); err != nil {
		return &FieldError{Reason: "location is not an array", Err: err}
	}
	if len(parts) != 2 {
		return &FieldError{Reason: fmt.Sprintf("location has %d elements, want 2", len(parts))}
	}
	var out Location
	for i, p := range parts {
		if isNull(p) {
			return &FieldError{Path: fmt.Sprintf("[%d]", i), Reason: "null value"}
		}
		if err := strict(p, &out[i]); err != nil {
			return &FieldError{Path: fmt.Sprintf("[%d]", i), Reason: "not a uint32", Err: err}
		}
	}
	*l = out
	return nil
}

func (r *RobotInfo) UnmarshalJSON(b []byte) error {
	var out RobotInfo
	if err := decodeObject(b,
		objectField{"location", &out.Location},
		objectField{"hp", &out.HP},
		objectField{"player_id", &out.PlayerID},
		objectField{"robot_id", &out.RobotID},
	); err != nil {
		return err
	}
	*r = out
	return nil
}

func (s *WorldState) UnmarshalJSON(b []byte) error {
	var (
		out    WorldState
		robots []json.RawMessage
	)
	if err := decodeObject(b,
		objectField{"turn", &out.Turn},
		objectField{"robots", &robots},
		objectField{"local", &out.Local},
	); err != nil {
		return err
	}
	out.Robots = make([]RobotInfo, len(robots))
	for i, raw := range robots {
		if err := out.Robots[i].UnmarshalJSON(raw); err != nil {
			return nest(fmt.Sprintf("robots[%d]", i), err)
		}
	}
	*s = out
	return nil
}

type wireWorldState WorldState

// MarshalJSON keeps an empty roster as [] instead of null.
func (s WorldState) MarshalJSON() ([]byte, error) {
	w := wireWorldState(s)
	if w.Robots == nil {
		w.Robots = []RobotInfo{}
	}
	return json.Marshal(w)
}
