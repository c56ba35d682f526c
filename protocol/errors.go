package protocol

import (
	"errors"
	"fmt"
	"io"
)

var (
	ErrFrame  = errors.New("frame error")
	ErrDecode = errors.New("decode error")
	ErrEncode = errors.New("encode error")
)

// FrameError means the line framing broke: the input ended before a
// terminator, or the output rejected a write. The session cannot continue.
type FrameError struct {
	Op  string // "read" or "write"
	Err error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("protocol: %s frame: %v", e.Op, e.Err)
}

func (e *FrameError) Unwrap() error { return e.Err }

func (e *FrameError) Is(target error) bool { return target == ErrFrame }

// DecodeError means a received line is not a valid document of the
// expected type.
type DecodeError struct {
	Type string
	Line []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("protocol: decode %s from %q: %v", e.Type, e.Line, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// EncodeError means a value handed to Send could not be encoded. For the
// game types this only happens for a malformed Action.
type EncodeError struct {
	Type string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("protocol: encode %s: %v", e.Type, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

func (e *EncodeError) Is(target error) bool { return target == ErrEncode }

// IsEndOfStream reports whether err is a read FrameError caused by the input
// ending cleanly between two lines, which is how a peer ends a session.
func IsEndOfStream(err error) bool {
	var fe *FrameError
	return errors.As(err, &fe) && fe.Op == "read" && fe.Err == io.EOF
}
