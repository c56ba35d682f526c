package protocol

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

const terminator = '\n'

var errEmbeddedNewline = errors.New("document contains a newline")

// LineChannel frames one document per line. It knows nothing about the
// documents themselves.
type LineChannel struct {
	r *bufio.Reader
	w *bufio.Writer
}

func NewLineChannel(r io.Reader, w io.Writer) *LineChannel {
	return &LineChannel{
		r: bufio.NewReader(r),
		w: bufio.NewWriter(w),
	}
}

// ReadLine blocks until a full line is available and returns it without
// the terminator. The returned slice is owned by the caller.
//
// End of input with nothing pending gives a FrameError wrapping io.EOF; end
// of input in the middle of a line wraps io.ErrUnexpectedEOF.
func (c *LineChannel) ReadLine() ([]byte, error) {
	line, err := c.r.ReadBytes(terminator)
	if err != nil {
		if err == io.EOF && len(line) > 0 {
			err = io.ErrUnexpectedEOF
		}
		return nil, &FrameError{Op: "read", Err: err}
	}
	return line[:len(line)-1], nil
}

// WriteLine writes doc followed by a terminator and flushes, so the frame
// has reached the underlying writer when it returns.
func (c *LineChannel) WriteLine(doc []byte) error {
	if bytes.IndexByte(doc, terminator) >= 0 {
		return &FrameError{Op: "write", Err: errEmbeddedNewline}
	}
	if _, err := c.w.Write(doc); err != nil {
		return &FrameError{Op: "write", Err: err}
	}
	if err := c.w.WriteByte(terminator); err != nil {
		return &FrameError{Op: "write", Err: err}
	}
	if err := c.w.Flush(); err != nil {
		return &FrameError{Op: "write", Err: err}
	}
	return nil
}
