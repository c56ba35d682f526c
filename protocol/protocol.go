// Package protocol exchanges typed values with the referee as one JSON
// document per line.
package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	errEmptyLine = errors.New("empty line")
	errTrailing  = errors.New("trailing data after document")
)

// Protocol is a typed send/receive pair over a LineChannel. It is not safe
// for concurrent use; a session is strictly one receive then one send.
type Protocol struct {
	ch *LineChannel
}

func New(r io.Reader, w io.Writer) *Protocol {
	return &Protocol{ch: NewLineChannel(r, w)}
}

// Send encodes v as a single-line JSON document and writes it.
func (p *Protocol) Send(v interface{}) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return &EncodeError{Type: typeName(v), Err: err}
	}
	return p.ch.WriteLine(doc)
}

// Receive reads the next line and decodes it as a T. Unknown object keys
// and anything after the document are rejected.
func Receive[T any](p *Protocol) (T, error) {
	var v T
	line, err := p.ch.ReadLine()
	if err != nil {
		return v, err
	}
	if len(bytes.TrimSpace(line)) == 0 {
		return v, &DecodeError{Type: typeName(v), Line: line, Err: errEmptyLine}
	}
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, &DecodeError{Type: typeName(v), Line: line, Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return v, &DecodeError{Type: typeName(v), Line: line, Err: errTrailing}
	}
	return v, nil
}

func typeName(v interface{}) string {
	return fmt.Sprintf("%T", v)
}
