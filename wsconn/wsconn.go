// Package wsconn presents a websocket connection as a pair of byte streams
// carrying one line per message, so the line protocol can run over it
// unchanged.
package wsconn

import (
	"bytes"
	"io"

	"github.com/gorilla/websocket"
)

// Conn is an io.ReadWriteCloser over a websocket. Each received message is
// read back as its payload plus a newline; each newline-terminated line
// written is sent as one text message. Like the websocket underneath, it
// supports one reader and one writer at a time.
type Conn struct {
	ws      *websocket.Conn
	pending []byte
	partial []byte
}

func New(ws *websocket.Conn) *Conn {
	return &Conn{ws: ws}
}

// Dial connects to a referee endpoint such as ws://host:8080/play.
func Dial(url string) (*Conn, error) {
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return New(ws), nil
}

func (c *Conn) Read(p []byte) (int, error) {
	for len(c.pending) == 0 {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return 0, io.EOF
			}
			return 0, err
		}
		data = bytes.TrimRight(data, "\r\n")
		c.pending = append(data, '\n')
	}
	n := copy(p, c.pending)
	c.pending = c.pending[n:]
	return n, nil
}

func (c *Conn) Write(p []byte) (int, error) {
	c.partial = append(c.partial, p...)
	for {
		i := bytes.IndexByte(c.partial, '\n')
		if i < 0 {
			break
		}
		if err := c.ws.WriteMessage(websocket.TextMessage, c.partial[:i]); err != nil {
			return 0, err
		}
		c.partial = c.partial[i+1:]
	}
	return len(p), nil
}

// Close sends a normal close frame and closes the connection.
func (c *Conn) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.ws.WriteMessage(websocket.CloseMessage, msg)
	return c.ws.Close()
}
