package canvasws

import (
	"sync"

	"github.com/gorilla/websocket"
)

// conn wraps a websocket.Conn so that it can be written to and read from by
// different goroutines. Writes block each other, and so do reads.
type conn struct {
	c       *websocket.Conn
	writeMu sync.Mutex
	readMu  sync.Mutex
}

func newConn(c *websocket.Conn) *conn {
	return &conn{c: c}
}

func (c *conn) ReadMessage() (int, []byte, error) {
	c.readMu.Lock()
	defer c.readMu.Unlock()
	return c.c.ReadMessage()
}

func (c *conn) WriteJSON(v interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.c.WriteJSON(v)
}

func (c *conn) Close() error {
	return c.c.Close()
}
