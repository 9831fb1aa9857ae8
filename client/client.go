package client

import (
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// SendQueueSize is how many outgoing frames a client may have pending
const SendQueueSize = 100

type Client struct {
	ID        string
	Conn      *websocket.Conn
	SendQueue chan []byte
	Team      string
	RoomID    string

	mu     sync.Mutex
	closed bool
}

func New(conn *websocket.Conn) *Client {
	return &Client{
		ID:        uuid.NewString(),
		Conn:      conn,
		SendQueue: make(chan []byte, SendQueueSize),
	}
}

// Send queues a frame without blocking. It reports false when the queue is
// full and the frame was dropped.
func (c *Client) Send(message []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.SendQueue <- message:
		return true
	default:
		log.Printf("Dropping message, send queue full for client %s", c.ID)
		return false
	}
}

// WritePump drains the send queue onto the connection until the queue is
// closed or a write fails.
func (c *Client) WritePump() error {
	for msg := range c.SendQueue {
		if err := c.Conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
			return err
		}
	}
	return nil
}

// Close stops the write pump. It is safe to call more than once.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.SendQueue)
}
