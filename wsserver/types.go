package wsserver

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mo-shahab/go-pong-ai/ai"
	"github.com/mo-shahab/go-pong-ai/client"
	"github.com/mo-shahab/go-pong-ai/game"
	"github.com/mo-shahab/go-pong-ai/room"
)

// waiting room constants
const (
	DefaultWaitingRoomDuration = 90 * time.Second
	waitingRoomTick            = time.Second
)

// Options configures a WebSocketHandler
type Options struct {
	Game                game.Config
	WaitingRoomDuration time.Duration
	// Tuning is used for the bots that take empty seats
	Tuning ai.Tuning
}

type WebSocketHandler struct {
	Upgrader     websocket.Upgrader
	Mu           sync.Mutex
	Connections  map[string]*client.Client
	RoomManager  *room.Manager
	WaitingRooms map[string]*room.WaitingRoomState
	options      Options
}
