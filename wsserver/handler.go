// wsserver/handler.go

package wsserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/mo-shahab/go-pong-ai/client"
	"github.com/mo-shahab/go-pong-ai/game"
	"github.com/mo-shahab/go-pong-ai/message"
	"github.com/mo-shahab/go-pong-ai/room"
)

var errNoRoom = errors.New("not in a room")

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(opts Options) *WebSocketHandler {
	if opts.WaitingRoomDuration <= 0 {
		opts.WaitingRoomDuration = DefaultWaitingRoomDuration
	}

	return &WebSocketHandler{
		Upgrader:     websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		Connections:  make(map[string]*client.Client),
		RoomManager:  room.NewManager(opts.Game, newRoomBroadcaster),
		WaitingRooms: make(map[string]*room.WaitingRoomState),
		options:      opts,
	}
}

// ServeHTTP handles WebSocket connections
func (wsh *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := wsh.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error %s when connecting to the socket", err)
		return
	}

	c := client.New(conn)

	// Message queue goroutine
	go func() {
		if err := c.WritePump(); err != nil {
			log.Printf("Binary message write error: %v", err)
			conn.Close()
		}
	}()

	wsh.Mu.Lock()
	wsh.Connections[c.ID] = c
	wsh.Mu.Unlock()

	log.Printf("Client %s connected from %s", c.ID, conn.RemoteAddr())

	// Handle incoming messages
	for {
		_, p, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("Error reading message: %v", err)
			}
			wsh.disconnectPlayer(c)
			return
		}

		msg, err := message.Decode(p)
		if err != nil {
			log.Printf("Error unmarshalling protobuf: %v", err)
			wsh.sendError(c, "Invalid protobuf format")
			continue
		}

		wsh.handleMessage(c, msg)
	}
}

// ConnectionCount returns the number of connected clients
func (wsh *WebSocketHandler) ConnectionCount() int {
	wsh.Mu.Lock()
	defer wsh.Mu.Unlock()

	return len(wsh.Connections)
}

// Shutdown stops every running game
func (wsh *WebSocketHandler) Shutdown() {
	wsh.RoomManager.Mu.Lock()
	rooms := make([]*room.Room, 0, len(wsh.RoomManager.Rooms))
	for _, r := range wsh.RoomManager.Rooms {
		rooms = append(rooms, r)
	}
	wsh.RoomManager.Mu.Unlock()

	for _, r := range rooms {
		wsh.closeRoom(r, "server shutting down")
		r.Engine.Stop()
	}
}

// handleMessage processes incoming messages
func (wsh *WebSocketHandler) handleMessage(c *client.Client, msg *message.Message) {
	switch msg.Type {
	case message.RoomCreateRequest:
		wsh.handleRoomCreateRequest(c, msg)

	case message.RoomJoinRequest:
		wsh.handleRoomJoinRequest(c, msg)

	case message.Movement:
		wsh.handleMovementMessage(c, msg)

	default:
		log.Printf("Unknown message type: %v", msg.Type)
		wsh.sendError(c, "Unknown message type "+string(msg.Type))
	}
}

// handleRoomCreateRequest handles room creation requests
func (wsh *WebSocketHandler) handleRoomCreateRequest(c *client.Client, msg *message.Message) {
	if c.RoomID != "" {
		wsh.sendError(c, "Already in room "+c.RoomID)
		return
	}

	maxPlayers := int(msg.Number("maxPlayers"))
	r := wsh.RoomManager.CreateRoom(c, maxPlayers)

	wsh.send(c, message.RoomCreateResponse, map[string]any{
		"roomId": r.ID,
		"team":   c.Team,
	})
	log.Printf("Room %s created by client %s", r.ID, c.ID)

	if msg.Bool("vsBot") || r.MaxPlayers == 1 {
		wsh.startGame(r)
		return
	}
	wsh.startWaitingRoom(r)
}

// handleRoomJoinRequest handles room join requests
func (wsh *WebSocketHandler) handleRoomJoinRequest(c *client.Client, msg *message.Message) {
	if c.RoomID != "" {
		wsh.sendError(c, "Already in room "+c.RoomID)
		return
	}

	roomId := msg.String("roomId")
	r, err := wsh.RoomManager.JoinRoom(roomId, c)
	if err != nil {
		wsh.sendError(c, err.Error())
		log.Printf("Client %s failed to join room %s: %s", c.ID, roomId, err)
		return
	}

	wsh.send(c, message.RoomJoinResponse, map[string]any{
		"roomId": r.ID,
		"team":   c.Team,
	})
	log.Printf("Client %s joined room %s", c.ID, r.ID)
}

// handleMovementMessage handles paddle movement
func (wsh *WebSocketHandler) handleMovementMessage(c *client.Client, msg *message.Message) {
	if c.RoomID == "" {
		wsh.sendError(c, errNoRoom.Error())
		return
	}

	r, exists := wsh.RoomManager.GetRoom(c.RoomID)
	if !exists {
		wsh.sendError(c, room.ErrRoomNotFound.Error())
		return
	}

	team := game.Team(c.Team)
	if r.Engine.HasBot(team) {
		return
	}
	r.Engine.MovePaddle(team, msg.String("direction"))
}

// disconnectPlayer handles player disconnection
func (wsh *WebSocketHandler) disconnectPlayer(c *client.Client) {
	wsh.Mu.Lock()
	if _, exists := wsh.Connections[c.ID]; !exists {
		wsh.Mu.Unlock()
		return
	}
	delete(wsh.Connections, c.ID)
	wsh.Mu.Unlock()

	if c.RoomID != "" {
		if r, closed := wsh.RoomManager.RemoveClient(c.RoomID, c.ID); closed {
			wsh.closeRoom(r, "host left")
		}
	}

	c.Close()
	c.Conn.Close()
	log.Printf("Client %s disconnected", c.ID)
}

func (wsh *WebSocketHandler) send(c *client.Client, t message.Type, fields map[string]any) {
	encoded, err := message.Encode(t, fields)
	if err != nil {
		log.Printf("Failed to marshal %s message: %v", t, err)
		return
	}

	c.Send(encoded)
}

// sendError sends an error message to a client
func (wsh *WebSocketHandler) sendError(c *client.Client, errorMsg string) {
	wsh.send(c, message.Error, map[string]any{"error": errorMsg})
}
