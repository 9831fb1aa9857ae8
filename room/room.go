package room

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/mo-shahab/go-pong-ai/client"
	"github.com/mo-shahab/go-pong-ai/game"
)

var (
	ErrRoomNotFound = errors.New("room id is invalid")
	ErrRoomFull     = errors.New("room is full")
)

// DefaultMaxPlayers is used when a create request does not ask for a size
const DefaultMaxPlayers = 2

// typedef to define the Room
type Room struct {
	ID         string
	Host       string
	Clients    map[string]*client.Client
	MaxPlayers int
	Engine     *game.Engine
	Mu         sync.Mutex
	closed     bool
}

// ListenerFactory builds the game listener for a new room, usually
// something that broadcasts to the room's clients.
type ListenerFactory func(r *Room) game.Listener

// state of all the rooms
type Manager struct {
	Rooms       map[string]*Room
	Mu          sync.Mutex
	config      game.Config
	newListener ListenerFactory
}

// waiting room status
type WaitingRoomState struct {
	Room           *Room
	CurrentPlayers int
	TimeLeft       int
	IsActive       bool
	Ctx            context.Context
	Cancel         context.CancelFunc
	Mu             sync.Mutex
}

func NewManager(cfg game.Config, newListener ListenerFactory) *Manager {
	return &Manager{
		Rooms:       make(map[string]*Room),
		config:      cfg,
		newListener: newListener,
	}
}

func NewWaitingRoomState(room *Room, timeLeft int, ctx context.Context, cancel context.CancelFunc) *WaitingRoomState {
	return &WaitingRoomState{
		Room:           room,
		CurrentPlayers: room.Len(),
		TimeLeft:       timeLeft,
		IsActive:       true,
		Ctx:            ctx,
		Cancel:         cancel,
	}
}

// helpers
func generateRoomId() string {
	return uuid.New().String()[:6]
}

// CreateRoom opens a room with host as its first member and returns it.
func (rm *Manager) CreateRoom(host *client.Client, maxPlayers int) *Room {
	if maxPlayers <= 0 {
		maxPlayers = DefaultMaxPlayers
	}

	rm.Mu.Lock()
	defer rm.Mu.Unlock()

	roomId := generateRoomId()
	for _, taken := rm.Rooms[roomId]; taken; _, taken = rm.Rooms[roomId] {
		roomId = generateRoomId()
	}

	room := &Room{
		ID:         roomId,
		Host:       host.ID,
		Clients:    map[string]*client.Client{},
		MaxPlayers: maxPlayers,
	}

	var listener game.Listener
	if rm.newListener != nil {
		listener = rm.newListener(room)
	}
	room.Engine = game.NewEngine(rm.config, listener)

	room.add(host)
	rm.Rooms[roomId] = room
	log.Printf("Created Room with room id: %s, with host: %s", roomId, host.ID)

	return room
}

func (rm *Manager) JoinRoom(roomId string, c *client.Client) (*Room, error) {
	rm.Mu.Lock()
	defer rm.Mu.Unlock()

	room, exists := rm.Rooms[roomId]
	if !exists {
		return nil, ErrRoomNotFound
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()

	// a side a bot already plays is not offered to newcomers
	if len(room.Clients) >= room.MaxPlayers || room.Engine.HasBot(room.seatLocked()) {
		return nil, ErrRoomFull
	}

	room.addLocked(c)
	log.Printf("Client %s joined the Room with room id: %s", c.ID, roomId)

	return room, nil
}

// RemoveClient takes a client out of its room. When the host leaves or the
// room empties, the room is closed: its game stops and it is forgotten. The
// closed room is returned so the caller can notify whoever is left.
func (rm *Manager) RemoveClient(roomId string, clientId string) (*Room, bool) {
	rm.Mu.Lock()
	defer rm.Mu.Unlock()

	room, exists := rm.Rooms[roomId]
	if !exists {
		return nil, false
	}

	room.Mu.Lock()
	c, member := room.Clients[clientId]
	if member {
		delete(room.Clients, clientId)
		room.Engine.RemovePlayer(game.Team(c.Team))
	}
	closing := len(room.Clients) == 0 || clientId == room.Host
	if closing {
		room.closed = true
	}
	room.Mu.Unlock()

	if !closing {
		return room, false
	}

	room.Engine.Stop()
	delete(rm.Rooms, roomId)
	log.Printf("Room with %s has been closed", roomId)

	return room, true
}

func (rm *Manager) GetRoom(roomId string) (*Room, bool) {
	rm.Mu.Lock()
	defer rm.Mu.Unlock()

	room, exists := rm.Rooms[roomId]

	return room, exists
}

// Start runs the room's game loop unless the room has been closed, and
// reports whether it did.
func (r *Room) Start(ctx context.Context) bool {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if r.closed {
		return false
	}
	r.Engine.Start(ctx)
	return true
}

// Closed reports whether the room was closed by RemoveClient
func (r *Room) Closed() bool {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	return r.closed
}

// Len returns the number of clients in the room
func (r *Room) Len() int {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	return len(r.Clients)
}

// Broadcast queues a frame for every client in the room
func (r *Room) Broadcast(message []byte) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	for _, c := range r.Clients {
		c.Send(message)
	}
}

func (r *Room) add(c *client.Client) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	r.addLocked(c)
}

// addLocked seats the client on the side with fewer players, left first.
func (r *Room) addLocked(c *client.Client) {
	team := r.seatLocked()

	c.Team = string(team)
	c.RoomID = r.ID
	r.Clients[c.ID] = c
	r.Engine.AddPlayer(team)
}

func (r *Room) seatLocked() game.Team {
	left, right := r.Engine.Players()
	if right < left {
		return game.Right
	}
	return game.Left
}

// EmptySides lists the teams that have no player yet
func (r *Room) EmptySides() []game.Team {
	left, right := r.Engine.Players()

	var empty []game.Team
	if left == 0 {
		empty = append(empty, game.Left)
	}
	if right == 0 {
		empty = append(empty, game.Right)
	}
	return empty
}
