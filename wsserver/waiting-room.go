package wsserver

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/mo-shahab/go-pong-ai/ai"
	"github.com/mo-shahab/go-pong-ai/message"
	"github.com/mo-shahab/go-pong-ai/room"
)

func (wsh *WebSocketHandler) startWaitingRoom(r *room.Room) {
	ctx, cancel := context.WithTimeout(context.Background(), wsh.options.WaitingRoomDuration)
	waitingRoom := room.NewWaitingRoomState(r, int(wsh.options.WaitingRoomDuration.Seconds()), ctx, cancel)

	wsh.Mu.Lock()
	wsh.WaitingRooms[r.ID] = waitingRoom
	wsh.Mu.Unlock()

	go wsh.runWaitingRoom(waitingRoom)
	log.Printf("Started waiting room for room %s, time left %v", r.ID, wsh.options.WaitingRoomDuration)
}

// runWaitingRoom starts the game once the room is full or the wait is over.
// Seats nobody took by then are given to bots.
func (wsh *WebSocketHandler) runWaitingRoom(waitingRoom *room.WaitingRoomState) {
	ticker := time.NewTicker(waitingRoomTick) // For UI updates
	defer ticker.Stop()

	for {
		select {
		case <-waitingRoom.Ctx.Done():
			waitingRoom.Mu.Lock()
			active := waitingRoom.IsActive
			waitingRoom.IsActive = false
			waitingRoom.Mu.Unlock()

			if active && errors.Is(waitingRoom.Ctx.Err(), context.DeadlineExceeded) {
				log.Printf("Waiting room %s timed out", waitingRoom.Room.ID)
				wsh.startGame(waitingRoom.Room)
			}
			return

		case <-ticker.C:
			waitingRoom.Mu.Lock()
			if !waitingRoom.IsActive {
				waitingRoom.Mu.Unlock()
				return
			}

			waitingRoom.CurrentPlayers = waitingRoom.Room.Len()
			if deadline, ok := waitingRoom.Ctx.Deadline(); ok {
				waitingRoom.TimeLeft = int(time.Until(deadline).Seconds())
			}

			if waitingRoom.CurrentPlayers >= waitingRoom.Room.MaxPlayers {
				log.Printf("Room %s has enough players, starting game immediately", waitingRoom.Room.ID)
				waitingRoom.IsActive = false
				waitingRoom.Mu.Unlock()
				wsh.startGame(waitingRoom.Room)
				return
			}

			encoded, err := message.Encode(message.WaitingRoom, map[string]any{
				"roomId":     waitingRoom.Room.ID,
				"maxPlayers": waitingRoom.Room.MaxPlayers,
				"players":    waitingRoom.CurrentPlayers,
				"timeLeft":   waitingRoom.TimeLeft,
			})
			waitingRoom.Mu.Unlock()

			if err != nil {
				log.Printf("Failed to marshal the waiting room message: %v", err)
				continue
			}
			waitingRoom.Room.Broadcast(encoded)
		}
	}
}

// startGame seats a bot on every empty side and starts the room's game loop.
func (wsh *WebSocketHandler) startGame(r *room.Room) {
	wsh.Mu.Lock()
	if waitingRoom, exists := wsh.WaitingRooms[r.ID]; exists {
		waitingRoom.Cancel()
		delete(wsh.WaitingRooms, r.ID)
	}
	wsh.Mu.Unlock()

	for _, team := range r.EmptySides() {
		// one controller per side, they must not share velocity history
		r.Engine.SetBot(team, ai.NewController(wsh.options.Tuning))
		log.Printf("Bot took the %s side in room %s", team, r.ID)
	}

	if !r.Start(context.Background()) {
		log.Printf("Room %s closed before its game started", r.ID)
		return
	}

	encoded, err := message.Encode(message.GameStart, map[string]any{"roomId": r.ID})
	if err != nil {
		log.Println("Error occured while marshaling: ", err)
		return
	}
	r.Broadcast(encoded)
}

func (wsh *WebSocketHandler) closeRoom(r *room.Room, reason string) {
	wsh.Mu.Lock()
	if waitingRoom, exists := wsh.WaitingRooms[r.ID]; exists {
		waitingRoom.Mu.Lock()
		waitingRoom.IsActive = false
		waitingRoom.Mu.Unlock()
		waitingRoom.Cancel()
		delete(wsh.WaitingRooms, r.ID)
	}
	wsh.Mu.Unlock()

	encoded, err := message.Encode(message.RoomClosed, map[string]any{
		"roomId": r.ID,
		"reason": reason,
	})
	if err != nil {
		log.Printf("Failed to marshal room closed message: %v", err)
		return
	}

	r.Broadcast(encoded)
	log.Printf("Room %s closed: %s", r.ID, reason)
}
