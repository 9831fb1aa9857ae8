package wsserver

import (
	"log"

	"github.com/mo-shahab/go-pong-ai/game"
	"github.com/mo-shahab/go-pong-ai/message"
	"github.com/mo-shahab/go-pong-ai/room"
)

// roomBroadcaster forwards a room's game updates to its clients
type roomBroadcaster struct {
	room *room.Room
}

func newRoomBroadcaster(r *room.Room) game.Listener {
	return &roomBroadcaster{room: r}
}

func (b *roomBroadcaster) OnState(s game.Snapshot) {
	encoded, err := message.Encode(message.GameState, map[string]any{
		"leftPaddle":  s.Left.Position,
		"rightPaddle": s.Right.Position,
		"ballX":       s.Ball.X,
		"ballY":       s.Ball.Y,
		"ballRadius":  s.Ball.Radius,
		"tick":        s.Tick,
	})
	if err != nil {
		log.Printf("Failed to encode game state message: %v", err)
		return
	}

	b.room.Broadcast(encoded)
}

func (b *roomBroadcaster) OnScore(leftScore, rightScore int32, whoScored game.Team) {
	encoded, err := message.Encode(message.Score, map[string]any{
		"leftScore":  leftScore,
		"rightScore": rightScore,
		"scored":     string(whoScored),
	})
	if err != nil {
		log.Printf("Failed to marshal score message: %v", err)
		return
	}

	b.room.Broadcast(encoded)
}
