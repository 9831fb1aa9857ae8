// Package message encodes the frames exchanged over the websocket. Every
// frame is a protobuf google.protobuf.Struct with a "type" field.
package message

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

type Type string

const (
	RoomCreateRequest  Type = "room_create_request"
	RoomCreateResponse Type = "room_create_response"
	RoomJoinRequest    Type = "room_join_request"
	RoomJoinResponse   Type = "room_join_response"
	Movement           Type = "movement"
	GameState          Type = "game_state"
	Score              Type = "score"
	WaitingRoom        Type = "waiting_room"
	GameStart          Type = "game_start"
	RoomClosed         Type = "room_closed"
	Error              Type = "error"
)

const typeField = "type"

var ErrMissingType = errors.New("message has no type")

// Message is a decoded frame
type Message struct {
	Type   Type
	Fields *structpb.Struct
}

// Encode marshals a frame. Field values must be accepted by structpb.NewValue.
func Encode(t Type, fields map[string]any) ([]byte, error) {
	m := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		m[k] = v
	}
	m[typeField] = string(t)

	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s message: %w", t, err)
	}

	b, err := proto.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s message: %w", t, err)
	}
	return b, nil
}

// Decode unmarshals a frame produced by Encode
func Decode(b []byte) (*Message, error) {
	s := &structpb.Struct{}
	if err := proto.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("invalid protobuf format: %w", err)
	}

	t := s.GetFields()[typeField].GetStringValue()
	if t == "" {
		return nil, ErrMissingType
	}

	return &Message{Type: Type(t), Fields: s}, nil
}

// String returns a string field, empty if missing
func (m *Message) String(key string) string {
	return m.Fields.GetFields()[key].GetStringValue()
}

// Number returns a numeric field, zero if missing
func (m *Message) Number(key string) float64 {
	return m.Fields.GetFields()[key].GetNumberValue()
}

// Bool returns a bool field, false if missing
func (m *Message) Bool(key string) bool {
	return m.Fields.GetFields()[key].GetBoolValue()
}
