package game

import (
	"context"
	"math/rand/v2"
	"time"
)

// RoomRepository owns durable room state. Get must return ErrRoomNotFound for
// unknown ids. Implementations only need read-modify-write per room; the
// service serializes access per room id on top.
type RoomRepository interface {
	Insert(ctx context.Context, room *Room) error
	Get(ctx context.Context, id string) (*Room, error)
	Update(ctx context.Context, room *Room) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Room, error)
}

// Dictionary answers whether an already-normalized word exists in a language.
type Dictionary interface {
	Exists(ctx context.Context, word, language string) (bool, error)
}

type UniqueIdGenerator interface {
	Generate() string
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Dice covers the two random decisions the engine makes: the starting player
// and the item drop roll.
type Dice interface {
	IntN(n int) int
	Float64() float64
}

type SystemDice struct{}

func (SystemDice) IntN(n int) int   { return rand.IntN(n) }
func (SystemDice) Float64() float64 { return rand.Float64() }
