package game

import (
	"context"
	"fmt"
	"time"

	"github.com/stretchr/testify/mock"
)

// --- Dictionary ---

type MockDictionary struct {
	mock.Mock
}

func (m *MockDictionary) Exists(ctx context.Context, word, language string) (bool, error) {
	args := m.Called(ctx, word, language)
	return args.Bool(0), args.Error(1)
}

// --- RoomRepository ---

// fakeRepo is a plain in-memory repository so scenario tests don't have to
// script every Get/Update pair with testify expectations.
type fakeRepo struct {
	rooms map[string]*Room
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rooms: map[string]*Room{}}
}

func (f *fakeRepo) Insert(ctx context.Context, room *Room) error {
	f.rooms[room.ID] = room.Clone()
	return nil
}

func (f *fakeRepo) Get(ctx context.Context, id string) (*Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room.Clone(), nil
}

func (f *fakeRepo) Update(ctx context.Context, room *Room) error {
	if _, ok := f.rooms[room.ID]; !ok {
		return ErrRoomNotFound
	}
	f.rooms[room.ID] = room.Clone()
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	delete(f.rooms, id)
	return nil
}

func (f *fakeRepo) List(ctx context.Context) ([]*Room, error) {
	rooms := make([]*Room, 0, len(f.rooms))
	for _, room := range f.rooms {
		rooms = append(rooms, room.Clone())
	}
	return rooms, nil
}

// --- Clock ---

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// --- Dice ---

// scriptedDice pops pre-seeded values; when the script runs out it returns 0
// for IntN and 1.0 for Float64 (never below the drop threshold).
type scriptedDice struct {
	ints   []int
	floats []float64
}

func (d *scriptedDice) IntN(n int) int {
	if len(d.ints) == 0 {
		return 0
	}
	v := d.ints[0]
	d.ints = d.ints[1:]
	return v % n
}

func (d *scriptedDice) Float64() float64 {
	if len(d.floats) == 0 {
		return 1.0
	}
	v := d.floats[0]
	d.floats = d.floats[1:]
	return v
}

// --- UniqueIdGenerator ---

type seqIdGen struct {
	next int
}

func (g *seqIdGen) Generate() string {
	g.next++
	return fmt.Sprintf("id-%d", g.next)
}
