package storage

import (
	"context"
	"sync"

	"github.com/aihara87/LastletterGame/game"
)

// MemoryRooms is the in-memory game.RoomRepository used in development and
// tests. Rooms are cloned on every read and write so callers never share
// mutable state with the store; the per-room serialization lives in the game
// service, not here.
type MemoryRooms struct {
	locker sync.RWMutex
	rooms  map[string]*game.Room
}

func NewMemoryRooms() *MemoryRooms {
	return &MemoryRooms{rooms: make(map[string]*game.Room)}
}

func (m *MemoryRooms) Insert(ctx context.Context, room *game.Room) error {
	m.locker.Lock()
	defer m.locker.Unlock()
	m.rooms[room.ID] = room.Clone()
	return nil
}

func (m *MemoryRooms) Get(ctx context.Context, id string) (*game.Room, error) {
	m.locker.RLock()
	defer m.locker.RUnlock()
	room, ok := m.rooms[id]
	if !ok {
		return nil, game.ErrRoomNotFound
	}
	return room.Clone(), nil
}

func (m *MemoryRooms) Update(ctx context.Context, room *game.Room) error {
	m.locker.Lock()
	defer m.locker.Unlock()
	if _, ok := m.rooms[room.ID]; !ok {
		return game.ErrRoomNotFound
	}
	m.rooms[room.ID] = room.Clone()
	return nil
}

func (m *MemoryRooms) Delete(ctx context.Context, id string) error {
	m.locker.Lock()
	defer m.locker.Unlock()
	delete(m.rooms, id)
	return nil
}

func (m *MemoryRooms) List(ctx context.Context) ([]*game.Room, error) {
	m.locker.RLock()
	defer m.locker.RUnlock()
	rooms := make([]*game.Room, 0, len(m.rooms))
	for _, room := range m.rooms {
		rooms = append(rooms, room.Clone())
	}
	return rooms, nil
}

// MemoryDictionary is a word set keyed by language, for tests and offline
// development.
type MemoryDictionary struct {
	locker sync.RWMutex
	words  map[string]map[string]bool
}

func NewMemoryDictionary() *MemoryDictionary {
	return &MemoryDictionary{words: make(map[string]map[string]bool)}
}

func (m *MemoryDictionary) Add(language string, words ...string) {
	m.locker.Lock()
	defer m.locker.Unlock()
	set, ok := m.words[language]
	if !ok {
		set = make(map[string]bool)
		m.words[language] = set
	}
	for _, w := range words {
		set[game.NormalizeWord(w)] = true
	}
}

func (m *MemoryDictionary) Exists(ctx context.Context, word, language string) (bool, error) {
	m.locker.RLock()
	defer m.locker.RUnlock()
	return m.words[language][word], nil
}

func (m *MemoryDictionary) WordsByLanguage(ctx context.Context, language string) ([]string, error) {
	m.locker.RLock()
	defer m.locker.RUnlock()
	words := make([]string, 0, len(m.words[language]))
	for w := range m.words[language] {
		words = append(words, w)
	}
	return words, nil
}
