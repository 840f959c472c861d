package game

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// SupportedLanguages are the dictionary languages rooms can be created with.
var SupportedLanguages = []string{"id", "en"}

const defaultTimerDuration = 30

// Service is the room registry. Every operation takes the room's lock,
// lazily resolves any pending turn timeout, applies the requested transition
// and persists the result. Rooms never talk to each other, so operations on
// different rooms run fully in parallel.
type Service struct {
	repo  RoomRepository
	dict  Dictionary
	ids   UniqueIdGenerator
	clock Clock
	dice  Dice
	locks *roomLocks
}

func NewService(repo RoomRepository, dict Dictionary, ids UniqueIdGenerator, clock Clock, dice Dice) *Service {
	return &Service{
		repo:  repo,
		dict:  dict,
		ids:   ids,
		clock: clock,
		dice:  dice,
		locks: newRoomLocks(),
	}
}

// mutateRoom is the shared skeleton of every room-touching operation. The
// room stays locked across fn, including any dictionary lookup fn performs,
// so a slow lookup cannot interleave with a timeout resolution for the same
// room. The room is persisted even when fn returns a domain error: timeout
// resolution may have advanced the game and that progress must not be lost.
func (s *Service) mutateRoom(ctx context.Context, roomID string, fn func(room *Room, now time.Time) error) (*RoomView, error) {
	unlock := s.locks.lock(roomID)
	defer unlock()

	room, err := s.repo.Get(ctx, roomID)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			return nil, gameErr(CodeRoomNotFound)
		}
		return nil, err
	}

	now := s.clock.Now()
	room.resolveTimeout(now)

	opErr := fn(room, now)

	view := NewRoomView(room, now)
	room.LastItemDrop = nil
	if err := s.repo.Update(ctx, room); err != nil {
		return nil, err
	}

	if opErr != nil {
		return nil, opErr
	}
	return view, nil
}

func (s *Service) CreateRoom(ctx context.Context, playerName, language string, timerEnabled bool, timerDuration int) (*RoomView, string, error) {
	if timerDuration <= 0 {
		timerDuration = defaultTimerDuration
	}

	now := s.clock.Now()
	hostID := s.ids.Generate()
	host := NewPlayer(hostID, playerName, true, 0, now)
	room := NewRoom(s.ids.Generate(), language, timerEnabled, timerDuration, host)

	if err := s.repo.Insert(ctx, room); err != nil {
		return nil, "", err
	}

	log.Info().Str("room", room.ID).Str("language", language).Msg("room created")
	return NewRoomView(room, now), hostID, nil
}

func (s *Service) JoinRoom(ctx context.Context, roomID, playerName string) (*RoomView, string, error) {
	var playerID string
	view, err := s.mutateRoom(ctx, roomID, func(room *Room, now time.Time) error {
		if len(room.Players) >= MaxPlayers {
			return gameErr(CodeRoomFull)
		}
		playerID = s.ids.Generate()
		room.Players = append(room.Players, NewPlayer(playerID, playerName, false, len(room.Players), now))
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return view, playerID, nil
}

const (
	ActionRoomClosed = "room_closed"
	ActionPlayerLeft = "player_left"
)

// LeaveRoom is idempotent: an unknown room or player is treated as already
// gone. A departing host closes the whole room; no host migration.
func (s *Service) LeaveRoom(ctx context.Context, roomID, playerID string) (string, error) {
	unlock := s.locks.lock(roomID)
	defer unlock()

	room, err := s.repo.Get(ctx, roomID)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			return "", nil
		}
		return "", err
	}

	now := s.clock.Now()
	room.resolveTimeout(now)

	idx := room.playerIndex(playerID)
	if idx == -1 {
		if err := s.repo.Update(ctx, room); err != nil {
			return "", err
		}
		return "", nil
	}

	if room.Players[idx].IsHost {
		if err := s.repo.Delete(ctx, roomID); err != nil {
			return "", err
		}
		log.Info().Str("room", roomID).Msg("host left, room closed")
		return ActionRoomClosed, nil
	}

	room.Players = append(room.Players[:idx], room.Players[idx+1:]...)
	delete(room.RetryVotes, playerID)

	// a departure can tip the remaining votes over the majority line
	if room.Status == StatusFinished {
		room.applyRetryMajority()
	}

	if room.Status == StatusPlaying {
		if idx < room.CurrentPlayerIndex {
			room.CurrentPlayerIndex--
		} else if idx == room.CurrentPlayerIndex {
			room.CurrentPlayerIndex = room.CurrentPlayerIndex % len(room.Players)
			room.setDeadline(now)
		}

		if len(room.Players) < 2 {
			// a game cannot continue solo
			room.Status = StatusWaiting
			room.GameHistory = []HistoryEntry{}
			room.UsedWords = map[string]bool{}
			room.CurrentPlayerIndex = 0
			room.TurnDeadline = nil
		}
	}

	if err := s.repo.Update(ctx, room); err != nil {
		return "", err
	}
	return ActionPlayerLeft, nil
}

func (s *Service) StartGame(ctx context.Context, roomID, playerID string) (*RoomView, error) {
	return s.mutateRoom(ctx, roomID, func(room *Room, now time.Time) error {
		idx := room.playerIndex(playerID)
		if idx == -1 || !room.Players[idx].IsHost {
			return gameErr(CodeNotHost)
		}
		if len(room.Players) < 2 {
			return gameErr(CodeNotEnoughPlayers)
		}
		if room.Status != StatusWaiting {
			return gameErr(CodeGameAlreadyStarted)
		}

		room.Status = StatusPlaying
		// random first mover so the host's guests don't always open
		room.CurrentPlayerIndex = s.dice.IntN(len(room.Players))
		room.setDeadline(now)

		log.Info().Str("room", room.ID).Int("players", len(room.Players)).Msg("game started")
		return nil
	})
}

// PlayWord validates and applies a turn. Each step short-circuits; the
// pending-timeout resolution in mutateRoom runs first so a stale deadline is
// honored before a late word is accepted.
func (s *Service) PlayWord(ctx context.Context, roomID, playerID, rawWord string) (*RoomView, error) {
	return s.mutateRoom(ctx, roomID, func(room *Room, now time.Time) error {
		if room.Status != StatusPlaying {
			return gameErr(CodeGameNotPlaying)
		}
		idx := room.playerIndex(playerID)
		if idx == -1 {
			return gameErr(CodePlayerNotFound)
		}
		if idx != room.CurrentPlayerIndex {
			return gameErr(CodeNotYourTurn)
		}
		if room.Players[idx].IsEliminated {
			return gameErr(CodePlayerEliminated)
		}

		word := NormalizeWord(rawWord)
		if word == "" {
			return gameErr(CodeEmptyWord)
		}

		if required, ok := room.requiredLetter(); ok {
			if !strings.HasPrefix(word, required) {
				return &GameError{Code: CodeWrongLetter, Required: required}
			}
		}

		exists, err := s.dict.Exists(ctx, word, room.DictionaryLanguage)
		if err != nil {
			return err
		}
		if !exists {
			return gameErr(CodeNotInDictionary)
		}
		if room.UsedWords[word] {
			return gameErr(CodeUsedWord)
		}

		room.GameHistory = append(room.GameHistory, HistoryEntry{
			Word:       word,
			PlayerID:   playerID,
			PlayerName: room.Players[idx].Name,
			Timestamp:  now,
		})
		room.UsedWords[word] = true
		room.Players[idx].Score++

		s.rollItemDrop(room, idx)

		room.CurrentPlayerIndex = room.nextPlayerIndex()
		room.setDeadline(now)
		return nil
	})
}

// Heartbeat is a no-op mutation besides lastSeen, but it still runs the lazy
// timeout check under the room lock, which is what keeps abandoned turns
// moving.
func (s *Service) Heartbeat(ctx context.Context, roomID, playerID string) (*RoomView, error) {
	return s.mutateRoom(ctx, roomID, func(room *Room, now time.Time) error {
		if idx := room.playerIndex(playerID); idx != -1 {
			room.Players[idx].LastSeen = now
		}
		return nil
	})
}

func (s *Service) GetRoom(ctx context.Context, roomID string) (*RoomView, error) {
	return s.mutateRoom(ctx, roomID, func(room *Room, now time.Time) error {
		return nil
	})
}

func (s *Service) ListRooms(ctx context.Context) ([]RoomSummary, error) {
	rooms, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		summaries = append(summaries, NewRoomSummary(r))
	}
	return summaries, nil
}
