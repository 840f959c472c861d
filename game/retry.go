package game

import (
	"context"
	"time"
)

// hasRetryMajority is a strict majority: more than half, not at-least-half.
// With 4 players, 2 votes are not enough and 3 are.
func (r *Room) hasRetryMajority() bool {
	return len(r.RetryVotes)*2 > len(r.Players)
}

func (r *Room) applyRetryMajority() {
	if r.hasRetryMajority() {
		r.reset()
	}
}

// VoteRetry adds an idempotent rematch vote while the room is finished and
// resets the room once a strict majority of the current players agrees.
func (s *Service) VoteRetry(ctx context.Context, roomID, playerID string) (*RoomView, error) {
	return s.mutateRoom(ctx, roomID, func(room *Room, now time.Time) error {
		if room.Status != StatusFinished {
			return gameErr(CodeGameNotFinished)
		}
		if room.playerIndex(playerID) == -1 {
			return gameErr(CodePlayerNotFound)
		}

		room.RetryVotes[playerID] = true
		room.applyRetryMajority()
		return nil
	})
}
