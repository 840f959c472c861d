package game

import (
	"context"
	"time"
)

// Drop odds per accepted word: 40% for any item, split evenly between buff
// and debuff (net 20% / 20% / 60% nothing).
const (
	itemDropChance = 0.4
	buffShare      = 0.5
)

const (
	buffScoreBonus     = 3
	debuffScorePenalty = 2
)

// rollItemDrop runs after an accepted word. The grant is recorded on
// LastItemDrop for the response that produced it and is not replayed on
// later reads.
func (s *Service) rollItemDrop(room *Room, playerIdx int) {
	if s.dice.Float64() >= itemDropChance {
		return
	}

	player := &room.Players[playerIdx]
	itemType := ItemDebuff
	if s.dice.Float64() < buffShare {
		itemType = ItemBuff
	}
	switch itemType {
	case ItemBuff:
		player.BuffItems++
	case ItemDebuff:
		player.DebuffItems++
	}
	room.LastItemDrop = &ItemDrop{PlayerID: player.ID, ItemType: itemType}
}

// UseBuff consumes one buff item for a +3 score boost. There is no
// turn-order restriction: holding the item is the only requirement.
func (s *Service) UseBuff(ctx context.Context, roomID, playerID string) (*RoomView, error) {
	return s.mutateRoom(ctx, roomID, func(room *Room, now time.Time) error {
		idx := room.playerIndex(playerID)
		if idx == -1 {
			return ErrUnknownPlayer
		}
		if room.Players[idx].BuffItems <= 0 {
			return ErrNoBuffItems
		}
		room.Players[idx].BuffItems--
		room.Players[idx].Score += buffScoreBonus
		return nil
	})
}

// UseDebuff consumes one debuff item and knocks 2 points off the target,
// floored at zero. Self-targeting is rejected.
func (s *Service) UseDebuff(ctx context.Context, roomID, playerID, targetPlayerID string) (*RoomView, error) {
	return s.mutateRoom(ctx, roomID, func(room *Room, now time.Time) error {
		idx := room.playerIndex(playerID)
		if idx == -1 {
			return ErrUnknownPlayer
		}
		if room.Players[idx].DebuffItems <= 0 {
			return ErrNoDebuffItems
		}
		if targetPlayerID == playerID {
			return ErrSelfTarget
		}
		targetIdx := room.playerIndex(targetPlayerID)
		if targetIdx == -1 {
			return ErrTargetNotFound
		}
		room.Players[idx].DebuffItems--
		room.Players[targetIdx].Score = max(0, room.Players[targetIdx].Score-debuffScorePenalty)
		return nil
	})
}
