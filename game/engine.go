package game

import (
	"strings"
	"time"
)

// resolveTimeout applies at most one overdue-turn penalty as a pure function
// of (room, now). There is no background timer anywhere in the server: every
// operation that touches a room calls this first, so a stalled game advances
// whenever any client asks about it.
func (r *Room) resolveTimeout(now time.Time) {
	if r.Status != StatusPlaying || !r.TimerEnabled || r.TurnDeadline == nil {
		return
	}
	if !now.After(*r.TurnDeadline) {
		return
	}

	player := &r.Players[r.CurrentPlayerIndex]
	player.Lives = max(0, player.Lives-1)
	if player.Lives <= 0 {
		player.IsEliminated = true
	}

	active := r.activePlayers()
	if len(active) <= 1 {
		r.Status = StatusFinished
		r.TurnDeadline = nil
		if len(active) == 1 {
			r.WinnerID = active[0].ID
		}
		return
	}

	r.CurrentPlayerIndex = r.nextPlayerIndex()
	r.setDeadline(now)
}

// nextPlayerIndex scans forward from the current player, wrapping, and skips
// eliminated players. The probe count is bounded by the player count so the
// loop terminates even if everyone is eliminated.
func (r *Room) nextPlayerIndex() int {
	if len(r.Players) == 0 {
		return 0
	}
	next := (r.CurrentPlayerIndex + 1) % len(r.Players)
	for attempts := 0; r.Players[next].IsEliminated && attempts < len(r.Players); attempts++ {
		next = (next + 1) % len(r.Players)
	}
	return next
}

func (r *Room) setDeadline(now time.Time) {
	if !r.TimerEnabled {
		r.TurnDeadline = nil
		return
	}
	deadline := now.Add(time.Duration(r.TimerDuration) * time.Second)
	r.TurnDeadline = &deadline
}

// requiredLetter returns the letter the next word must start with, or false
// if nothing has been played yet.
func (r *Room) requiredLetter() (string, bool) {
	if len(r.GameHistory) == 0 {
		return "", false
	}
	last := r.GameHistory[len(r.GameHistory)-1].Word
	runes := []rune(last)
	if len(runes) == 0 {
		return "", false
	}
	return string(runes[len(runes)-1]), true
}

// NormalizeWord is the single normalization point shared by the play pipeline
// and the dictionary surface: the dictionary stores and matches exactly this
// form.
func NormalizeWord(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
