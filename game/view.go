package game

import (
	"math"
	"sort"
	"time"
)

// RoomView is the client-facing snapshot. All timestamps are unix
// milliseconds; ServerTime lets clients reconcile their clocks against server
// authority instead of trusting local elapsed-time counters.
type RoomView struct {
	ID                 string         `json:"id"`
	DictionaryLanguage string         `json:"dictionaryLanguage"`
	TimerEnabled       bool           `json:"timerEnabled"`
	TimerDuration      int            `json:"timerDuration"`
	TurnDeadline       *int64         `json:"turnDeadline"`
	Players            []PlayerView   `json:"players"`
	CurrentPlayerIndex int            `json:"currentPlayerIndex"`
	GameHistory        []HistoryView  `json:"gameHistory"`
	UsedWords          []string       `json:"usedWords"`
	Status             RoomStatus     `json:"status"`
	WinnerID           *string        `json:"winnerId"`
	RetryVotes         []string       `json:"retryVotes"`
	TimeRemaining      *int           `json:"timeRemaining"`
	ServerTime         int64          `json:"serverTime"`
	LastItemDrop       *ItemDrop      `json:"lastItemDrop,omitempty"`
}

type PlayerView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Score        int    `json:"score"`
	IsHost       bool   `json:"isHost"`
	LastSeen     int64  `json:"lastSeen"`
	IsEliminated bool   `json:"isEliminated"`
	Lives        int    `json:"lives"`
	BuffItems    int    `json:"buffItems"`
	DebuffItems  int    `json:"debuffItems"`
	JoinOrder    int    `json:"joinOrder"`
}

type HistoryView struct {
	Word       string `json:"word"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Timestamp  int64  `json:"timestamp"`
}

// RoomSummary is the read-only projection returned by the rooms listing.
type RoomSummary struct {
	ID                 string     `json:"id"`
	Players            int        `json:"players"`
	DictionaryLanguage string     `json:"dictionaryLanguage"`
	TimerEnabled       bool       `json:"timerEnabled"`
	TimerDuration      int        `json:"timerDuration"`
	Status             RoomStatus `json:"status"`
}

func NewRoomView(r *Room, now time.Time) *RoomView {
	view := &RoomView{
		ID:                 r.ID,
		DictionaryLanguage: r.DictionaryLanguage,
		TimerEnabled:       r.TimerEnabled,
		TimerDuration:      r.TimerDuration,
		CurrentPlayerIndex: r.CurrentPlayerIndex,
		Players:            make([]PlayerView, 0, len(r.Players)),
		GameHistory:        make([]HistoryView, 0, len(r.GameHistory)),
		UsedWords:          make([]string, 0, len(r.UsedWords)),
		Status:             r.Status,
		RetryVotes:         make([]string, 0, len(r.RetryVotes)),
		ServerTime:         now.UnixMilli(),
		LastItemDrop:       r.LastItemDrop,
	}

	for _, p := range r.Players {
		view.Players = append(view.Players, PlayerView{
			ID:           p.ID,
			Name:         p.Name,
			Score:        p.Score,
			IsHost:       p.IsHost,
			LastSeen:     p.LastSeen.UnixMilli(),
			IsEliminated: p.IsEliminated,
			Lives:        p.Lives,
			BuffItems:    p.BuffItems,
			DebuffItems:  p.DebuffItems,
			JoinOrder:    p.JoinOrder,
		})
	}

	for _, h := range r.GameHistory {
		view.GameHistory = append(view.GameHistory, HistoryView{
			Word:       h.Word,
			PlayerID:   h.PlayerID,
			PlayerName: h.PlayerName,
			Timestamp:  h.Timestamp.UnixMilli(),
		})
		// every used word appears in the history exactly once, so the
		// history gives the used set a stable order
		view.UsedWords = append(view.UsedWords, h.Word)
	}

	for id := range r.RetryVotes {
		view.RetryVotes = append(view.RetryVotes, id)
	}
	sort.Strings(view.RetryVotes)

	if r.TurnDeadline != nil {
		deadlineMs := r.TurnDeadline.UnixMilli()
		view.TurnDeadline = &deadlineMs
		if r.TimerEnabled {
			remaining := int(math.Round(r.TurnDeadline.Sub(now).Seconds()))
			remaining = max(0, remaining)
			view.TimeRemaining = &remaining
		}
	}

	if r.WinnerID != "" {
		winner := r.WinnerID
		view.WinnerID = &winner
	}

	return view
}

func NewRoomSummary(r *Room) RoomSummary {
	return RoomSummary{
		ID:                 r.ID,
		Players:            len(r.Players),
		DictionaryLanguage: r.DictionaryLanguage,
		TimerEnabled:       r.TimerEnabled,
		TimerDuration:      r.TimerDuration,
		Status:             r.Status,
	}
}
