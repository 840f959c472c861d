package game

import "time"

type RoomStatus string

const (
	StatusWaiting  RoomStatus = "waiting"
	StatusPlaying  RoomStatus = "playing"
	StatusFinished RoomStatus = "finished"
)

const (
	MaxPlayers    = 6
	StartingLives = 2
)

type Player struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Score        int       `json:"score"`
	IsHost       bool      `json:"isHost"`
	LastSeen     time.Time `json:"lastSeen"`
	IsEliminated bool      `json:"isEliminated"`
	Lives        int       `json:"lives"`
	BuffItems    int       `json:"buffItems"`
	DebuffItems  int       `json:"debuffItems"`
	JoinOrder    int       `json:"joinOrder"`
}

type HistoryEntry struct {
	Word       string    `json:"word"`
	PlayerID   string    `json:"playerId"`
	PlayerName string    `json:"playerName"`
	Timestamp  time.Time `json:"timestamp"`
}

type ItemType string

const (
	ItemBuff   ItemType = "buff"
	ItemDebuff ItemType = "debuff"
)

// ItemDrop is a transient notification of the last item granted by the drop
// roll. It is serialized into the response that produced it and never
// persisted.
type ItemDrop struct {
	PlayerID string   `json:"playerId"`
	ItemType ItemType `json:"itemType"`
}

type Room struct {
	ID                 string          `json:"id"`
	DictionaryLanguage string          `json:"dictionaryLanguage"`
	TimerEnabled       bool            `json:"timerEnabled"`
	TimerDuration      int             `json:"timerDuration"` // seconds
	TurnDeadline       *time.Time      `json:"turnDeadline"`
	Players            []Player        `json:"players"`
	CurrentPlayerIndex int             `json:"currentPlayerIndex"`
	GameHistory        []HistoryEntry  `json:"gameHistory"`
	UsedWords          map[string]bool `json:"usedWords"`
	Status             RoomStatus      `json:"status"`
	WinnerID           string          `json:"winnerId"`
	RetryVotes         map[string]bool `json:"retryVotes"`
	LastItemDrop       *ItemDrop       `json:"-"`
}

func NewRoom(id string, language string, timerEnabled bool, timerDuration int, host Player) *Room {
	return &Room{
		ID:                 id,
		DictionaryLanguage: language,
		TimerEnabled:       timerEnabled,
		TimerDuration:      timerDuration,
		Players:            []Player{host},
		GameHistory:        []HistoryEntry{},
		UsedWords:          map[string]bool{},
		Status:             StatusWaiting,
		RetryVotes:         map[string]bool{},
	}
}

func NewPlayer(id, name string, isHost bool, joinOrder int, now time.Time) Player {
	return Player{
		ID:        id,
		Name:      name,
		IsHost:    isHost,
		LastSeen:  now,
		Lives:     StartingLives,
		JoinOrder: joinOrder,
	}
}

// playerIndex returns the position of the player with the given id,
// or -1 if they are not in the room.
func (r *Room) playerIndex(playerID string) int {
	for i := range r.Players {
		if r.Players[i].ID == playerID {
			return i
		}
	}
	return -1
}

func (r *Room) activePlayers() []*Player {
	active := make([]*Player, 0, len(r.Players))
	for i := range r.Players {
		if !r.Players[i].IsEliminated {
			active = append(active, &r.Players[i])
		}
	}
	return active
}

// Clone deep-copies the room so callers can hand it across the repository
// boundary without sharing mutable state.
func (r *Room) Clone() *Room {
	c := *r
	c.Players = append([]Player(nil), r.Players...)
	c.GameHistory = append([]HistoryEntry(nil), r.GameHistory...)
	c.UsedWords = make(map[string]bool, len(r.UsedWords))
	for w := range r.UsedWords {
		c.UsedWords[w] = true
	}
	c.RetryVotes = make(map[string]bool, len(r.RetryVotes))
	for id := range r.RetryVotes {
		c.RetryVotes[id] = true
	}
	if r.TurnDeadline != nil {
		deadline := *r.TurnDeadline
		c.TurnDeadline = &deadline
	}
	if r.LastItemDrop != nil {
		drop := *r.LastItemDrop
		c.LastItemDrop = &drop
	}
	return &c
}

// reset returns the room to the waiting state for a rematch. Scores, lives
// and eliminations are wiped; held items deliberately survive.
func (r *Room) reset() {
	r.Status = StatusWaiting
	r.GameHistory = []HistoryEntry{}
	r.UsedWords = map[string]bool{}
	r.WinnerID = ""
	r.CurrentPlayerIndex = 0
	r.TurnDeadline = nil
	r.RetryVotes = map[string]bool{}
	for i := range r.Players {
		r.Players[i].Score = 0
		r.Players[i].IsEliminated = false
		r.Players[i].Lives = StartingLives
	}
}
