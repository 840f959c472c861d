package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePlayingRoom(playerCount int, timerEnabled bool) *Room {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	host := NewPlayer("p0", "player_0", true, 0, now)
	room := NewRoom("room-1", "en", timerEnabled, 30, host)
	for i := 1; i < playerCount; i++ {
		room.Players = append(room.Players, NewPlayer(
			"p"+string(rune('0'+i)), "player_"+string(rune('0'+i)), false, i, now,
		))
	}
	room.Status = StatusPlaying
	room.setDeadline(now)
	return room
}

func TestResolveTimeout_LosesLifeThenEliminates(t *testing.T) {
	t.Parallel()
	room := makePlayingRoom(3, true)
	deadline := *room.TurnDeadline

	// first overdue check: a life is lost but the player stays in
	room.resolveTimeout(deadline.Add(time.Second))
	assert.Equal(t, 1, room.Players[0].Lives)
	assert.False(t, room.Players[0].IsEliminated)
	assert.Equal(t, 1, room.CurrentPlayerIndex)
	assert.Equal(t, StatusPlaying, room.Status)

	// force the same player to be current again and time out again
	room.CurrentPlayerIndex = 0
	deadline = *room.TurnDeadline
	room.resolveTimeout(deadline.Add(time.Second))
	assert.Equal(t, 0, room.Players[0].Lives)
	assert.True(t, room.Players[0].IsEliminated)
	assert.Equal(t, StatusPlaying, room.Status, "two survivors keep playing")
}

func TestResolveTimeout_LastSurvivorWins(t *testing.T) {
	t.Parallel()
	room := makePlayingRoom(3, true)
	room.Players[1].IsEliminated = true
	room.Players[1].Lives = 0
	room.Players[0].Lives = 1

	room.resolveTimeout(room.TurnDeadline.Add(time.Second))

	assert.Equal(t, StatusFinished, room.Status)
	assert.Equal(t, "p2", room.WinnerID)
	assert.Nil(t, room.TurnDeadline, "finished rooms carry no deadline")
}

func TestResolveTimeout_ZeroSurvivors(t *testing.T) {
	t.Parallel()
	room := makePlayingRoom(2, true)
	room.Players[1].IsEliminated = true
	room.Players[1].Lives = 0
	room.Players[0].Lives = 1

	room.resolveTimeout(room.TurnDeadline.Add(time.Second))

	assert.Equal(t, StatusFinished, room.Status)
	assert.Empty(t, room.WinnerID)
}

func TestResolveTimeout_NoopCases(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	untimed := makePlayingRoom(2, false)
	untimed.resolveTimeout(now.Add(time.Hour))
	assert.Equal(t, StatusPlaying, untimed.Status)
	assert.Equal(t, StartingLives, untimed.Players[0].Lives)

	early := makePlayingRoom(2, true)
	early.resolveTimeout(early.TurnDeadline.Add(-time.Second))
	assert.Equal(t, StartingLives, early.Players[0].Lives)
}

func TestNextPlayerIndex_SkipsEliminated(t *testing.T) {
	t.Parallel()
	room := makePlayingRoom(4, false)
	room.Players[1].IsEliminated = true
	room.Players[2].IsEliminated = true

	assert.Equal(t, 3, room.nextPlayerIndex())

	room.CurrentPlayerIndex = 3
	assert.Equal(t, 0, room.nextPlayerIndex(), "wraps past eliminated players")
}

func TestNextPlayerIndex_AllEliminatedTerminates(t *testing.T) {
	t.Parallel()
	room := makePlayingRoom(3, false)
	for i := range room.Players {
		room.Players[i].IsEliminated = true
	}

	// unreachable in practice (the engine finishes the game first), but the
	// probe bound must still terminate
	idx := room.nextPlayerIndex()
	assert.GreaterOrEqual(t, idx, 0)
	assert.Less(t, idx, len(room.Players))
}

func TestRequiredLetter(t *testing.T) {
	t.Parallel()
	room := makePlayingRoom(2, false)

	_, ok := room.requiredLetter()
	assert.False(t, ok, "no requirement before the first word")

	room.GameHistory = append(room.GameHistory, HistoryEntry{Word: "apple"})
	letter, ok := room.requiredLetter()
	require.True(t, ok)
	assert.Equal(t, "e", letter)
}

func TestReset_KeepsItems(t *testing.T) {
	t.Parallel()
	room := makePlayingRoom(3, true)
	room.Status = StatusFinished
	room.WinnerID = "p1"
	room.GameHistory = []HistoryEntry{{Word: "apple"}}
	room.UsedWords = map[string]bool{"apple": true}
	room.RetryVotes = map[string]bool{"p0": true, "p1": true}
	room.Players[0].Score = 7
	room.Players[0].Lives = 0
	room.Players[0].IsEliminated = true
	room.Players[1].BuffItems = 2
	room.Players[2].DebuffItems = 1

	room.reset()

	assert.Equal(t, StatusWaiting, room.Status)
	assert.Empty(t, room.WinnerID)
	assert.Empty(t, room.GameHistory)
	assert.Empty(t, room.UsedWords)
	assert.Empty(t, room.RetryVotes)
	assert.Equal(t, 0, room.CurrentPlayerIndex)
	assert.Nil(t, room.TurnDeadline)
	for _, p := range room.Players {
		assert.Equal(t, 0, p.Score)
		assert.Equal(t, StartingLives, p.Lives)
		assert.False(t, p.IsEliminated)
	}
	assert.Equal(t, 2, room.Players[1].BuffItems, "items survive a rematch")
	assert.Equal(t, 1, room.Players[2].DebuffItems, "items survive a rematch")
}

func TestHasRetryMajority(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		players  int
		votes    int
		majority bool
	}{
		{players: 2, votes: 1, majority: false},
		{players: 2, votes: 2, majority: true},
		{players: 3, votes: 2, majority: true},
		{players: 4, votes: 2, majority: false},
		{players: 4, votes: 3, majority: true},
		{players: 6, votes: 3, majority: false},
		{players: 6, votes: 4, majority: true},
	}

	for _, tc := range testCases {
		room := makePlayingRoom(tc.players, false)
		for i := 0; i < tc.votes; i++ {
			room.RetryVotes[room.Players[i].ID] = true
		}
		assert.Equal(t, tc.majority, room.hasRetryMajority(),
			"%d votes of %d players", tc.votes, tc.players)
	}
}

func TestClone_Isolation(t *testing.T) {
	t.Parallel()
	room := makePlayingRoom(2, true)
	room.UsedWords["apple"] = true
	room.GameHistory = append(room.GameHistory, HistoryEntry{Word: "apple"})

	clone := room.Clone()
	clone.Players[0].Score = 99
	clone.UsedWords["banana"] = true
	clone.GameHistory = append(clone.GameHistory, HistoryEntry{Word: "banana"})
	*clone.TurnDeadline = clone.TurnDeadline.Add(time.Hour)

	assert.Equal(t, 0, room.Players[0].Score)
	assert.False(t, room.UsedWords["banana"])
	assert.Len(t, room.GameHistory, 1)
	assert.NotEqual(t, *room.TurnDeadline, *clone.TurnDeadline)
}
