package game

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestRoomLocks_MutualExclusion(t *testing.T) {
	t.Parallel()
	locks := newRoomLocks()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock("room-1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)

	locks.mu.Lock()
	assert.Empty(t, locks.locks, "entries are reclaimed once released")
	locks.mu.Unlock()
}

func TestRoomLocks_DistinctRoomsDoNotBlock(t *testing.T) {
	t.Parallel()
	locks := newRoomLocks()

	unlockA := locks.lock("room-a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := locks.lock("room-b")
		unlockB()
		close(done)
	}()
	<-done
}

// Concurrent plays against the same room must serialize: exactly one word is
// accepted per turn no matter how the goroutines interleave.
func TestService_ConcurrentPlaysSerialize(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, repo, dict, _ := setupService(&scriptedDice{ints: []int{0}})
	dict.On("Exists", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)

	view, aliceID, err := svc.CreateRoom(ctx, "alice", "en", false, 0)
	require.NoError(t, err)
	roomID := view.ID
	_, _, err = svc.JoinRoom(ctx, roomID, "bob")
	require.NoError(t, err)
	_, err = svc.StartGame(ctx, roomID, aliceID)
	require.NoError(t, err)

	var wg sync.WaitGroup
	accepted := 0
	var mu sync.Mutex
	for _, word := range []string{"apple", "ant", "arrow", "acorn"} {
		wg.Add(1)
		go func(word string) {
			defer wg.Done()
			if _, err := svc.PlayWord(ctx, roomID, aliceID, word); err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}(word)
	}
	wg.Wait()

	assert.Equal(t, 1, accepted, "only one word can win alice's turn")

	room, err := repo.Get(ctx, roomID)
	require.NoError(t, err)
	assert.Len(t, room.GameHistory, 1)
	assert.Equal(t, 1, room.CurrentPlayerIndex)
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(rate.Limit(1), 2))
	r.GET("/ping", func(ctx *gin.Context) { ctx.String(http.StatusOK, "pong") })

	codes := []int{}
	for i := 0; i < 4; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1], "burst allows a second request")
	assert.Contains(t, codes[2:], http.StatusTooManyRequests)

	// a different client gets its own bucket
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
