package game

import "errors"

// ErrorCode identifies an expected game-flow outcome the client must be able
// to distinguish.
type ErrorCode string

const (
	CodeRoomNotFound       ErrorCode = "ROOM_NOT_FOUND"
	CodeRoomFull           ErrorCode = "ROOM_FULL"
	CodeNotHost            ErrorCode = "NOT_HOST"
	CodeNotEnoughPlayers   ErrorCode = "NOT_ENOUGH_PLAYERS"
	CodeGameAlreadyStarted ErrorCode = "GAME_ALREADY_STARTED"
	CodeGameNotPlaying     ErrorCode = "GAME_NOT_PLAYING"
	CodeGameNotFinished    ErrorCode = "GAME_NOT_FINISHED"
	CodePlayerNotFound     ErrorCode = "PLAYER_NOT_FOUND"
	CodeNotYourTurn        ErrorCode = "NOT_YOUR_TURN"
	CodePlayerEliminated   ErrorCode = "PLAYER_ELIMINATED"
	CodeEmptyWord          ErrorCode = "EMPTY_WORD"
	CodeWrongLetter        ErrorCode = "WRONG_LETTER"
	CodeNotInDictionary    ErrorCode = "NOT_IN_DICTIONARY"
	CodeUsedWord           ErrorCode = "USED_WORD"
)

// GameError is a domain-state error: frequent, expected and returned as a
// value so the boundary can surface a stable code. Required is only set for
// WRONG_LETTER.
type GameError struct {
	Code     ErrorCode
	Required string
}

func (e *GameError) Error() string {
	return string(e.Code)
}

func gameErr(code ErrorCode) *GameError {
	return &GameError{Code: code}
}

// Item-economy misuse means the client sent a request that cannot arise from
// honest game flow; these map to a generic client error at the boundary.
var (
	ErrNoBuffItems    = errors.New("no-buff-items")
	ErrNoDebuffItems  = errors.New("no-debuff-items")
	ErrSelfTarget     = errors.New("cannot-target-self")
	ErrTargetNotFound = errors.New("target-not-found")
	ErrUnknownPlayer  = errors.New("unknown-player")
)

// ErrRoomNotFound is the repository contract error for a missing room id.
var ErrRoomNotFound = errors.New("room-not-found")
