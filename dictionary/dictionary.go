package dictionary

import (
	"context"
	"errors"
	"time"
)

// Word is one dictionary entry. Word text is stored normalized
// (lowercase/trimmed); (word, language) pairs are unique.
type Word struct {
	ID        string    `json:"id"`
	Word      string    `json:"word"`
	Category  string    `json:"category,omitempty"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"createdAt"`
}

type WordRepo interface {
	ListWords(ctx context.Context, language string) ([]Word, error)
	InsertWord(ctx context.Context, word Word) error
	UpdateWord(ctx context.Context, word Word) error
	DeleteWord(ctx context.Context, id string) error
	// ImportWords inserts a batch, silently skipping entries whose
	// (word, language) already exists. Returns how many were inserted.
	ImportWords(ctx context.Context, words []Word) (int, error)
}

var (
	ErrWordNotFound  = errors.New("word-not-found")
	ErrDuplicateWord = errors.New("duplicate-word")
	ErrEmptyWord     = errors.New("empty-word")
	ErrBadLanguage   = errors.New("unsupported-language")
)
