package dictionary

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/aihara87/LastletterGame/game"
)

// importChunkSize bounds each repository batch so a huge import neither
// exceeds statement limits nor holds memory for the whole payload at once.
const importChunkSize = 50

type Clock interface {
	Now() time.Time
}

type Service struct {
	repo  WordRepo
	clock Clock
}

func NewService(repo WordRepo, clock Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

func (s *Service) List(ctx context.Context, language string) ([]Word, error) {
	if language != "" && !slices.Contains(game.SupportedLanguages, language) {
		return nil, ErrBadLanguage
	}
	return s.repo.ListWords(ctx, language)
}

func (s *Service) Add(ctx context.Context, rawWord, category, language string) (Word, error) {
	word := game.NormalizeWord(rawWord)
	if word == "" {
		return Word{}, ErrEmptyWord
	}
	if language == "" {
		language = game.SupportedLanguages[0]
	}
	if !slices.Contains(game.SupportedLanguages, language) {
		return Word{}, ErrBadLanguage
	}

	entry := Word{
		ID:        uuid.NewString(),
		Word:      word,
		Category:  category,
		Language:  language,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.InsertWord(ctx, entry); err != nil {
		return Word{}, err
	}
	return entry, nil
}

func (s *Service) Update(ctx context.Context, id, rawWord, category, language string) error {
	word := game.NormalizeWord(rawWord)
	if word == "" {
		return ErrEmptyWord
	}
	if !slices.Contains(game.SupportedLanguages, language) {
		return ErrBadLanguage
	}
	return s.repo.UpdateWord(ctx, Word{ID: id, Word: word, Category: category, Language: language})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteWord(ctx, id)
}

// ImportEntry is one row of a bulk import payload.
type ImportEntry struct {
	Word     string `json:"word"`
	Category string `json:"category"`
	Language string `json:"language"`
}

// Import loads entries in chunks, skipping blanks and anything already
// present. Duplicates inside the payload itself are also skipped.
func (s *Service) Import(ctx context.Context, entries []ImportEntry) (imported, skipped int, err error) {
	now := s.clock.Now()
	seen := make(map[string]bool, len(entries))

	batch := make([]Word, 0, importChunkSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		inserted, err := s.repo.ImportWords(ctx, batch)
		if err != nil {
			return err
		}
		imported += inserted
		skipped += len(batch) - inserted
		batch = batch[:0]
		return nil
	}

	for _, entry := range entries {
		word := game.NormalizeWord(entry.Word)
		if word == "" {
			skipped++
			continue
		}
		language := entry.Language
		if language == "" {
			language = game.SupportedLanguages[0]
		}
		if !slices.Contains(game.SupportedLanguages, language) {
			skipped++
			continue
		}
		key := word + "|" + language
		if seen[key] {
			skipped++
			continue
		}
		seen[key] = true

		batch = append(batch, Word{
			ID:        uuid.NewString(),
			Word:      word,
			Category:  entry.Category,
			Language:  language,
			CreatedAt: now,
		})
		if len(batch) == importChunkSize {
			if err := flush(); err != nil {
				return imported, skipped, err
			}
		}
	}

	if err := flush(); err != nil {
		return imported, skipped, err
	}
	return imported, skipped, nil
}
