package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aihara87/LastletterGame/dictionary"
	"github.com/aihara87/LastletterGame/game"
)

// UnexpectedDatabaseError wraps any postgres failure that is not part of a
// repository contract; callers treat it as fatal for the request.
var UnexpectedDatabaseError = errors.New("unexpected-database-error")

// "23505" is the PostgreSQL error code for unique_violation
const pgUniqueViolation = "23505"

// PostgresRepo backs both the room repository and the word dictionary. Room
// state is stored as a single jsonb document per room: the game service
// serializes access per room id, so the store only needs read-modify-write.
type PostgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresRepo(ctx context.Context, connString string) (*PostgresRepo, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	return &PostgresRepo{pool: pool}, nil
}

func (pr *PostgresRepo) GetPool() *pgxpool.Pool {
	return pr.pool
}

func wrapDBErr(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", UnexpectedDatabaseError, err)
}

// --- game.RoomRepository ---

func (pr *PostgresRepo) Insert(ctx context.Context, room *game.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return wrapDBErr(err)
	}
	_, err = pr.pool.Exec(ctx, "INSERT INTO rooms(id, data) VALUES($1, $2)", room.ID, data)
	if err != nil {
		return wrapDBErr(err)
	}
	return nil
}

func (pr *PostgresRepo) Get(ctx context.Context, id string) (*game.Room, error) {
	var data []byte
	err := pr.pool.QueryRow(ctx, "SELECT data FROM rooms WHERE id = $1", id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, game.ErrRoomNotFound
		}
		return nil, wrapDBErr(err)
	}

	room := &game.Room{}
	if err := json.Unmarshal(data, room); err != nil {
		return nil, wrapDBErr(err)
	}
	return room, nil
}

func (pr *PostgresRepo) Update(ctx context.Context, room *game.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return wrapDBErr(err)
	}
	tag, err := pr.pool.Exec(ctx, "UPDATE rooms SET data = $2, updated_at = now() WHERE id = $1", room.ID, data)
	if err != nil {
		return wrapDBErr(err)
	}
	if tag.RowsAffected() == 0 {
		return game.ErrRoomNotFound
	}
	return nil
}

func (pr *PostgresRepo) Delete(ctx context.Context, id string) error {
	_, err := pr.pool.Exec(ctx, "DELETE FROM rooms WHERE id = $1", id)
	if err != nil {
		return wrapDBErr(err)
	}
	return nil
}

func (pr *PostgresRepo) List(ctx context.Context) ([]*game.Room, error) {
	rows, err := pr.pool.Query(ctx, "SELECT data FROM rooms ORDER BY updated_at DESC")
	if err != nil {
		return nil, wrapDBErr(err)
	}
	defer rows.Close()

	rooms := []*game.Room{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, wrapDBErr(err)
		}
		room := &game.Room{}
		if err := json.Unmarshal(data, room); err != nil {
			return nil, wrapDBErr(err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(err)
	}
	return rooms, nil
}

// --- game.Dictionary ---

func (pr *PostgresRepo) Exists(ctx context.Context, word, language string) (bool, error) {
	var exists bool
	err := pr.pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM words WHERE word = $1 AND language = $2)",
		word, language,
	).Scan(&exists)
	if err != nil {
		return false, wrapDBErr(err)
	}
	return exists, nil
}

// WordsByLanguage feeds the bot word picker.
func (pr *PostgresRepo) WordsByLanguage(ctx context.Context, language string) ([]string, error) {
	rows, err := pr.pool.Query(ctx, "SELECT word FROM words WHERE language = $1", language)
	if err != nil {
		return nil, wrapDBErr(err)
	}
	defer rows.Close()

	words := []string{}
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, wrapDBErr(err)
		}
		words = append(words, word)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(err)
	}
	return words, nil
}

// --- dictionary.WordRepo ---

func (pr *PostgresRepo) ListWords(ctx context.Context, language string) ([]dictionary.Word, error) {
	query := "SELECT id, word, COALESCE(category, ''), language, created_at FROM words ORDER BY word"
	args := []any{}
	if language != "" {
		query = "SELECT id, word, COALESCE(category, ''), language, created_at FROM words WHERE language = $1 ORDER BY word"
		args = append(args, language)
	}

	rows, err := pr.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapDBErr(err)
	}
	defer rows.Close()

	words := []dictionary.Word{}
	for rows.Next() {
		var w dictionary.Word
		if err := rows.Scan(&w.ID, &w.Word, &w.Category, &w.Language, &w.CreatedAt); err != nil {
			return nil, wrapDBErr(err)
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(err)
	}
	return words, nil
}

func (pr *PostgresRepo) InsertWord(ctx context.Context, word dictionary.Word) error {
	_, err := pr.pool.Exec(ctx,
		"INSERT INTO words(id, word, category, language, created_at) VALUES($1, $2, NULLIF($3, ''), $4, $5)",
		word.ID, word.Word, word.Category, word.Language, word.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return dictionary.ErrDuplicateWord
		}
		return wrapDBErr(err)
	}
	return nil
}

func (pr *PostgresRepo) UpdateWord(ctx context.Context, word dictionary.Word) error {
	tag, err := pr.pool.Exec(ctx,
		"UPDATE words SET word = $2, category = NULLIF($3, ''), language = $4 WHERE id = $1",
		word.ID, word.Word, word.Category, word.Language,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return dictionary.ErrDuplicateWord
		}
		return wrapDBErr(err)
	}
	if tag.RowsAffected() == 0 {
		return dictionary.ErrWordNotFound
	}
	return nil
}

func (pr *PostgresRepo) DeleteWord(ctx context.Context, id string) error {
	_, err := pr.pool.Exec(ctx, "DELETE FROM words WHERE id = $1", id)
	if err != nil {
		return wrapDBErr(err)
	}
	return nil
}

// ImportWords batches inserts and lets the unique index skip anything
// already present, which is both simpler and race-free compared to a
// select-then-insert dedupe.
func (pr *PostgresRepo) ImportWords(ctx context.Context, words []dictionary.Word) (int, error) {
	batch := &pgx.Batch{}
	for _, w := range words {
		batch.Queue(
			"INSERT INTO words(id, word, category, language, created_at) VALUES($1, $2, NULLIF($3, ''), $4, $5) ON CONFLICT (word, language) DO NOTHING",
			w.ID, w.Word, w.Category, w.Language, w.CreatedAt,
		)
	}

	results := pr.pool.SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for range words {
		tag, err := results.Exec()
		if err != nil {
			return inserted, wrapDBErr(err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}
