package leaderboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/minicade/minicade/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store is the local SQLite leaderboard backend. It also keeps the score
// history of finished sessions, which stays local even when a remote
// leaderboard is configured.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scores (
			id TEXT PRIMARY KEY,
			game TEXT NOT NULL,
			nickname TEXT NOT NULL,
			score INTEGER NOT NULL,
			updated_at TEXT NOT NULL,
			UNIQUE (game, nickname)
		);`,
		`CREATE TABLE IF NOT EXISTS history (
			id INTEGER PRIMARY KEY,
			game TEXT NOT NULL,
			score INTEGER NOT NULL,
			ended_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_scores_game ON scores(game);`,
		`CREATE INDEX IF NOT EXISTS idx_history_game_ended_at ON history(game, ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SubmitScore implements Gateway.
func (s *Store) SubmitScore(ctx context.Context, game model.GameID, nickname string, score int) (bool, error) {
	if nickname == "" {
		return false, fmt.Errorf("nickname is empty")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	var existingID string
	var existingScore int
	now := time.Now().Format(time.RFC3339Nano)
	row := tx.QueryRowContext(ctx,
		`SELECT id, score FROM scores WHERE game = ? AND nickname = ?`, string(game), nickname)
	switch err = row.Scan(&existingID, &existingScore); {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx,
			`INSERT INTO scores (id, game, nickname, score, updated_at) VALUES (?, ?, ?, ?, ?)`,
			uuid.New().String(), string(game), nickname, score, now)
		if err != nil {
			return false, err
		}
	case err != nil:
		return false, err
	default:
		if model.BetterScore(game, score, existingScore) {
			_, err = tx.ExecContext(ctx,
				`UPDATE scores SET score = ?, updated_at = ? WHERE id = ?`, score, now, existingID)
			if err != nil {
				return false, err
			}
		}
	}

	if err = trimBoard(ctx, tx, game); err != nil {
		return false, err
	}
	if err = tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// trimBoard deletes everything past the top TopN for the game.
func trimBoard(ctx context.Context, tx *sql.Tx, game model.GameID) error {
	order := "DESC"
	if game.AscendingScore() {
		order = "ASC"
	}
	query := fmt.Sprintf(`DELETE FROM scores WHERE game = ? AND id NOT IN (
		SELECT id FROM scores WHERE game = ? ORDER BY score %s, nickname ASC LIMIT ?
	)`, order)
	_, err := tx.ExecContext(ctx, query, string(game), string(game), TopN)
	return err
}

// FetchRankings implements Gateway.
func (s *Store) FetchRankings(ctx context.Context, game model.GameID) ([]model.Entry, error) {
	order := "DESC"
	if game.AscendingScore() {
		order = "ASC"
	}
	query := fmt.Sprintf(`SELECT id, game, nickname, score FROM scores
		WHERE game = ? ORDER BY score %s, nickname ASC LIMIT ?`, order)
	rows, err := s.db.QueryContext(ctx, query, string(game), TopN)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var entries []model.Entry
	for rows.Next() {
		var e model.Entry
		var g string
		if err := rows.Scan(&e.ID, &g, &e.Nickname, &e.Score); err != nil {
			return nil, err
		}
		e.Game = model.GameID(g)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// FetchAllRankings implements Gateway.
func (s *Store) FetchAllRankings(ctx context.Context) (map[model.GameID][]model.Entry, error) {
	out := map[model.GameID][]model.Entry{}
	for _, game := range model.Games {
		entries, err := s.FetchRankings(ctx, game)
		if err != nil {
			return nil, err
		}
		out[game] = entries
	}
	return out, nil
}

// DeleteRecord implements Gateway.
func (s *Store) DeleteRecord(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM scores WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RenameRecord implements Gateway. The record is re-upserted under the new
// nickname so an existing record for that nickname merges by comparator.
func (s *Store) RenameRecord(ctx context.Context, id string, game model.GameID, score int, newNickname string) (bool, error) {
	if newNickname == "" {
		return false, fmt.Errorf("nickname is empty")
	}
	if _, err := s.DeleteRecord(ctx, id); err != nil {
		return false, err
	}
	return s.SubmitScore(ctx, game, newNickname, score)
}

// InsertHistory appends one finished session to the local history.
func (s *Store) InsertHistory(ctx context.Context, game model.GameID, score int, endedAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO history (game, score, ended_at) VALUES (?, ?, ?)`,
		string(game), score, endedAt.Format(time.RFC3339Nano))
	return err
}

// ListHistory returns the session history for a game, oldest first,
// limited to the last n records when n > 0.
func (s *Store) ListHistory(ctx context.Context, game model.GameID, n int) ([]model.HistoryRecord, error) {
	query := `SELECT id, game, score, ended_at FROM history WHERE game = ? ORDER BY ended_at ASC, id ASC`
	rows, err := s.db.QueryContext(ctx, query, string(game))
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.HistoryRecord
	for rows.Next() {
		var rec model.HistoryRecord
		var g, endedAt string
		if err := rows.Scan(&rec.ID, &g, &rec.Score, &endedAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		rec.Game = model.GameID(g)
		rec.EndedAt = parsed
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if n > 0 && len(records) > n {
		records = records[len(records)-n:]
	}
	return records, nil
}
