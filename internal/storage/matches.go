package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// MatchRecord is the summary of one finished match.
// Lock counts are stored per slot: the first two slots get their own
// columns and any further slots are summed into ExtraLocks.
type MatchRecord struct {
	ID         int64
	GameID     string
	Score      int
	Lines      int
	Level      int
	LeftLocks  int
	RightLocks int
	ExtraLocks int
	Ticks      int
	Duration   time.Duration
	CreatedAt  time.Time
}

// TotalLocks returns the number of pieces locked by every slot.
func (r MatchRecord) TotalLocks() int {
	return r.LeftLocks + r.RightLocks + r.ExtraLocks
}

// SetLocks fills the per-slot lock columns from a slice indexed by slot.
func (r *MatchRecord) SetLocks(locks []int) {
	r.LeftLocks, r.RightLocks, r.ExtraLocks = 0, 0, 0
	for i, n := range locks {
		switch i {
		case 0:
			r.LeftLocks = n
		case 1:
			r.RightLocks = n
		default:
			r.ExtraLocks += n
		}
	}
}

// SaveMatch records a finished match.
// Returns the ID of the inserted record.
func (s *Store) SaveMatch(r MatchRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO matches (game_id, score, lines, level, left_locks, right_locks, extra_locks, ticks, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Score, r.Lines, r.Level,
		r.LeftLocks, r.RightLocks, r.ExtraLocks,
		r.Ticks, r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentMatches retrieves the most recent matches for a game, newest first.
// An empty gameID returns matches of every game.
func (s *Store) RecentMatches(gameID string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryMatches(
		`SELECT id, game_id, score, lines, level, left_locks, right_locks, extra_locks,
		        ticks, duration_ms, created_at
		 FROM matches
		 WHERE ? = '' OR game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
}

// TopMatches retrieves the best matches for a game by score.
// Ties keep the earlier match first.
func (s *Store) TopMatches(gameID string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryMatches(
		`SELECT id, game_id, score, lines, level, left_locks, right_locks, extra_locks,
		        ticks, duration_ms, created_at
		 FROM matches
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
}

func (s *Store) queryMatches(query string, args ...any) ([]MatchRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		var r MatchRecord
		var durationMs int64
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.GameID,
			&r.Score,
			&r.Lines,
			&r.Level,
			&r.LeftLocks,
			&r.RightLocks,
			&r.ExtraLocks,
			&r.Ticks,
			&durationMs,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	BestLines  int
	TotalLines int64
	LastPlayed time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
// Every finished match counts, including ones that scored nothing; the high
// score also considers the scores table.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0),
		        COALESCE(MAX(lines), 0), COALESCE(SUM(lines), 0)
		 FROM matches WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore,
		&stats.BestLines, &stats.TotalLines)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	best, err := s.HighScore(gameID)
	if err != nil {
		return nil, err
	}
	stats.HighScore = max(stats.HighScore, best)

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM matches WHERE game_id = ? ORDER BY id DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}
