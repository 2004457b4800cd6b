package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/nimlines-backend/internal/entity"
	"github.com/rocketscienceinc/nimlines-backend/internal/nimlines"
)

type sqliteResult struct {
	conn *sql.DB
}

// NewSQLiteResultRepository expects the results table created by storage.Storage.Init.
func NewSQLiteResultRepository(conn *sql.DB) ResultRepository {
	return &sqliteResult{
		conn: conn,
	}
}

func (that *sqliteResult) Save(ctx context.Context, result *entity.Result) error {
	layout, err := json.Marshal(result.Layout)
	if err != nil {
		return fmt.Errorf("could not marshal layout: %w", err)
	}

	query := `INSERT INTO results (id, layout, winner, rounds, moves, finished_at) VALUES (?, ?, ?, ?, ?, ?)`

	_, err = that.conn.ExecContext(ctx, query,
		result.ID,
		string(layout),
		int(result.Winner),
		result.Rounds,
		result.Moves,
		result.FinishedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("can't save result: %w", err)
	}

	return nil
}

func (that *sqliteResult) GetByID(ctx context.Context, id string) (*entity.Result, error) {
	query := `SELECT id, layout, winner, rounds, moves, finished_at FROM results WHERE id = ?`

	result, err := scanResult(that.conn.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrResultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find result: %w", err)
	}

	return result, nil
}

func (that *sqliteResult) List(ctx context.Context, limit int) ([]*entity.Result, error) {
	if limit <= 0 {
		return []*entity.Result{}, nil
	}

	query := `SELECT id, layout, winner, rounds, moves, finished_at FROM results
		ORDER BY finished_at DESC, rowid DESC LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("can't list results: %w", err)
	}
	defer rows.Close()

	results := make([]*entity.Result, 0, limit)
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("can't scan result: %w", err)
		}
		results = append(results, result)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't list results: %w", err)
	}

	return results, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(row scanner) (*entity.Result, error) {
	var (
		result     entity.Result
		layout     string
		winner     int
		finishedAt int64
	)

	if err := row.Scan(&result.ID, &layout, &winner, &result.Rounds, &result.Moves, &finishedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(layout), &result.Layout); err != nil {
		return nil, fmt.Errorf("unmarshal layout: %w", err)
	}

	result.Winner = nimlines.Player(winner)
	result.FinishedAt = time.UnixMilli(finishedAt).UTC()

	return &result, nil
}
