package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/nimlines-backend/internal/apperror"
	"github.com/rocketscienceinc/nimlines-backend/internal/entity"
	"github.com/rocketscienceinc/nimlines-backend/internal/nimlines"
)

type resultRepo interface {
	Save(ctx context.Context, result *entity.Result) error
	GetByID(ctx context.Context, id string) (*entity.Result, error)
	List(ctx context.Context, limit int) ([]*entity.Result, error)
}

// SetupOptions selects the board layout of a new game.
// Layout wins over the progression fields; UseDefaults selects the classic 1, 3, 5... rows.
type SetupOptions struct {
	Rows        int
	UseDefaults bool
	FirstRow    int
	Increment   int
	Layout      []int
}

// GameManager runs one game session at a time on top of the engine and records finished matches.
// It is not safe for concurrent use.
type GameManager struct {
	logger  *slog.Logger
	engine  *nimlines.Engine
	results resultRepo

	now   func() time.Time
	newID func() string

	id    string
	round int
	moves int
}

// NewGameManager - results may be nil, in which case finished matches are not recorded.
func NewGameManager(logger *slog.Logger, results resultRepo) *GameManager {
	return &GameManager{
		logger:  logger.With("component", "game_manager"),
		engine:  nimlines.NewEngine(),
		results: results,

		now:   time.Now,
		newID: uuid.NewString,
	}
}

// NewGame - replaces the current game. A rejected setup keeps the previous game.
func (that *GameManager) NewGame(_ context.Context, opts SetupOptions) (*entity.Game, error) {
	var err error

	switch {
	case len(opts.Layout) > 0:
		err = that.engine.SetupRows(opts.Layout)
	case opts.UseDefaults:
		err = that.engine.Setup(opts.Rows)
	default:
		err = that.engine.SetupProgression(opts.Rows, opts.FirstRow, opts.Increment)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to set up game: %w", err)
	}

	that.id = that.newID()
	that.round = 1
	that.moves = 0

	that.logger.Debug("game created", "game_id", that.id, "layout", that.engine.RowSizes())

	return that.Game(), nil
}

// MakeTurn - plays lines [start, end] of the row for the player whose turn it is.
func (that *GameManager) MakeTurn(ctx context.Context, row, start, end int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "game_id", that.id)

	if err := that.Game().ConfirmOngoingState(); err != nil {
		log.Debug("game is not ongoing", "error", err)
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	mover := that.engine.CurrentPlayer()
	if err := that.engine.ApplyMove(row, start, end); err != nil {
		log.Debug("move rejected", "player", int(mover), "row", row, "start", start, "end", end, "error", err)
		return that.Game(), fmt.Errorf("failed to make turn: %w", err)
	}

	that.moves++

	if that.engine.IsRunning() {
		if that.engine.CurrentPlayer() == nimlines.PlayerOne {
			that.round++
		}

		return that.Game(), nil
	}

	winner, _ := that.engine.Winner().Player()
	log.Info("game finished", "winner", int(winner), "rounds", that.round, "moves", that.moves)

	that.recordResult(ctx, winner)

	return that.Game(), nil
}

// Game - the current view of the session.
func (that *GameManager) Game() *entity.Game {
	return &entity.Game{
		ID:        that.id,
		Board:     that.engine.Snapshot(),
		Turn:      that.engine.CurrentPlayer(),
		Winner:    that.engine.Winner(),
		Status:    entity.StatusOf(that.engine.State()),
		Round:     that.round,
		Moves:     that.moves,
		Total:     that.engine.TotalMarkers(),
		Remaining: that.engine.RemainingMarkers(),
	}
}

func (that *GameManager) HistoryEnabled() bool {
	return that.results != nil
}

// History - the most recent finished matches, newest first.
func (that *GameManager) History(ctx context.Context, limit int) ([]*entity.Result, error) {
	if that.results == nil {
		return []*entity.Result{}, nil
	}

	results, err := that.results.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	return results, nil
}

// LastResult - the stored record of the current match once it has finished.
func (that *GameManager) LastResult(ctx context.Context) (*entity.Result, error) {
	if that.results == nil || that.engine.State() != nimlines.StateFinished {
		return nil, fmt.Errorf("result %w", apperror.ErrNotFound)
	}

	result, err := that.results.GetByID(ctx, that.id)
	if err != nil {
		return nil, fmt.Errorf("failed to get result %s: %w", that.id, err)
	}

	return result, nil
}

// recordResult - a storage failure is logged and does not affect the finished game.
func (that *GameManager) recordResult(ctx context.Context, winner nimlines.Player) {
	if that.results == nil {
		return
	}

	result := &entity.Result{
		ID:         that.id,
		Layout:     that.engine.RowSizes(),
		Winner:     winner,
		Rounds:     that.round,
		Moves:      that.moves,
		FinishedAt: that.now().UTC(),
	}

	if err := that.results.Save(ctx, result); err != nil {
		that.logger.Error("failed to save result", "game_id", that.id, "error", err)
	}
}
