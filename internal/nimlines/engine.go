package nimlines

import (
	"errors"
	"fmt"
	"math"

	"github.com/rocketscienceinc/nimlines-backend/internal/apperror"
)

var (
	ErrInvalidRowCount  = errors.New("row count must be positive")
	ErrInvalidRowSize   = errors.New("row size must be positive")
	ErrInvalidIncrement = errors.New("increment must not be negative")

	ErrGameNotRunning   = errors.New("game is not running")
	ErrRowOutOfRange    = errors.New("row index out of range")
	ErrReversedRange    = errors.New("first line is after last line")
	ErrRangeOutOfBounds = errors.New("line range out of bounds")
	ErrLineRemoved      = errors.New("line already removed")
)

// Engine holds a single Nim-lines game: the board and whose turn it is.
// The player who removes the last line on the board loses.
//
// Engine is not safe for concurrent use.
type Engine struct {
	rows    []Row
	running bool
	turn    Player
	winner  Winner
}

func NewEngine() *Engine {
	return &Engine{}
}

// Setup - starts a classic game where row i has 2i+1 lines.
func (that *Engine) Setup(rowCount int) error {
	if rowCount <= 0 {
		return fmt.Errorf("%w: %w: %d", apperror.ErrInvalidSetupParameters, ErrInvalidRowCount, rowCount)
	}

	return that.SetupProgression(rowCount, 1, 2)
}

// SetupProgression - starts a game where row i has firstRowSize + i*increment lines.
func (that *Engine) SetupProgression(rowCount, firstRowSize, increment int) error {
	switch {
	case rowCount <= 0:
		return fmt.Errorf("%w: %w: %d", apperror.ErrInvalidSetupParameters, ErrInvalidRowCount, rowCount)
	case firstRowSize <= 0:
		return fmt.Errorf("%w: %w: %d", apperror.ErrInvalidSetupParameters, ErrInvalidRowSize, firstRowSize)
	case increment < 0:
		return fmt.Errorf("%w: %w: %d", apperror.ErrInvalidSetupParameters, ErrInvalidIncrement, increment)
	case rowCount > 1 && increment > (math.MaxInt-firstRowSize)/(rowCount-1):
		return fmt.Errorf("%w: %w: %d overflows the last row", apperror.ErrInvalidSetupParameters, ErrInvalidIncrement, increment)
	}

	sizes := make([]int, rowCount)
	for i := range sizes {
		sizes[i] = firstRowSize + i*increment
	}

	return that.SetupRows(sizes)
}

// SetupRows - starts a game with an explicit number of lines per row.
// The previous game is kept untouched if any size is invalid.
func (that *Engine) SetupRows(rowSizes []int) error {
	if len(rowSizes) == 0 {
		return fmt.Errorf("%w: %w: 0", apperror.ErrInvalidSetupParameters, ErrInvalidRowCount)
	}

	for i, size := range rowSizes {
		if size <= 0 {
			return fmt.Errorf("%w: %w: row %d has %d", apperror.ErrInvalidSetupParameters, ErrInvalidRowSize, i, size)
		}
	}

	rows := make([]Row, len(rowSizes))
	for i, size := range rowSizes {
		row, err := NewRow(size)
		if err != nil {
			return err
		}
		rows[i] = row
	}

	that.rows = rows
	that.running = true
	that.turn = PlayerOne
	that.winner = Winner{}

	return nil
}

func (that *Engine) IsRunning() bool {
	return that.running
}

// CurrentPlayer - the player to move. After the final move it stays on the player who made it.
func (that *Engine) CurrentPlayer() Player {
	return that.turn
}

func (that *Engine) Winner() Winner {
	return that.winner
}

func (that *Engine) State() State {
	switch {
	case that.running:
		return StateRunning
	case that.winner.Decided():
		return StateFinished
	default:
		return StateNotStarted
	}
}

func (that *Engine) RowCount() int {
	return len(that.rows)
}

// RowSizes - the layout the current game was set up with.
func (that *Engine) RowSizes() []int {
	sizes := make([]int, len(that.rows))
	for i := range that.rows {
		sizes[i] = that.rows[i].Size()
	}

	return sizes
}

// TotalMarkers - number of lines the game started with, 0 if the game is not running.
func (that *Engine) TotalMarkers() int {
	if !that.running {
		return 0
	}

	total := 0
	for i := range that.rows {
		total += that.rows[i].Size()
	}

	return total
}

// RemainingMarkers - number of lines left on the board, 0 if the game is not running.
func (that *Engine) RemainingMarkers() int {
	if !that.running {
		return 0
	}

	return that.remaining()
}

func (that *Engine) remaining() int {
	total := 0
	for i := range that.rows {
		total += that.rows[i].Remaining()
	}

	return total
}

// Snapshot - returns a copy of the board. Changing it does not affect the engine.
func (that *Engine) Snapshot() [][]bool {
	if that.rows == nil {
		return nil
	}

	board := make([][]bool, len(that.rows))
	for i := range that.rows {
		board[i] = that.rows[i].Lines()
	}

	return board
}

// ApplyMove - removes lines [start, end] from the given row for the current player.
// An invalid move changes nothing.
func (that *Engine) ApplyMove(rowIndex, start, end int) error {
	if !that.running {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidMove, ErrGameNotRunning)
	}

	if rowIndex < 0 || rowIndex >= that.RowCount() {
		return fmt.Errorf("%w: %w: %d", apperror.ErrInvalidMove, ErrRowOutOfRange, rowIndex)
	}

	if err := that.rows[rowIndex].RemoveRange(start, end); err != nil {
		return fmt.Errorf("row %d: %w", rowIndex, err)
	}

	if that.remaining() == 0 {
		that.running = false
		that.winner = decided(that.turn.Opponent())

		return nil
	}

	that.turn = that.turn.Opponent()

	return nil
}
