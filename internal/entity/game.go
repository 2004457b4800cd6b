package entity

import (
	"fmt"

	"github.com/rocketscienceinc/nimlines-backend/internal/apperror"
	"github.com/rocketscienceinc/nimlines-backend/internal/nimlines"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"
)

// Game is a read-only view of a match handed to the driver.
type Game struct {
	ID        string
	Board     [][]bool
	Turn      nimlines.Player
	Winner    nimlines.Winner
	Status    string
	Round     int
	Moves     int
	Total     int
	Remaining int
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return fmt.Errorf("%w: %w", apperror.ErrInvalidMove, nimlines.ErrGameNotRunning)
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

// RowHasLines - reports whether the row exists and still has a line to take.
func (that *Game) RowHasLines(row int) bool {
	if row < 0 || row >= len(that.Board) {
		return false
	}

	for _, present := range that.Board[row] {
		if present {
			return true
		}
	}

	return false
}

// LinePresent - reports whether the line exists in the row and has not been removed.
func (that *Game) LinePresent(row, line int) bool {
	if row < 0 || row >= len(that.Board) {
		return false
	}

	return line >= 0 && line < len(that.Board[row]) && that.Board[row][line]
}

// StatusOf maps the engine lifecycle onto a game status.
func StatusOf(state nimlines.State) string {
	switch state {
	case nimlines.StateRunning:
		return StatusOngoing
	case nimlines.StateFinished:
		return StatusFinished
	default:
		return StatusWaiting
	}
}
