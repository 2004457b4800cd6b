package entity

import (
	"errors"
	"time"

	"github.com/rocketscienceinc/nimlines-backend/internal/nimlines"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Result is the stored outcome of a finished match. It never carries board state.
type Result struct {
	ID         string          `json:"id"`
	Layout     []int           `json:"layout"`
	Winner     nimlines.Player `json:"winner"`
	Rounds     int             `json:"rounds"`
	Moves      int             `json:"moves"`
	FinishedAt time.Time       `json:"finished_at"`
}
