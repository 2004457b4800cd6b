package nimlines

import (
	"fmt"

	"github.com/rocketscienceinc/nimlines-backend/internal/apperror"
)

// Row is an ordered run of line slots. Its size never changes and a removed line never comes back.
type Row struct {
	lines []bool
}

func NewRow(size int) (Row, error) {
	if size <= 0 {
		return Row{}, fmt.Errorf("%w: %w: %d", apperror.ErrInvalidSetupParameters, ErrInvalidRowSize, size)
	}

	lines := make([]bool, size)
	for i := range lines {
		lines[i] = true
	}

	return Row{lines: lines}, nil
}

func (that *Row) Size() int {
	return len(that.lines)
}

// Remaining - counts lines still present in the row.
func (that *Row) Remaining() int {
	count := 0
	for _, present := range that.lines {
		if present {
			count++
		}
	}

	return count
}

// Lines - returns a copy of the row slots, true where a line is present.
func (that *Row) Lines() []bool {
	lines := make([]bool, len(that.lines))
	copy(lines, that.lines)

	return lines
}

// RemoveRange - removes the lines in [start, end] if all of them are present.
// Either every line in the range is removed or nothing changes.
func (that *Row) RemoveRange(start, end int) error {
	if err := that.validateRange(start, end); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidMove, err)
	}

	for i := start; i <= end; i++ {
		that.lines[i] = false
	}

	return nil
}

func (that *Row) validateRange(start, end int) error {
	switch {
	case start > end:
		return fmt.Errorf("%w: %d > %d", ErrReversedRange, start, end)
	case start < 0:
		return fmt.Errorf("%w: start %d", ErrRangeOutOfBounds, start)
	case end >= len(that.lines):
		return fmt.Errorf("%w: end %d, size %d", ErrRangeOutOfBounds, end, len(that.lines))
	}

	for i := start; i <= end; i++ {
		if !that.lines[i] {
			return fmt.Errorf("%w: line %d", ErrLineRemoved, i)
		}
	}

	return nil
}
