package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/nimlines-backend/internal/entity"
	"github.com/rocketscienceinc/nimlines-backend/internal/nimlines"
	"github.com/rocketscienceinc/nimlines-backend/internal/usecase"
)

var errStorageDown = errors.New("storage down")

type mockResultRepo struct {
	mock.Mock
}

func (m *mockResultRepo) Save(ctx context.Context, result *entity.Result) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *mockResultRepo) GetByID(ctx context.Context, id string) (*entity.Result, error) {
	args := m.Called(ctx, id)
	result, _ := args.Get(0).(*entity.Result)
	return result, args.Error(1)
}

func (m *mockResultRepo) List(ctx context.Context, limit int) ([]*entity.Result, error) {
	args := m.Called(ctx, limit)
	results, _ := args.Get(0).([]*entity.Result)
	return results, args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// script joins input lines, one answer per line.
func script(lines ...string) io.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func runConsole(t *testing.T, manager *usecase.GameManager, input io.Reader, opts Options) string {
	t.Helper()

	var out bytes.Buffer
	console := New(discardLogger(), manager, input, &out, opts)

	require.NoError(t, console.Run(context.Background()))

	return out.String()
}

func TestConsole_Run(t *testing.T) {
	t.Run("Classic game to the end", func(t *testing.T) {
		// Given: players who skip the rules and pick a classic game with 2 rows
		input := script(
			"n",
			"2", "n",
			"2", "1", "3", // player 1 clears row 2
			"1", "1", "1", // player 2 takes the last line
			"n",
		)

		// When: the console runs
		out := runConsole(t, usecase.NewGameManager(discardLogger(), nil), input, Options{})

		// Then: the board is shown and player 1 wins
		assert.Contains(t, out, "Welcome to Nim-lines!")
		assert.NotContains(t, out, "Player 1 always goes first.")
		assert.Contains(t, out, "Current Round: 1\nCurrent Turn: Player 1\nRemaining lines: 4\n1: | \n2: |  |  | \n")
		assert.Contains(t, out, "Current Turn: Player 2\nRemaining lines: 1\n1: | \n2: _  _  _ \n")
		assert.Contains(t, out, "After 1 rounds, Player 1 has won the game! Congrats!")
		assert.True(t, strings.HasSuffix(out, "---END OF LINE---\n"))
	})

	t.Run("Invalid answers are asked again", func(t *testing.T) {
		// Given: players who make every kind of input mistake during setup
		input := script(
			"maybe", "y",
			"abc", "0", "1",
			"sure", "Y",
			"0", "2",
			"-1", "0",
			"5", "1", // row 5 does not exist
			"3", "1", // line 3 does not exist
			"0", "2", // line 0 is before the first line, then the whole row
			"N",
		)

		// When: the console runs
		out := runConsole(t, usecase.NewGameManager(discardLogger(), nil), input, Options{})

		// Then: each mistake is reported and player 1 loses by taking both lines
		assert.Contains(t, out, "Player 1 always goes first.")
		assert.Equal(t, 2, strings.Count(out, "That is an invalid number of rows."))
		assert.Equal(t, 2, strings.Count(out, "That is an invalid number of lines."))
		assert.Contains(t, out, "That is an invalid row.")
		assert.Contains(t, out, "That is an invalid starting line.")
		assert.Contains(t, out, "That is an invalid ending line.")
		assert.Contains(t, out, "1: |  | \n")
		assert.Contains(t, out, "After 1 rounds, Player 2 has won the game! Congrats!")
	})

	t.Run("Gap keeps the player on the same row", func(t *testing.T) {
		// Given: a preset row of 3 and a player 2 trying to take across a gap
		input := script(
			"n",
			"1", "2", "2", // player 1 takes the middle line
			"1", "1", "3", // player 2 tries to cross the gap
			"1", "1", // player 2 takes the first line instead
			"1", "3", "3", // player 1 is left with the last line
			"y",
			"1", "1", "3", // second game: player 1 takes the whole row
			"n",
		)

		// When: the console runs
		out := runConsole(t, usecase.NewGameManager(discardLogger(), nil), input, Options{Preset: []int{3}})

		// Then: the contiguity error is shown and the row is not asked again
		assert.Equal(t, 1, strings.Count(out, "You may only remove multiple adjacent lines."))
		assert.Equal(t, 4, strings.Count(out, "Please select a row: "))
		assert.Contains(t, out, "After 2 rounds, Player 2 has won the game! Congrats!")
		assert.Contains(t, out, "After 1 rounds, Player 2 has won the game! Congrats!")
		assert.Contains(t, out, "Current Round: 2\n")
		assert.NotContains(t, out, "how many rows")
	})

	t.Run("End of input ends the session", func(t *testing.T) {
		// Given: input that stops during setup
		input := script("n", "3")

		// When: the console runs
		out := runConsole(t, usecase.NewGameManager(discardLogger(), nil), input, Options{})

		// Then: the session ends cleanly
		assert.True(t, strings.HasSuffix(out, "---END OF LINE---\n"))
	})

	t.Run("Canceled context stops the session", func(t *testing.T) {
		// Given: a canceled context
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var out bytes.Buffer
		console := New(discardLogger(), usecase.NewGameManager(discardLogger(), nil), script("n"), &out, Options{})

		// When: the console runs
		err := console.Run(ctx)

		// Then: the cancellation is returned
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestConsole_History(t *testing.T) {
	t.Run("Shows recent matches after a game", func(t *testing.T) {
		// Given: a history repository with one stored match
		repo := &mockResultRepo{}
		repo.On("Save", mock.Anything, mock.AnythingOfType("*entity.Result")).Return(nil).Once()
		stored := &entity.Result{ID: "a", Layout: []int{1}, Winner: nimlines.PlayerTwo, Rounds: 1, Moves: 1}
		repo.On("GetByID", mock.Anything, mock.AnythingOfType("string")).Return(stored, nil).Once()
		repo.On("List", mock.Anything, 3).Return([]*entity.Result{stored}, nil).Once()

		input := script("n", "1", "1", "1", "n")

		// When: a one-line game is played
		out := runConsole(t, usecase.NewGameManager(discardLogger(), repo), input, Options{Preset: []int{1}, HistoryLimit: 3})

		// Then: the stored record and the match list are printed
		assert.Contains(t, out, "Match a saved: Player 2 won in 1 moves.\n")
		assert.Contains(t, out, "Recent matches:\n1. Player 2 won after 1 rounds (rows 1)\n")
		repo.AssertExpectations(t)
	})

	t.Run("Unavailable history does not stop the session", func(t *testing.T) {
		// Given: a history repository that fails to list
		repo := &mockResultRepo{}
		repo.On("Save", mock.Anything, mock.Anything).Return(errStorageDown).Once()
		repo.On("GetByID", mock.Anything, mock.Anything).Return(nil, errStorageDown).Once()
		repo.On("List", mock.Anything, 5).Return(nil, errStorageDown).Once()

		input := script("n", "1", "1", "1", "n")

		// When: a one-line game is played
		out := runConsole(t, usecase.NewGameManager(discardLogger(), repo), input, Options{Preset: []int{1}, HistoryLimit: 5})

		// Then: the failures are reported and the session ends normally
		assert.Contains(t, out, "This match could not be saved.")
		assert.Contains(t, out, "Match history is unavailable.")
		assert.Contains(t, out, "---END OF LINE---")
	})
}

func TestRenderBoard(t *testing.T) {
	board := [][]bool{
		{true},
		{false, true, false},
	}

	assert.Equal(t, "1: | \n2: _  |  _ \n", renderBoard(board))
	assert.Empty(t, renderBoard(nil))
}
