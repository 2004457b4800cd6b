package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/rocketscienceinc/nimlines-backend/internal/apperror"
	"github.com/rocketscienceinc/nimlines-backend/internal/entity"
	"github.com/rocketscienceinc/nimlines-backend/internal/usecase"
)

const rules = `It's very easy: 2 people take turns removing 1 or more
adjacent lines in a row. Whoever removes the last line on
the whole board loses the game. Player 1 always goes first.`

type gameManager interface {
	NewGame(ctx context.Context, opts usecase.SetupOptions) (*entity.Game, error)
	MakeTurn(ctx context.Context, row, start, end int) (*entity.Game, error)

	HistoryEnabled() bool
	LastResult(ctx context.Context) (*entity.Result, error)
	History(ctx context.Context, limit int) ([]*entity.Result, error)
}

type Options struct {
	// Preset is a fixed layout used instead of asking for the board setup.
	Preset       []int
	HistoryLimit int
}

// Console plays games between two people sharing one terminal.
type Console struct {
	logger *slog.Logger
	game   gameManager
	opts   Options

	in  *bufio.Scanner
	out io.Writer
}

func New(logger *slog.Logger, game gameManager, in io.Reader, out io.Writer, opts Options) *Console {
	return &Console{
		logger: logger.With("component", "console"),
		game:   game,
		opts:   opts,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// Run - plays games until the players stop or the input ends.
// The end of input is a normal exit; a canceled context is returned as its error.
func (that *Console) Run(ctx context.Context) error {
	err := that.run(ctx)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	that.println()
	that.println("---END OF LINE---")

	return nil
}

func (that *Console) run(ctx context.Context) error {
	that.println("Welcome to Nim-lines!")

	showRules, err := that.askYesNo(ctx, "Would you like to see the rules?")
	if err != nil {
		return err
	}

	if showRules {
		that.println()
		that.println(rules)
	}

	that.println()

	for {
		game, err := that.setup(ctx)
		if err != nil {
			return err
		}

		game, err = that.play(ctx, game)
		if err != nil {
			return err
		}

		that.printResult(game)
		that.printSaved(ctx)
		that.printHistory(ctx)

		again, err := that.askYesNo(ctx, "Would you like to play again?")
		if err != nil {
			return err
		}

		if !again {
			return nil
		}

		that.println()
	}
}

func (that *Console) setup(ctx context.Context) (*entity.Game, error) {
	if len(that.opts.Preset) > 0 {
		game, err := that.game.NewGame(ctx, usecase.SetupOptions{Layout: that.opts.Preset})
		if err != nil {
			return nil, fmt.Errorf("failed to set up preset game: %w", err)
		}

		return game, nil
	}

	for {
		opts, err := that.askSetup(ctx)
		if err != nil {
			return nil, err
		}

		game, err := that.game.NewGame(ctx, opts)
		if errors.Is(err, apperror.ErrInvalidSetupParameters) {
			that.logger.Debug("setup rejected", "error", err)
			that.println("That game could not be set up, please try again.")
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("failed to set up game: %w", err)
		}

		that.println()

		return game, nil
	}
}

func (that *Console) askSetup(ctx context.Context) (usecase.SetupOptions, error) {
	var opts usecase.SetupOptions

	rows, err := that.askInt(ctx,
		"Please enter how many rows you would like this game to have: ",
		"That is an invalid number of rows.",
		positive,
	)
	if err != nil {
		return opts, err
	}

	configure, err := that.askYesNo(ctx, "Would you like to configure the initial and additional lines?")
	if err != nil {
		return opts, err
	}

	opts.Rows = rows
	opts.UseDefaults = !configure

	if !configure {
		return opts, nil
	}

	opts.FirstRow, err = that.askInt(ctx,
		"Please enter how many lines you would like the first row to have: ",
		"That is an invalid number of lines.",
		positive,
	)
	if err != nil {
		return opts, err
	}

	opts.Increment, err = that.askInt(ctx,
		"Please enter how many lines you would like to add to each additional row: ",
		"That is an invalid number of lines.",
		func(n int) bool { return n >= 0 },
	)
	if err != nil {
		return opts, err
	}

	return opts, nil
}

func (that *Console) play(ctx context.Context, game *entity.Game) (*entity.Game, error) {
	for game.IsOngoing() {
		that.printBoard(game)

		next, err := that.takeTurn(ctx, game)
		if err != nil {
			return nil, err
		}

		game = next
		that.println()
	}

	return game, nil
}

// takeTurn - asks for a row once, then for a line range until the move is accepted.
func (that *Console) takeTurn(ctx context.Context, game *entity.Game) (*entity.Game, error) {
	row, err := that.askInt(ctx,
		"Please select a row: ",
		"That is an invalid row.",
		func(n int) bool { return game.RowHasLines(n - 1) },
	)
	if err != nil {
		return nil, err
	}
	row--

	for {
		first, err := that.askInt(ctx,
			"Please select the first line to remove: ",
			"That is an invalid starting line.",
			func(n int) bool { return game.LinePresent(row, n-1) },
		)
		if err != nil {
			return nil, err
		}
		first--

		last, err := that.askInt(ctx,
			"Please select the last line to remove: ",
			"That is an invalid ending line.",
			func(n int) bool { return n-1 >= first && game.LinePresent(row, n-1) },
		)
		if err != nil {
			return nil, err
		}
		last--

		next, err := that.game.MakeTurn(ctx, row, first, last)
		if errors.Is(err, apperror.ErrInvalidMove) {
			that.logger.Debug("move rejected", "error", err)
			that.println("You may only remove multiple adjacent lines.")
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("failed to make turn: %w", err)
		}

		return next, nil
	}
}

// printSaved - confirms the finished match from its stored record.
func (that *Console) printSaved(ctx context.Context) {
	if !that.game.HistoryEnabled() {
		return
	}

	result, err := that.game.LastResult(ctx)
	if err != nil {
		that.logger.Error("failed to load match result", "error", err)
		that.println("This match could not be saved.")
		that.println()
		return
	}

	fmt.Fprintf(that.out, "Match %s saved: %s won in %d moves.\n", result.ID, result.Winner, result.Moves)
	that.println()
}

func (that *Console) printHistory(ctx context.Context) {
	if !that.game.HistoryEnabled() || that.opts.HistoryLimit <= 0 {
		return
	}

	results, err := that.game.History(ctx, that.opts.HistoryLimit)
	if err != nil {
		that.logger.Error("failed to load match history", "error", err)
		that.println("Match history is unavailable.")
		that.println()
		return
	}

	that.printResults(results)
}

func positive(n int) bool {
	return n > 0
}
