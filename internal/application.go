package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/nimlines-backend/internal/config"
	"github.com/rocketscienceinc/nimlines-backend/internal/repository"
	"github.com/rocketscienceinc/nimlines-backend/internal/repository/storage"
	"github.com/rocketscienceinc/nimlines-backend/internal/transport/console"
	"github.com/rocketscienceinc/nimlines-backend/internal/usecase"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs console games on stdin/stdout until the players quit or a signal arrives.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	return Run(logger, conf, os.Stdin, os.Stdout)
}

func Run(logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	results, closeHistory, err := openHistory(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err := closeHistory(); err != nil {
			log.Error("could not close history storage", "error", err)
		}
	}()

	gameManager := usecase.NewGameManager(logger, results)

	// run console session
	consoleErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting console session", "history", conf.History.Driver)
		consoleErrCh <- console.New(logger, gameManager, in, out, console.Options{
			Preset:       conf.Game.Rows,
			HistoryLimit: conf.History.Limit,
		}).Run(ctx)
	}()

	select {
	case err = <-consoleErrCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("console session error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// openHistory - returns a nil repository when match history is disabled.
func openHistory(ctx context.Context, conf *config.Config) (repository.ResultRepository, func() error, error) {
	noop := func() error { return nil }

	switch conf.History.Driver {
	case config.HistoryRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if conf.Redis.Host == "" {
			return nil, noop, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return nil, noop, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewResultRepository(redisStorage.Connection), redisStorage.Close, nil

	case config.HistorySQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
		if err != nil {
			return nil, noop, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, noop, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return repository.NewSQLiteResultRepository(sqliteStorage.Connection), sqliteStorage.Close, nil

	default:
		return nil, noop, nil
	}
}
