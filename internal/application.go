package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-nxn/internal/config"
	"github.com/rocketscienceinc/tictactoe-nxn/internal/entity"
	"github.com/rocketscienceinc/tictactoe-nxn/internal/repository"
	"github.com/rocketscienceinc/tictactoe-nxn/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-nxn/internal/service"
	"github.com/rocketscienceinc/tictactoe-nxn/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-nxn/transport/rest"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var sessionRepo repository.SessionRepository
	if conf.Redis.Enabled {
		redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		sessionRepo = repository.NewSessionRepository(redisStorage.Connection, conf.Redis.SessionTTL)
		log.Info("publishing session snapshots to redis", "addr", conf.Redis.GetRedisAddr())
	}

	scheduler := service.NewBotScheduler(logger, conf.Bot.Delay)
	defer scheduler.Stop()

	settings := usecase.Settings{
		DefaultSize: conf.Board.DefaultSize,
		MinSize:     conf.Board.MinSize,
		MaxSize:     conf.Board.MaxSize,
		HumanSymbol: entity.Symbol(conf.Bot.HumanSymbol),
	}

	manager := usecase.NewGameManager(logger, settings, sessionRepo, scheduler)

	log.Info("Starting HTTP server", "port", conf.HTTPPort)
	if err := rest.Start(ctx, conf.HTTPPort, rest.NewRouter(logger, manager)); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}
