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

	"github.com/rocketscienceinc/tictactoe-ai/internal/config"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-ai/transport/console"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		// a second signal gets the default behaviour and kills the process
		signal.Stop(sigs)
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	renderer := console.NewRenderer(os.Stdout, !conf.Console.Plain)
	prompter := console.NewPrompter(os.Stdin, os.Stdout)

	return Run(ctx, logger, conf, prompter, renderer)
}

type prompter interface {
	RequestMove(ctx context.Context, board entity.Board, mark entity.Mark) (int, error)
	WaitForEnter(ctx context.Context) error
}

type renderer interface {
	Render(board entity.Board)
	Announce(message string)
}

// Run - plays the configured number of rounds, or until the input is closed.
func Run(ctx context.Context, logger *slog.Logger, conf *config.Config, input prompter, output renderer) error {
	log := logger.With("component", "app")

	delay := conf.Game.Delay
	manager, err := usecase.NewGameManager(logger, usecase.RoundSettings{
		Mode:       conf.Game.Mode,
		Difficulty: conf.Game.Difficulty,
		AIMark:     conf.Game.AIMark,
		Delay:      &delay,
	}, input, output, nil)
	if err != nil {
		return fmt.Errorf("could not configure the game: %w", err)
	}

	for played := 0; conf.Game.Rounds == 0 || played < conf.Game.Rounds; played++ {
		output.Render(entity.Board{})

		round, err := manager.Play(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				log.Info("Input closed, stopping", "rounds", played)
				return nil
			}

			return fmt.Errorf("round failed: %w", err)
		}

		output.Announce(manager.Outcome(round))

		if conf.Game.Rounds != 0 && played+1 >= conf.Game.Rounds {
			break
		}

		if err = input.WaitForEnter(ctx); err != nil {
			log.Info("Input closed, stopping", "rounds", played+1)
			return nil
		}
	}

	return nil
}
