package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
)

// DefaultDelay is the pause between bot moves in AI vs AI rounds.
const DefaultDelay = 500 * time.Millisecond

type moveSource interface {
	RequestMove(ctx context.Context, board entity.Board, mark entity.Mark) (int, error)
}

type renderer interface {
	Render(board entity.Board)
}

// RoundSettings - raw configuration of a round, validated by NewGameManager.
type RoundSettings struct {
	Mode       string
	Difficulty string
	AIMark     int
	// Delay is used in AI vs AI rounds only, nil means DefaultDelay.
	Delay *time.Duration
}

type GameManager struct {
	logger *slog.Logger

	mode       entity.GameMode
	difficulty string
	aiMark     entity.Mark
	delay      time.Duration

	rng    *rand.Rand
	input  moveSource
	render renderer
	pause  func(ctx context.Context, delay time.Duration) error
}

// participant is one side of a round, bot is nil for a human.
type participant struct {
	mark entity.Mark
	bot  *service.Bot
}

func NewGameManager(logger *slog.Logger, settings RoundSettings, input moveSource, render renderer, rng *rand.Rand) (*GameManager, error) {
	mode, err := entity.ParseGameMode(settings.Mode)
	if err != nil {
		return nil, fmt.Errorf("invalid round settings: %w", err)
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint: gosec // it's ok
	}

	manager := &GameManager{
		logger: logger.With("component", "game_manager"),
		mode:   mode,
		rng:    rng,
		input:  input,
		render: render,
		pause:  pause,
	}

	if !mode.HasAI() {
		return manager, nil
	}

	if !entity.IsValidDifficulty(settings.Difficulty) {
		return nil, fmt.Errorf("invalid round settings: %w: got %q", apperror.ErrInvalidDifficulty, settings.Difficulty)
	}

	aiMark, err := entity.ParseMark(settings.AIMark)
	if err != nil {
		return nil, fmt.Errorf("invalid round settings: %w", err)
	}

	manager.difficulty = settings.Difficulty
	manager.aiMark = aiMark

	if mode == entity.AIVsAI {
		manager.delay = DefaultDelay
		if settings.Delay != nil {
			manager.delay = *settings.Delay
		}
	}

	return manager, nil
}

func (that *GameManager) Mode() entity.GameMode {
	return that.mode
}

// Play - runs one round from an empty board until a win or a draw.
func (that *GameManager) Play(ctx context.Context) (*entity.Round, error) {
	round := entity.NewRound(that.mode)
	log := that.logger.With("method", "Play", "round_id", round.ID, "mode", that.mode.String())

	order, err := that.turnOrder()
	if err != nil {
		return nil, fmt.Errorf("failed to seat players: %w", err)
	}

	log.Info("round started", "first", order[0].mark.Symbol())

	for turn := 0; !round.IsFinished(); turn++ {
		current := order[turn%len(order)]

		cell, err := that.nextCell(ctx, log, round, current)
		if err != nil {
			return round, err
		}

		if err = round.MakeTurn(current.mark, cell); err != nil {
			log.Error("move rejected by the board", "mark", current.mark.Symbol(), "cell", cell, "error", err)
			return round, fmt.Errorf("failed to make turn: %w", err)
		}

		that.render.Render(round.Board)
		log.Debug("move applied", "mark", current.mark.Symbol(), "cell", cell)

		if round.IsFinished() {
			break
		}

		if that.mode == entity.AIVsAI {
			if err = that.pause(ctx, that.delay); err != nil {
				return round, fmt.Errorf("round interrupted: %w", err)
			}
		}
	}

	log.Info("round finished", "winner", round.Winner.Symbol(), "moves", len(round.Moves))

	return round, nil
}

// Outcome - describes the finished round from the point of view of the configured mode.
func (that *GameManager) Outcome(round *entity.Round) string {
	if !round.IsFinished() {
		return "unfinished"
	}

	if round.IsDraw() {
		return "draw"
	}

	switch that.mode {
	case entity.PlayerVsAI:
		if round.Winner == that.aiMark {
			return "you lost"
		}
		return "you won"
	case entity.AIVsAI:
		if round.Winner == that.aiMark {
			return "AI 1 won"
		}
		return "AI 2 won"
	default:
		if round.Winner == entity.PlayerOne {
			return "player 1 won"
		}
		return "player 2 won"
	}
}

// turnOrder - seats the two sides, bots are created per round so "random" is rolled again.
func (that *GameManager) turnOrder() ([2]participant, error) {
	switch that.mode {
	case entity.PlayerVsAI:
		bot, err := service.NewBot(int(that.aiMark), that.difficulty, that.rng)
		if err != nil {
			return [2]participant{}, err
		}

		human := participant{mark: that.aiMark.Opponent()}
		machine := participant{mark: that.aiMark, bot: bot}

		if that.rng.Intn(2) == 0 {
			return [2]participant{human, machine}, nil
		}
		return [2]participant{machine, human}, nil
	case entity.AIVsAI:
		first, err := service.NewBot(int(that.aiMark), that.difficulty, that.rng)
		if err != nil {
			return [2]participant{}, err
		}

		second, err := service.NewBot(int(that.aiMark.Opponent()), that.difficulty, that.rng)
		if err != nil {
			return [2]participant{}, err
		}

		return [2]participant{
			{mark: first.Mark(), bot: first},
			{mark: second.Mark(), bot: second},
		}, nil
	default:
		return [2]participant{{mark: entity.PlayerOne}, {mark: entity.PlayerTwo}}, nil
	}
}

func (that *GameManager) nextCell(ctx context.Context, log *slog.Logger, round *entity.Round, current participant) (int, error) {
	if current.bot != nil {
		// the bot plays on a snapshot, the round applies the same cell and records it
		snapshot := round.Board.Copy()

		cell, err := current.bot.MakeTurn(&snapshot)
		if err != nil {
			log.Error("bot could not move on an unfinished board", "mark", current.mark.Symbol(), "error", err)
			return 0, fmt.Errorf("failed to get bot move: %w", err)
		}

		return cell, nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("round interrupted: %w", err)
		}

		cell, err := that.input.RequestMove(ctx, round.Board, current.mark)
		if errors.Is(err, apperror.ErrInvalidInput) {
			log.Debug("malformed input", "error", err)
			continue
		}

		if err != nil {
			return 0, fmt.Errorf("failed to request move: %w", err)
		}

		if round.Board.IsValidTarget(cell) {
			return cell, nil
		}

		log.Debug("move rejected", "mark", current.mark.Symbol(), "cell", cell)
	}
}

func pause(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
