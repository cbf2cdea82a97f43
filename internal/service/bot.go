package service

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

// Bot picks moves for one mark at a fixed difficulty. It keeps no memory between moves.
type Bot struct {
	mark       entity.Mark
	difficulty entity.Difficulty
	rng        *rand.Rand
}

// NewBot - validates the configuration and resolves a "random" difficulty once.
func NewBot(number int, difficulty string, rng *rand.Rand) (*Bot, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint: gosec // it's ok
	}

	tier, err := entity.ParseDifficulty(difficulty, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	mark, err := entity.ParseMark(number)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &Bot{
		mark:       mark,
		difficulty: tier,
		rng:        rng,
	}, nil
}

func (that *Bot) Mark() entity.Mark {
	return that.mark
}

func (that *Bot) Difficulty() entity.Difficulty {
	return that.difficulty
}

// MakeTurn - chooses a cell and puts the bot's mark on it.
func (that *Bot) MakeTurn(board *entity.Board) (int, error) {
	cell, ok := that.ChooseCell(*board)
	if !ok {
		return 0, apperror.ErrNoAvailableMoves
	}

	if err := board.ApplyMove(cell, that.mark); err != nil {
		return 0, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return cell, nil
}

// ChooseCell - returns the cell the bot would play, false when the board is full.
func (that *Bot) ChooseCell(board entity.Board) (int, bool) {
	empties := board.EmptyCells()
	if len(empties) == 0 {
		return 0, false
	}

	if that.difficulty == entity.Easy {
		return that.randomCell(empties), true
	}

	if cell, ok := that.winOrBlock(board, empties); ok {
		return cell, true
	}

	switch that.difficulty {
	case entity.Medium:
		return that.randomCell(empties), true
	case entity.Expert:
		if cell, ok := that.openingCell(board, empties); ok {
			return cell, true
		}
	}

	return that.positionalCell(board), true
}

// FindWinningMove - returns the first empty cell, in the given order, that completes a line for the mark.
func FindWinningMove(board entity.Board, empties []int, mark entity.Mark) (int, bool) {
	for _, cell := range empties {
		candidate := board.Copy()
		if err := candidate.ApplyMove(cell, mark); err != nil {
			continue
		}

		if candidate.IsWinning(mark) {
			return cell, true
		}
	}

	return 0, false
}

// winOrBlock - own win first, then the opponent's.
func (that *Bot) winOrBlock(board entity.Board, empties []int) (int, bool) {
	if cell, ok := FindWinningMove(board, empties, that.mark); ok {
		return cell, true
	}

	return FindWinningMove(board, empties, that.mark.Opponent())
}

func (that *Bot) randomCell(empties []int) int {
	return empties[that.rng.Intn(len(empties))]
}

// positionalCell - a random free corner, then the center, then a random free side.
func (that *Bot) positionalCell(board entity.Board) int {
	if cell, ok := that.shuffledFree(board, entity.Corners); ok {
		return cell
	}

	if board.IsValidTarget(entity.Center) {
		return entity.Center
	}

	cell, _ := that.shuffledFree(board, entity.Sides)

	return cell
}

// openingCell - the two opening replies that rely on the bot moving second.
func (that *Bot) openingCell(board entity.Board, empties []int) (int, bool) {
	switch len(empties) {
	case entity.BoardSize - 1:
		// the opponent opened on a side
		if !hasCornerTaken(board) && board.IsValidTarget(entity.Center) {
			return entity.Center, true
		}
	case entity.BoardSize - 3:
		if hasCornerTaken(board) {
			return that.shuffledFree(board, entity.Sides)
		}
	}

	return 0, false
}

// shuffledFree - shuffles a copy of the group and returns its first free cell.
func (that *Bot) shuffledFree(board entity.Board, group [4]int) (int, bool) {
	that.rng.Shuffle(len(group), func(i, j int) {
		group[i], group[j] = group[j], group[i]
	})

	for _, cell := range group {
		if board.IsValidTarget(cell) {
			return cell, true
		}
	}

	return 0, false
}

func hasCornerTaken(board entity.Board) bool {
	for _, cell := range entity.Corners {
		if board[cell] != entity.Empty {
			return true
		}
	}

	return false
}
