package entity

import (
	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

const (
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
)

// Move is one applied turn.
type Move struct {
	Mark Mark
	Cell int
}

// Round is the in-memory state of a single game, discarded when it ends.
type Round struct {
	ID     string
	Mode   GameMode
	Board  Board
	Moves  []Move
	Winner Mark
	Status string
}

func NewRound(mode GameMode) *Round {
	return &Round{
		ID:     uuid.NewString(),
		Mode:   mode,
		Moves:  make([]Move, 0, BoardSize),
		Status: StatusOngoing,
	}
}

// MakeTurn - applies the move and finishes the round on a win for the mark that moved or a full board.
func (that *Round) MakeTurn(mark Mark, cell int) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if err := that.Board.ApplyMove(cell, mark); err != nil {
		return err
	}

	that.Moves = append(that.Moves, Move{Mark: mark, Cell: cell})

	// only the mark that moved can have completed a line
	if winner, finished := that.Board.Result(); finished {
		that.Winner = winner
		that.Status = StatusFinished
	}

	return nil
}

func (that *Round) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Round) IsDraw() bool {
	return that.IsFinished() && that.Winner == Empty
}
