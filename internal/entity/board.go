package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

const (
	BoardSize = 9
	Center    = 4
)

var (
	// Corners and Sides are read-only, shuffle a copy.
	Corners = [4]int{0, 2, 6, 8}
	Sides   = [4]int{1, 3, 5, 7}

	WinCombos = [8][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// Board holds 9 cells in row-major order. It is a value type, assigning it copies the cells.
type Board [BoardSize]Mark

// EmptyCells - returns the indexes of all empty cells in ascending order.
func (that *Board) EmptyCells() []int {
	cells := make([]int, 0, len(that))
	for i, cell := range that {
		if cell == Empty {
			cells = append(cells, i)
		}
	}

	return cells
}

// IsValidTarget - checks that the cell is on the board and still empty.
func (that *Board) IsValidTarget(cell int) bool {
	if cell < 0 || cell >= len(that) {
		return false
	}

	return that[cell] == Empty
}

// ApplyMove - puts the mark on an empty cell. An occupied or unknown cell leaves the board unchanged.
func (that *Board) ApplyMove(cell int, mark Mark) error {
	if cell < 0 || cell >= len(that) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that[cell] != Empty {
		return fmt.Errorf("%w: cell %d holds %s", apperror.ErrCellOccupied, cell, that[cell])
	}

	that[cell] = mark

	return nil
}

// IsWinning - checks if any of the 8 lines is completely filled with the mark.
func (that *Board) IsWinning(mark Mark) bool {
	if mark == Empty {
		return false
	}

	for _, combo := range WinCombos {
		if that[combo[0]] == mark && that[combo[1]] == mark && that[combo[2]] == mark {
			return true
		}
	}

	return false
}

// IsDraw - reports a full board. It does not look for a win, check IsWinning first.
func (that *Board) IsDraw() bool {
	return len(that.EmptyCells()) == 0
}

func (that *Board) Copy() Board {
	return *that
}

// Result - returns the winner if there is one and whether the game is over.
func (that *Board) Result() (Mark, bool) {
	for _, mark := range []Mark{PlayerOne, PlayerTwo} {
		if that.IsWinning(mark) {
			return mark, true
		}
	}

	// the game will continue until all the squares are full
	return Empty, that.IsDraw()
}

// Occupied - returns how many cells hold a mark.
func (that *Board) Occupied() int {
	return len(that) - len(that.EmptyCells())
}
