package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

// Mark is the value stored in a cell and the identity of a player.
type Mark uint8

const (
	Empty Mark = iota
	PlayerOne
	PlayerTwo
)

const (
	SymbolPlayerOne = "X"
	SymbolPlayerTwo = "O"
	SymbolEmpty     = "-"
)

// ParseMark - converts a player number (1 or 2) to a Mark.
func ParseMark(number int) (Mark, error) {
	switch number {
	case 1:
		return PlayerOne, nil
	case 2:
		return PlayerTwo, nil
	default:
		return Empty, fmt.Errorf("%w: got %d", apperror.ErrInvalidMark, number)
	}
}

// Opponent - returns the other player's mark. Empty has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerOne:
		return PlayerTwo
	case PlayerTwo:
		return PlayerOne
	default:
		return Empty
	}
}

func (that Mark) Symbol() string {
	switch that {
	case PlayerOne:
		return SymbolPlayerOne
	case PlayerTwo:
		return SymbolPlayerTwo
	default:
		return SymbolEmpty
	}
}

func (that Mark) String() string {
	return that.Symbol()
}
