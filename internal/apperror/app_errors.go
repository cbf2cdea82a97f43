package apperror

import "errors"

// configuration errors, returned at construction time.
var (
	ErrInvalidMark       = errors.New("mark should be either 1 or 2")
	ErrInvalidGameMode   = errors.New("game mode should be one of: pvsp, pvsai, aivsai")
	ErrInvalidDifficulty = errors.New("difficulty should be one of: easy, medium, hard, expert, random")
)

// invariant violations, these never happen with a correct game loop.
var (
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell index")
	ErrNoAvailableMoves = errors.New("no available moves")
	ErrGameFinished     = errors.New("game is already finished")
)

// ErrInvalidInput - malformed human input, the caller asks again.
var ErrInvalidInput = errors.New("invalid input")
