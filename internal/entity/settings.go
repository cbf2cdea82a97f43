package entity

import (
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

type Difficulty int

const (
	Easy Difficulty = iota + 1
	Medium
	Hard
	Expert
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
	DifficultyExpert = "expert"
	DifficultyRandom = "random"
)

var difficulties = [...]Difficulty{Easy, Medium, Hard, Expert}

// ParseDifficulty - converts a difficulty name into a tier. "random" is resolved here, once.
func ParseDifficulty(name string, rng *rand.Rand) (Difficulty, error) {
	switch name {
	case DifficultyEasy:
		return Easy, nil
	case DifficultyMedium:
		return Medium, nil
	case DifficultyHard:
		return Hard, nil
	case DifficultyExpert:
		return Expert, nil
	case DifficultyRandom:
		return difficulties[rng.Intn(len(difficulties))], nil
	default:
		return 0, fmt.Errorf("%w: got %q", apperror.ErrInvalidDifficulty, name)
	}
}

// IsValidDifficulty - checks the name without resolving "random".
func IsValidDifficulty(name string) bool {
	switch name {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExpert, DifficultyRandom:
		return true
	default:
		return false
	}
}

func (that Difficulty) String() string {
	switch that {
	case Easy:
		return DifficultyEasy
	case Medium:
		return DifficultyMedium
	case Hard:
		return DifficultyHard
	case Expert:
		return DifficultyExpert
	default:
		return fmt.Sprintf("difficulty(%d)", int(that))
	}
}

type GameMode int

const (
	PlayerVsPlayer GameMode = iota + 1
	PlayerVsAI
	AIVsAI
)

const (
	ModePlayerVsPlayer = "pvsp"
	ModePlayerVsAI     = "pvsai"
	ModeAIVsAI         = "aivsai"
)

func ParseGameMode(name string) (GameMode, error) {
	switch name {
	case ModePlayerVsPlayer:
		return PlayerVsPlayer, nil
	case ModePlayerVsAI:
		return PlayerVsAI, nil
	case ModeAIVsAI:
		return AIVsAI, nil
	default:
		return 0, fmt.Errorf("%w: got %q", apperror.ErrInvalidGameMode, name)
	}
}

// HasAI - reports whether at least one side is driven by a bot.
func (that GameMode) HasAI() bool {
	return that == PlayerVsAI || that == AIVsAI
}

func (that GameMode) String() string {
	switch that {
	case PlayerVsPlayer:
		return ModePlayerVsPlayer
	case PlayerVsAI:
		return ModePlayerVsAI
	case AIVsAI:
		return ModeAIVsAI
	default:
		return fmt.Sprintf("mode(%d)", int(that))
	}
}
