package usecase

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/testing/suite"
)

type mockRenderer struct {
	mock.Mock
}

func (that *mockRenderer) Render(board entity.Board) {
	that.Called(board)
}

func newMockRenderer(t *testing.T) *mockRenderer {
	t.Helper()

	render := &mockRenderer{}
	render.On("Render", mock.AnythingOfType("entity.Board")).Return()

	return render
}

type reply struct {
	cell int
	err  error
}

// scriptedInput answers move requests from a fixed list, then reports io.EOF.
type scriptedInput struct {
	replies  []reply
	requests int
}

func (that *scriptedInput) RequestMove(_ context.Context, _ entity.Board, _ entity.Mark) (int, error) {
	that.requests++
	if len(that.replies) == 0 {
		return 0, io.EOF
	}

	next := that.replies[0]
	that.replies = that.replies[1:]

	return next.cell, next.err
}

func cells(values ...int) []reply {
	replies := make([]reply, 0, len(values))
	for _, value := range values {
		replies = append(replies, reply{cell: value})
	}

	return replies
}

func noDelay() *time.Duration {
	delay := time.Duration(0)
	return &delay
}

func TestNewGameManager(t *testing.T) {
	_, st := suite.New(t)

	t.Run("Invalid game mode", func(t *testing.T) {
		// When: creating a manager with an unknown mode
		manager, err := NewGameManager(st.Logger, RoundSettings{Mode: "online"}, nil, nil, st.Rand)

		// Then: ErrInvalidGameMode should be returned
		require.ErrorIs(t, err, apperror.ErrInvalidGameMode)
		assert.Nil(t, manager)
	})

	t.Run("Invalid difficulty for an AI mode", func(t *testing.T) {
		manager, err := NewGameManager(st.Logger, RoundSettings{Mode: "pvsai", Difficulty: "godlike", AIMark: 2}, nil, nil, st.Rand)

		require.ErrorIs(t, err, apperror.ErrInvalidDifficulty)
		assert.Nil(t, manager)
	})

	t.Run("Invalid mark for an AI mode", func(t *testing.T) {
		manager, err := NewGameManager(st.Logger, RoundSettings{Mode: "aivsai", Difficulty: "easy", AIMark: 0}, nil, nil, st.Rand)

		require.ErrorIs(t, err, apperror.ErrInvalidMark)
		assert.Nil(t, manager)
	})

	t.Run("Player vs player ignores AI settings", func(t *testing.T) {
		manager, err := NewGameManager(st.Logger, RoundSettings{Mode: "pvsp", Difficulty: "bogus", AIMark: 7}, nil, nil, st.Rand)

		require.NoError(t, err)
		assert.Equal(t, entity.PlayerVsPlayer, manager.Mode())
	})

	t.Run("AI vs AI delay defaults", func(t *testing.T) {
		manager, err := NewGameManager(st.Logger, RoundSettings{Mode: "aivsai", Difficulty: "expert", AIMark: 1}, nil, nil, st.Rand)

		require.NoError(t, err)
		assert.Equal(t, DefaultDelay, manager.delay)
	})

	t.Run("AI vs AI delay can be set", func(t *testing.T) {
		delay := 2 * time.Second
		manager, err := NewGameManager(st.Logger, RoundSettings{Mode: "aivsai", Difficulty: "expert", AIMark: 1, Delay: &delay}, nil, nil, st.Rand)

		require.NoError(t, err)
		assert.Equal(t, delay, manager.delay)
	})
}

func TestGameManager_PlayAIVsAI(t *testing.T) {
	for seed := range int64(32) {
		ctx, st := suite.NewWithSeed(t, seed)

		// Given: two expert bots with no pacing
		render := newMockRenderer(t)
		manager, err := NewGameManager(st.Logger, RoundSettings{
			Mode:       "aivsai",
			Difficulty: "expert",
			AIMark:     1,
			Delay:      noDelay(),
		}, nil, render, st.Rand)
		require.NoError(t, err)

		// When: the round is played to the end
		round, err := manager.Play(ctx)

		// Then: it ends within 9 moves with a single winner or a draw
		require.NoError(t, err)
		require.True(t, round.IsFinished())
		assert.LessOrEqual(t, len(round.Moves), entity.BoardSize)
		assert.Equal(t, entity.PlayerOne, round.Moves[0].Mark)

		winsOne := round.Board.IsWinning(entity.PlayerOne)
		winsTwo := round.Board.IsWinning(entity.PlayerTwo)
		assert.False(t, winsOne && winsTwo)
		if !winsOne && !winsTwo {
			assert.True(t, round.Board.IsDraw())
			assert.Equal(t, "draw", manager.Outcome(round))
		}

		// Then: the board was rendered once per move
		render.AssertNumberOfCalls(t, "Render", len(round.Moves))
	}
}

func TestGameManager_PlayAIVsAIAlternatesMarks(t *testing.T) {
	for seed := range int64(32) {
		ctx, st := suite.NewWithSeed(t, seed)

		manager, err := NewGameManager(st.Logger, RoundSettings{
			Mode:       "aivsai",
			Difficulty: "expert",
			AIMark:     2,
			Delay:      noDelay(),
		}, nil, newMockRenderer(t), st.Rand)
		require.NoError(t, err)

		round, err := manager.Play(ctx)

		require.NoError(t, err)
		assert.Equal(t, entity.PlayerTwo, round.Moves[0].Mark, "agent 1 uses the configured mark and moves first")
		for i, move := range round.Moves {
			if i%2 == 0 {
				assert.Equal(t, entity.PlayerTwo, move.Mark)
			} else {
				assert.Equal(t, entity.PlayerOne, move.Mark)
			}
		}
	}
}

func TestGameManager_PlayPlayerVsPlayer(t *testing.T) {
	t.Run("Player one wins the top row", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: scripted moves where X takes 0,1,2 and O takes 3,4
		input := &scriptedInput{replies: cells(0, 3, 1, 4, 2)}
		render := newMockRenderer(t)
		manager, err := NewGameManager(st.Logger, RoundSettings{Mode: "pvsp"}, input, render, st.Rand)
		require.NoError(t, err)

		// When: the round is played
		round, err := manager.Play(ctx)

		// Then: player one wins after five renders
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerOne, round.Winner)
		assert.Equal(t, "player 1 won", manager.Outcome(round))
		assert.Equal(t, entity.Board{1, 1, 1, 2, 2, 0, 0, 0, 0}, round.Board)
		render.AssertNumberOfCalls(t, "Render", 5)
	})

	t.Run("Invalid targets and malformed input are asked again", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: out of range, occupied and malformed replies mixed into the game
		input := &scriptedInput{replies: []reply{
			{cell: 0},
			{cell: 0},                       // occupied
			{cell: 9},                       // out of range
			{err: apperror.ErrInvalidInput}, // not a number
			{cell: -1},                      // out of range
			{cell: 3},
			{cell: 1}, {cell: 4}, {cell: 2},
		}}
		render := newMockRenderer(t)
		manager, err := NewGameManager(st.Logger, RoundSettings{Mode: "pvsp"}, input, render, st.Rand)
		require.NoError(t, err)

		// When: the round is played
		round, err := manager.Play(ctx)

		// Then: only valid moves reach the board
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerOne, round.Winner)
		assert.Len(t, round.Moves, 5)
		assert.Equal(t, 9, input.requests)
		render.AssertNumberOfCalls(t, "Render", 5)
	})

	t.Run("Draw", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: moves that fill the board without a line
		input := &scriptedInput{replies: cells(0, 1, 2, 4, 3, 5, 7, 6, 8)}
		render := newMockRenderer(t)
		manager, err := NewGameManager(st.Logger, RoundSettings{Mode: "pvsp"}, input, render, st.Rand)
		require.NoError(t, err)

		// When: the round is played
		round, err := manager.Play(ctx)

		// Then: it ends in a draw after nine renders
		require.NoError(t, err)
		assert.True(t, round.IsDraw())
		assert.Equal(t, "draw", manager.Outcome(round))
		render.AssertNumberOfCalls(t, "Render", 9)
	})

	t.Run("Closed input aborts the round", func(t *testing.T) {
		ctx, st := suite.New(t)

		input := &scriptedInput{replies: cells(0)}
		manager, err := NewGameManager(st.Logger, RoundSettings{Mode: "pvsp"}, input, newMockRenderer(t), st.Rand)
		require.NoError(t, err)

		round, err := manager.Play(ctx)

		require.ErrorIs(t, err, io.EOF)
		assert.False(t, round.IsFinished())
		assert.Len(t, round.Moves, 1)
	})
}

// firstFreeInput always plays the lowest free cell for the human.
type firstFreeInput struct {
	marks []entity.Mark
}

func (that *firstFreeInput) RequestMove(_ context.Context, board entity.Board, mark entity.Mark) (int, error) {
	that.marks = append(that.marks, mark)
	return board.EmptyCells()[0], nil
}

func TestGameManager_PlayPlayerVsAI(t *testing.T) {
	humanFirst, botFirst := 0, 0

	for seed := range int64(40) {
		ctx, st := suite.NewWithSeed(t, seed)

		// Given: a human that always takes the lowest free cell against an expert bot playing O
		input := &firstFreeInput{}
		render := newMockRenderer(t)
		manager, err := NewGameManager(st.Logger, RoundSettings{Mode: "pvsai", Difficulty: "expert", AIMark: 2}, input, render, st.Rand)
		require.NoError(t, err)

		// When: the round is played
		round, err := manager.Play(ctx)

		// Then: the human always played X
		require.NoError(t, err)
		require.True(t, round.IsFinished())
		for _, mark := range input.marks {
			require.Equal(t, entity.PlayerOne, mark)
		}
		assert.Contains(t, []string{"you won", "you lost", "draw"}, manager.Outcome(round))
		render.AssertNumberOfCalls(t, "Render", len(round.Moves))

		if round.Moves[0].Mark == entity.PlayerOne {
			humanFirst++
		} else {
			botFirst++
		}
	}

	// Then: both sides got to open at least once
	assert.Positive(t, humanFirst)
	assert.Positive(t, botFirst)
}

func TestGameManager_PacingHonoursContext(t *testing.T) {
	_, st := suite.New(t)

	// Given: an AI vs AI round with a long delay and a cancelled context
	delay := time.Hour
	manager, err := NewGameManager(st.Logger, RoundSettings{Mode: "aivsai", Difficulty: "easy", AIMark: 1, Delay: &delay}, nil, newMockRenderer(t), st.Rand)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// When: the round is played
	round, err := manager.Play(ctx)

	// Then: it stops after the first move
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Len(t, round.Moves, 1)
}

func TestGameManager_PacingBetweenMoves(t *testing.T) {
	t.Run("AI vs AI pauses between moves but not after the last one", func(t *testing.T) {
		for _, difficulty := range []string{"easy", "expert"} {
			for seed := range int64(16) {
				ctx, st := suite.NewWithSeed(t, seed)

				// Given: an AI vs AI round whose pauses are counted instead of waited
				delay := 250 * time.Millisecond
				manager, err := NewGameManager(st.Logger, RoundSettings{
					Mode:       "aivsai",
					Difficulty: difficulty,
					AIMark:     1,
					Delay:      &delay,
				}, nil, newMockRenderer(t), st.Rand)
				require.NoError(t, err)

				var waited []time.Duration
				manager.pause = func(_ context.Context, d time.Duration) error {
					waited = append(waited, d)
					return nil
				}

				// When: the round is played to the end
				round, err := manager.Play(ctx)

				// Then: there is one pause of the configured delay between consecutive moves
				require.NoError(t, err)
				require.True(t, round.IsFinished())
				require.Len(t, waited, len(round.Moves)-1, "difficulty %s, seed %d", difficulty, seed)
				for _, d := range waited {
					assert.Equal(t, delay, d)
				}
			}
		}
	})

	t.Run("Rounds with a human never pause", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: a player vs player round and a player vs AI round with counted pauses
		pvp, err := NewGameManager(st.Logger, RoundSettings{Mode: "pvsp"}, &scriptedInput{replies: cells(0, 3, 1, 4, 2)}, newMockRenderer(t), st.Rand)
		require.NoError(t, err)
		pvai, err := NewGameManager(st.Logger, RoundSettings{Mode: "pvsai", Difficulty: "expert", AIMark: 2}, &firstFreeInput{}, newMockRenderer(t), st.Rand)
		require.NoError(t, err)

		pauses := 0
		count := func(_ context.Context, _ time.Duration) error {
			pauses++
			return nil
		}
		pvp.pause = count
		pvai.pause = count

		// When: both rounds are played
		_, err = pvp.Play(ctx)
		require.NoError(t, err)
		_, err = pvai.Play(ctx)
		require.NoError(t, err)

		// Then: nothing waited
		assert.Zero(t, pauses)
	})
}

func TestGameManager_PlayRecordsBotMoves(t *testing.T) {
	for seed := range int64(16) {
		ctx, st := suite.NewWithSeed(t, seed)

		// Given: two medium bots
		manager, err := NewGameManager(st.Logger, RoundSettings{
			Mode:       "aivsai",
			Difficulty: "medium",
			AIMark:     1,
			Delay:      noDelay(),
		}, nil, newMockRenderer(t), st.Rand)
		require.NoError(t, err)

		// When: the round is played
		round, err := manager.Play(ctx)
		require.NoError(t, err)

		// Then: every bot move was applied exactly once, replaying the history rebuilds the board
		var replayed entity.Board
		for _, move := range round.Moves {
			require.NoError(t, replayed.ApplyMove(move.Cell, move.Mark))
		}
		assert.Equal(t, replayed, round.Board)

		// Then: the round result agrees with the board
		winner, finished := round.Board.Result()
		assert.True(t, finished)
		assert.Equal(t, winner, round.Winner)
	}
}

func TestGameManager_Outcome(t *testing.T) {
	_, st := suite.New(t)

	manager, err := NewGameManager(st.Logger, RoundSettings{Mode: "aivsai", Difficulty: "easy", AIMark: 2}, nil, nil, st.Rand)
	require.NoError(t, err)

	round := entity.NewRound(entity.AIVsAI)
	assert.Equal(t, "unfinished", manager.Outcome(round))

	round.Status = entity.StatusFinished
	round.Winner = entity.PlayerTwo
	assert.Equal(t, "AI 1 won", manager.Outcome(round))

	round.Winner = entity.PlayerOne
	assert.Equal(t, "AI 2 won", manager.Outcome(round))
}
