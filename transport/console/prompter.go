package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

type inputLine struct {
	text string
	err  error
}

// Prompter reads human moves as 1-indexed cell numbers, one per line.
type Prompter struct {
	lines <-chan inputLine
	out   io.Writer
}

// NewPrompter - starts reading in. The reader goroutine lives until in is closed.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	lines := make(chan inputLine)
	go scanLines(bufio.NewScanner(in), lines)

	return &Prompter{
		lines: lines,
		out:   out,
	}
}

// RequestMove - returns the 0-indexed cell. Non-numeric input gives apperror.ErrInvalidInput.
func (that *Prompter) RequestMove(ctx context.Context, _ entity.Board, mark entity.Mark) (int, error) {
	fmt.Fprintf(that.out, "player %d's turn :\nmove : ", mark)

	line, err := that.readLine(ctx)
	if err != nil {
		return 0, err
	}

	position, err := strconv.Atoi(line)
	if err != nil {
		fmt.Fprintln(that.out, "input numbers")
		return 0, fmt.Errorf("%w: %q", apperror.ErrInvalidInput, line)
	}

	return position - 1, nil
}

// WaitForEnter - blocks until the player presses enter between rounds.
func (that *Prompter) WaitForEnter(ctx context.Context) error {
	fmt.Fprint(that.out, "press enter to play again")

	_, err := that.readLine(ctx)

	return err
}

func (that *Prompter) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case next, ok := <-that.lines:
		if !ok {
			return "", io.EOF
		}

		if next.err != nil {
			return "", next.err
		}

		return strings.TrimSpace(next.text), nil
	}
}

func scanLines(scanner *bufio.Scanner, lines chan<- inputLine) {
	defer close(lines)

	for scanner.Scan() {
		lines <- inputLine{text: scanner.Text()}
	}

	if err := scanner.Err(); err != nil {
		lines <- inputLine{err: fmt.Errorf("failed to read input: %w", err)}
	}
}
