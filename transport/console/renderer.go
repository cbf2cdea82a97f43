package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

// clearScreen moves the cursor home and wipes the terminal.
const clearScreen = "\033[H\033[2J"

type Renderer struct {
	out   io.Writer
	clear bool
}

// NewRenderer - clear=false keeps the history on screen, which is what tests and pipes want.
func NewRenderer(out io.Writer, clear bool) *Renderer {
	return &Renderer{
		out:   out,
		clear: clear,
	}
}

func (that *Renderer) Render(board entity.Board) {
	if that.clear {
		fmt.Fprint(that.out, clearScreen)
	}

	fmt.Fprintln(that.out, FormatBoard(board))
}

func (that *Renderer) Announce(message string) {
	fmt.Fprintln(that.out, message)
}

// FormatBoard - three rows, every mark prefixed by a space.
func FormatBoard(board entity.Board) string {
	var text strings.Builder

	for i, cell := range board {
		text.WriteString(" ")
		text.WriteString(cell.Symbol())

		if (i+1)%3 == 0 {
			text.WriteString("\n")
		}
	}

	return text.String()
}
