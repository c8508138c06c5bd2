package shell

import (
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/domino14/bingo16/board"
)

// ShellCompleter completes command names, options and free cells.
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string
	Args    []string
	// Cells is set for commands whose arguments are free cells.
	Cells bool
}

var commandMetadata = map[string]CommandMetadata{
	"sim": {
		Options: []string{"-threads", "-seed", "-log"},
		Args:    []string{"random"},
		Cells:   true,
	},
	"selfplay": {
		Options: []string{"-threads", "-seed"},
	},
	"add":  {Cells: true},
	"eval": {Cells: true},
	"auto": {Args: []string{"on", "off"}},
	"help": {Args: []string{"sim", "selfplay", "script", "auto"}},
}

var commandNames = []string{
	"help", "show", "add", "undo", "reset", "auto", "best", "top", "eval",
	"sim", "selfplay", "script", "exit",
}

// Do implements the readline.AutoCompleter interface.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		if metadata, exists := commandMetadata[fields[0]]; exists {
			switch {
			case strings.HasPrefix(prefix, "-"):
				completions = metadata.Options
			case metadata.Cells:
				completions = append(c.freeCells(), metadata.Args...)
			default:
				completions = metadata.Args
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}

func (c *ShellCompleter) freeCells() []string {
	var b board.Board
	if c.sc != nil {
		b = c.sc.board
	}
	free := b.Unselected()
	out := make([]string, len(free))
	for i, cell := range free {
		out[i] = strconv.Itoa(cell)
	}
	return out
}
