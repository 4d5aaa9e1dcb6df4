package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/NikitaCOEUR/promptkit/internal/logger"
	"github.com/NikitaCOEUR/promptkit/internal/parser"
	"github.com/chzyer/readline"
)

// ErrExit is returned by a handler to end the shell loop
var ErrExit = errors.New("exit")

// Config holds the readline session settings
type Config struct {
	Prompt       string
	HistoryFile  string // empty disables persistent history
	HistoryLimit int
	// BeforeLine runs before each non-blank line. An error is reported and
	// the line still runs.
	BeforeLine func() error
}

// Shell reads lines, completes them with a Completer and hands finished
// lines to a parse driver
type Shell struct {
	cfg       Config
	completer *Completer
	driver    *parser.Driver
	log       *logger.Logger

	stdout io.Writer
	stderr io.Writer
}

// NewShell creates a shell. Output goes to the process streams until Run
// attaches readline's own writers.
func NewShell(cfg Config, completer *Completer, driver *parser.Driver, log *logger.Logger) *Shell {
	if log == nil {
		log = logger.Discard()
	}
	return &Shell{
		cfg:       cfg,
		completer: completer,
		driver:    driver,
		log:       log.With("shell"),
		stdout:    os.Stdout,
		stderr:    os.Stderr,
	}
}

// Stdout is where handlers should print. It changes to readline's writer
// once Run starts so output does not garble the prompt.
func (s *Shell) Stdout() io.Writer {
	return s.stdout
}

// Run reads lines until EOF, ErrExit or ctx is done. Ctrl-C discards the
// current line. Typing '?' lists the completions for the next word
// without changing the line.
func (s *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.cfg.Prompt,
		HistoryFile:     s.cfg.HistoryFile,
		HistoryLimit:    s.cfg.HistoryLimit,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    s.completer,
		Listener:        readline.FuncListener(s.contextHelp),
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer func() { _ = rl.Close() }()

	s.stdout = rl.Stdout()
	s.stderr = rl.Stderr()
	s.completer.Out = rl.Stdout()

	s.log.Debug().Str("history", s.cfg.HistoryFile).Int("history_limit", s.cfg.HistoryLimit).Msg("Shell started")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if s.handle(line) {
			return nil
		}
	}
}

// handle runs one line and reports whether the shell should stop
func (s *Shell) handle(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if s.cfg.BeforeLine != nil {
		if err := s.cfg.BeforeLine(); err != nil {
			_, _ = fmt.Fprintf(s.stderr, "error: %v\n", err)
		}
	}

	err := s.driver.Run(line)
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrExit):
		return true
	default:
		_, _ = fmt.Fprintf(s.stderr, "error: %v\n", err)
		return false
	}
}

// contextHelp handles the '?' key: it removes the '?' readline already
// inserted and lists what may follow the text before the cursor.
func (s *Shell) contextHelp(line []rune, pos int, key rune) ([]rune, int, bool) {
	if key != '?' || pos < 1 || pos > len(line) {
		return line, pos, false
	}

	clean := make([]rune, 0, len(line)-1)
	clean = append(clean, line[:pos-1]...)
	clean = append(clean, line[pos:]...)

	text := []rune(string(clean[:pos-1]))
	if len(text) > 0 && text[len(text)-1] != ' ' {
		text = append(text, ' ')
	}

	cands := s.completer.Candidates(text, len(text))
	if len(cands) == 0 {
		if s.completer.Out != nil {
			_, _ = fmt.Fprintln(s.completer.Out, "  (no help available)")
		}
	} else {
		s.completer.writeHelp(cands)
	}
	return clean, pos - 1, true
}
