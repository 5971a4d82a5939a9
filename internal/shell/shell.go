// Package shell runs the interactive chat loop of the cooking assistant.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

const (
	// Prompt is printed before every input line
	Prompt = "› "
	// ContinuationPrompt is printed while a command continues over lines
	ContinuationPrompt = "… "

	banner  = "Cooking assistant ready. Type 'help' for commands, 'exit' to leave."
	goodbye = "Goodbye, happy cooking!"
)

var exitWords = map[string]struct{}{
	"exit": {},
	"quit": {},
	"bye":  {},
}

// Dispatcher turns one command into display lines
type Dispatcher interface {
	Dispatch(ctx context.Context, raw string) []string
}

// Shell reads commands from in and writes replies to out
type Shell struct {
	dispatcher Dispatcher
	in         *bufio.Reader
	out        io.Writer
	styles     Styles
	logger     *zap.Logger
}

// Option configures a Shell
type Option func(*Shell)

// WithStyles sets the output styles
func WithStyles(s Styles) Option {
	return func(sh *Shell) { sh.styles = s }
}

// WithLogger sets the shell logger
func WithLogger(l *zap.Logger) Option {
	return func(sh *Shell) { sh.logger = l }
}

// New creates a Shell. Output is unstyled unless WithStyles is given.
func New(d Dispatcher, in io.Reader, out io.Writer, opts ...Option) *Shell {
	sh := &Shell{
		dispatcher: d,
		in:         bufio.NewReader(in),
		out:        out,
		styles:     PlainStyles(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(sh)
	}
	return sh
}

// Run loops until an exit word, end of input or ctx is cancelled. A line
// ending in a backslash continues on the next line.
func (sh *Shell) Run(ctx context.Context) error {
	sh.println(sh.styles.render(sh.styles.Banner, banner))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		command, err := sh.readCommand()
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read input: %w", err)
		}

		trimmed := strings.TrimSpace(command)
		if _, ok := exitWords[strings.ToLower(trimmed)]; ok {
			sh.println(sh.styles.render(sh.styles.Hint, goodbye))
			return nil
		}
		if trimmed != "" {
			sh.logger.Debug("shell command", zap.Int("bytes", len(trimmed)))
			sh.printReply(sh.dispatcher.Dispatch(ctx, trimmed))
		}

		if errors.Is(err, io.EOF) {
			sh.println("")
			sh.println(sh.styles.render(sh.styles.Hint, goodbye))
			return nil
		}
	}
}

func (sh *Shell) readCommand() (string, error) {
	var parts []string
	prompt := Prompt
	for {
		fmt.Fprint(sh.out, sh.styles.render(sh.styles.Prompt, prompt))
		line, err := sh.in.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")

		if cont, ok := strings.CutSuffix(line, `\`); ok && err == nil {
			parts = append(parts, cont)
			prompt = ContinuationPrompt
			continue
		}
		parts = append(parts, line)
		return strings.Join(parts, "\n"), err
	}
}

func (sh *Shell) printReply(lines []string) {
	for i, line := range lines {
		switch {
		case i == 0 && len(lines) > 1:
			sh.println(sh.styles.render(sh.styles.Heading, line))
		case len(lines) == 1 && isNotice(line):
			sh.println(sh.styles.render(sh.styles.Notice, line))
		default:
			sh.println(line)
		}
	}
}

func isNotice(line string) bool {
	for _, prefix := range []string{"Unrecognized command", "Usage:", "Model call failed", "Model support is not configured"} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func (sh *Shell) println(s string) {
	fmt.Fprintln(sh.out, s)
}
