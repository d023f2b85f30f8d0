package repl

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"quill/ast"
	"quill/config"
	"quill/interpreter"
	"quill/lexer"
	"quill/object"
	"quill/parser"
	"quill/stdlib"
)

const (
	colorRed   = "\033[0;31m"
	colorReset = "\033[0m"

	quitCommand = ":quit"

	// longest input line Start accepts
	maxLineSize = 1 << 20
)

type Options struct {
	Config config.Config
	Logger *slog.Logger
}

// session keeps one global environment alive across inputs.
type session struct {
	out    io.Writer
	interp *interpreter.Interpreter
	env    *object.Environment
	color  bool
	logger *slog.Logger
}

func newSession(out io.Writer, opts Options) *session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &session{
		out:    out,
		interp: interpreter.New(stdlib.New(out), opts.Config.InterpreterOptions()...),
		env:    object.NewEnvironment(nil),
		color:  opts.Config.Color,
		logger: logger,
	}
}

func (s *session) errorf(format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	if s.color {
		msg = colorRed + msg + colorReset
	}
	fmt.Fprintln(s.out, msg)
}

// eval parses and runs src, printing parse errors or the resulting value.
// Let statements print nothing.
func (s *session) eval(src string) {
	program, errs := parser.Parse("", src)
	if len(errs) != 0 {
		for _, err := range errs {
			s.errorf("%v", err)
		}
		return
	}
	if len(program.Statements) == 0 {
		return
	}

	start := time.Now()
	result := s.interp.Eval(program, s.env)
	s.logger.Debug("evaluated input", "statements", len(program.Statements), "duration", time.Since(start))

	if result.Type() == object.ERROR_OBJ {
		s.errorf("%s", result.Inspect())
		return
	}
	if _, ok := program.Statements[len(program.Statements)-1].(*ast.LetStatement); ok {
		return
	}
	fmt.Fprintln(s.out, result.Inspect())
}

// incomplete reports whether src still has open brackets or an open string,
// in which case the REPL keeps reading continuation lines.
func incomplete(src string) bool {
	depth := 0
	for _, tok := range lexer.NewLexer("", src).Tokenize() {
		switch tok.Kind {
		case lexer.TokenBraceOpen, lexer.TokenBracketOpen, lexer.TokenCurlyBraceOpen:
			depth++
		case lexer.TokenBraceClose, lexer.TokenBracketClose, lexer.TokenCurlyBraceClose:
			depth--
		case lexer.TokenError:
			if strings.HasPrefix(tok.Text, "unterminated string") {
				return true
			}
		}
	}
	return depth > 0
}

// Start runs a line based loop over in until EOF or :quit. Read failures,
// including lines longer than maxLineSize, end the loop with an error.
func Start(in io.Reader, out io.Writer, opts Options) error {
	cfg := opts.Config
	s := newSession(out, opts)
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var buf strings.Builder
	for {
		if buf.Len() == 0 {
			fmt.Fprint(out, cfg.Prompt)
		} else {
			fmt.Fprint(out, cfg.Continuation)
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				fmt.Fprintln(out)
				return fmt.Errorf("repl: read input: %w", err)
			}
			if buf.Len() > 0 {
				fmt.Fprintln(out)
				s.eval(buf.String())
			}
			return nil
		}

		line := scanner.Text()
		if buf.Len() == 0 && strings.TrimSpace(line) == quitCommand {
			return nil
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(line)

		src := buf.String()
		if incomplete(src) {
			continue
		}
		buf.Reset()
		s.eval(src)
	}
}
