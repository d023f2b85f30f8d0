package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"quill/lexer"
	"quill/stdlib"
)

const banner = "quill: type :quit or press Ctrl-D to exit"

// StartInteractive runs the REPL on the terminal with line editing, history
// and completion of keywords and builtin names.
func StartInteractive(opts Options) error {
	cfg := opts.Config
	s := newSession(os.Stdout, opts)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(completer(completionWords()))

	if cfg.History != "" {
		if f, err := os.Open(cfg.History); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			f, err := os.Create(cfg.History)
			if err != nil {
				s.logger.Debug("history not saved", "path", cfg.History, "err", err)
				return
			}
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}()
	}

	fmt.Println(banner)
	for {
		src, err := readInput(ln, cfg.Prompt, cfg.Continuation)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return fmt.Errorf("repl: read input: %w", err)
		}

		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		if trimmed == quitCommand {
			return nil
		}

		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		s.eval(src)
	}
}

// readInput keeps prompting with the continuation prompt while the input is
// incomplete. Ctrl-C drops everything read so far.
func readInput(ln *liner.State, prompt, cont string) (string, error) {
	var b strings.Builder

	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if err != nil {
			if errors.Is(err, io.EOF) && b.Len() > 0 {
				return b.String(), nil
			}
			return "", err
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !incomplete(b.String()) {
			return b.String(), nil
		}
	}
}

func completionWords() []string {
	words := stdlib.Names()
	for keyword := range lexer.Keywords {
		words = append(words, keyword)
	}
	sort.Strings(words)
	return words
}

// completer completes the identifier under the cursor at the end of line.
func completer(words []string) liner.Completer {
	return func(line string) []string {
		start := strings.LastIndexFunc(line, func(r rune) bool {
			return !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
		}) + 1
		prefix := line[start:]
		if prefix == "" {
			return nil
		}

		var matches []string
		for _, word := range words {
			if strings.HasPrefix(word, prefix) {
				matches = append(matches, line[:start]+word)
			}
		}
		return matches
	}
}
