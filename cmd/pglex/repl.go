package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/cabewaldrop/pglex/internal/logging"
	"github.com/cabewaldrop/pglex/internal/render"
	"github.com/cabewaldrop/pglex/internal/sql/lexer"
)

// dotCommands are special commands starting with '.'
var dotCommands = map[string]string{
	".help":   "Show this help message",
	".quit":   "Exit the program",
	".exit":   "Exit the program (alias for .quit)",
	".strict": "Show or set the policy: .strict on|off",
	".clear":  "Clear the screen",
}

// session holds REPL state.
type session struct {
	out    io.Writer
	r      *render.Renderer
	policy lexer.Policy
	log    *slog.Logger
	done   bool
}

func newSession(out io.Writer, r *render.Renderer, policy lexer.Policy) *session {
	return &session{
		out:    out,
		r:      r,
		policy: policy,
		log:    logging.WithComponent("repl"),
	}
}

// repl implements the Read-Eval-Print Loop. Statements may span several
// lines and end at a semicolon.
func (s *session) repl(in io.Reader) {
	reader := bufio.NewReader(in)
	var inputBuffer strings.Builder

	for !s.done {
		if inputBuffer.Len() == 0 {
			fmt.Fprint(s.out, "pglex> ")
		} else {
			fmt.Fprint(s.out, "  ...> ")
		}

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			s.log.Error("read input", "err", err)
			return
		}
		eof := errors.Is(err, io.EOF)

		line = strings.TrimRight(line, "\n\r")
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
		case inputBuffer.Len() == 0 && strings.HasPrefix(trimmed, "."):
			s.handleDotCommand(trimmed)
		default:
			inputBuffer.WriteString(line)
			pending := inputBuffer.String()
			inputBuffer.Reset()

			// Each terminated statement on the line is tokenized; text
			// after the last ';' carries over to the next line.
			for {
				i := strings.IndexByte(pending, ';')
				if i < 0 {
					break
				}
				s.tokenize(pending[:i+1])
				pending = pending[i+1:]
			}
			if rest := strings.TrimSpace(pending); rest != "" {
				inputBuffer.WriteString(rest)
				inputBuffer.WriteString(" ")
			}
		}

		if eof {
			if inputBuffer.Len() > 0 {
				s.tokenize(inputBuffer.String())
			}
			fmt.Fprintln(s.out, "\nGoodbye!")
			return
		}
	}
}

// tokenize lexes one statement and prints the result. It reports whether
// lexing succeeded. A missing terminator is supplied so the last word is
// not dropped.
func (s *session) tokenize(input string) bool {
	src := strings.ToLower(strings.TrimSpace(input))
	if !strings.Contains(src, ";") {
		src += ";"
	}

	tokens, err := lexer.NewString(src, lexer.WithPolicy(s.policy), lexer.WithLogger(s.log)).Tokenize()
	if err != nil {
		fmt.Fprint(s.out, s.r.Error(src, err))
		return false
	}
	fmt.Fprint(s.out, s.r.Tokens(tokens))
	return true
}

// handleDotCommand processes special dot commands.
func (s *session) handleDotCommand(cmd string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case ".help":
		names := make([]string, 0, len(dotCommands))
		for name := range dotCommands {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Fprintln(s.out, "\nAvailable commands:")
		for _, name := range names {
			fmt.Fprintf(s.out, "  %-12s %s\n", name, dotCommands[name])
		}
		fmt.Fprintln(s.out, "\nStatements:")
		fmt.Fprintln(s.out, "  SELECT col[, col...] FROM table;")
		fmt.Fprintln(s.out)

	case ".quit", ".exit":
		fmt.Fprintln(s.out, "Goodbye!")
		s.done = true

	case ".strict":
		if len(parts) > 1 {
			switch parts[1] {
			case "on":
				s.policy = lexer.Strict
			case "off":
				s.policy = lexer.Permissive
			default:
				fmt.Fprintf(s.out, "Usage: .strict on|off\n")
				return
			}
		}
		fmt.Fprintf(s.out, "Policy: %s\n", s.policy)

	case ".clear":
		// ANSI escape code to clear screen
		fmt.Fprint(s.out, "\033[H\033[2J")

	default:
		fmt.Fprintf(s.out, "Unknown command: %s\n", parts[0])
		fmt.Fprintln(s.out, "Type '.help' for available commands.")
	}
}
