package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/tinyrange/stackcc/internal/driver"
	"github.com/tinyrange/stackcc/internal/ir"
	"github.com/tinyrange/stackcc/internal/lexer"
	"github.com/tinyrange/stackcc/internal/parser"
)

const (
	historyFile = ".stackcc_history"
	promptMain  = "stackcc> "
	promptCont  = "......> "
)

const helpText = `Statements end with ';'. Variables persist for the session.
  :asm     print the assembly for the session so far
  :ir      print the stack code for the session so far
  :vars    list variables and their frame offsets
  :reset   forget all statements
  :quit    exit (Ctrl+D also exits)`

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

// session is the program typed so far. Every entry recompiles the whole of
// it so variable slots keep their first-use offsets.
type session struct {
	src  string
	last *driver.Result
}

// eval compiles the session extended by code and, on success, keeps it.
func (s *session) eval(code string) (int64, error) {
	src := s.src + code + "\n"
	r, err := driver.CompileResult(src)
	if err != nil {
		return 0, err
	}
	v, err := ir.Eval(r.Func)
	if err != nil {
		return 0, err
	}
	s.src, s.last = src, r
	return v, nil
}

func (s *session) reset() { s.src, s.last = "", nil }

// command handles a ':' line. It returns exit=true for :quit.
func (s *session) command(w io.Writer, line string) (exit bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Fprintln(w, helpText)
	case ":reset":
		s.reset()
	case ":asm":
		if s.last != nil {
			fmt.Fprint(w, s.last.Asm)
		}
	case ":ir":
		if s.last != nil {
			fmt.Fprint(w, s.last.Func)
		}
	case ":vars":
		if s.last != nil {
			for _, name := range s.last.Func.Frame.Names() {
				off, _ := s.last.Func.Frame.Lookup(name)
				fmt.Fprintf(w, "%s\t-%d(%%rbp)\n", name, off)
			}
		}
	default:
		fmt.Fprintln(w, "unknown command. Type :help for a list.")
	}
	return false
}

// incomplete reports whether src only failed because input ran out, so the
// prompt should ask for another line.
func incomplete(src string) bool {
	_, err := parser.ParseSource(src)
	var perr *parser.UnexpectedTokenError
	return errors.As(err, &perr) && perr.Tok.Type == lexer.EOF
}

func main() {
	os.Exit(repl())
}

func repl() int {
	fmt.Println("stackcc REPL. Type :help for commands, Ctrl+D to exit.")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	s := &session{}
	for {
		code, ok := readEntry(ln)
		if !ok {
			fmt.Println()
			return 0
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		if strings.HasPrefix(trimmed, ":") {
			if s.command(os.Stdout, trimmed) {
				return 0
			}
			continue
		}
		v, err := s.eval(code)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			continue
		}
		fmt.Println(blue(fmt.Sprintf("=> %d", v)))
	}
}

// readEntry reads lines until they form a complete program or fail for a
// reason more input cannot fix.
func readEntry(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || strings.TrimSpace(src) == "" {
			return src, true
		}
		if incomplete(src) {
			continue
		}
		return src, true
	}
}
