// cmd/symdiff-repl: interactive shell over the symdiff core
//
// Run: go run ./cmd/symdiff-repl [-history path]
//
// A plain line is parsed and becomes the current expression. Lines starting
// with ':' are commands; type :help for the list.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"github.com/kr/pretty"
	"github.com/peterh/liner"

	symdiff "github.com/SadykovFK/SymbDiffProject"
)

const (
	historyFile = ".symdiff_history"
	prompt      = "d> "
)

const helpText = `commands:
  <expr>             parse and make current (evaluated when all variables are bound)
  :set name=value    bind a variable
  :unset name        remove a binding
  :env               list bindings
  :eval              evaluate the current expression
  :diff name [n]     replace the current expression by its n-th derivative (default 1)
  :subst name=value  substitute a constant into the current expression
  :tree              dump the node structure
  :json              print the JSON tree
  :help              show this text
  :quit              exit`

// session is the REPL state. It is driven line by line so it can be tested
// without a terminal.
type session struct {
	out     io.Writer
	env     map[string]float64
	current *symdiff.Expr[float64]
}

func newSession(out io.Writer) *session {
	return &session{out: out, env: map[string]float64{}}
}

func main() {
	histPath := flag.String("history", defaultHistoryPath(), "history file (empty disables history)")
	flag.Parse()

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if *histPath != "" {
		if f, err := os.Open(*histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(*histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	fmt.Println("symdiff REPL. Ctrl+D exits, :help lists commands.")
	s := newSession(os.Stdout)
	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)
		quit, err := s.handle(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		if quit {
			return
		}
	}
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFile)
}

// handle runs one input line and reports whether the session should end.
func (s *session) handle(line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, ":") {
		return false, s.setCurrent(line)
	}
	cmd, rest, _ := strings.Cut(line[1:], " ")
	rest = strings.TrimSpace(rest)
	switch strings.ToLower(cmd) {
	case "quit", "q":
		return true, nil
	case "help":
		fmt.Fprintln(s.out, helpText)
	case "set":
		name, v, err := parseBinding(rest)
		if err != nil {
			return false, err
		}
		s.env[name] = v
	case "unset":
		delete(s.env, rest)
	case "env":
		names := make([]string, 0, len(s.env))
		for n := range s.env {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			fmt.Fprintf(s.out, "%s = %s\n", n, strconv.FormatFloat(s.env[n], 'g', -1, 64))
		}
	case "eval":
		e, err := s.need()
		if err != nil {
			return false, err
		}
		v, err := e.Evaluate(s.env)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(s.out, strconv.FormatFloat(v, 'g', -1, 64))
	case "diff":
		e, err := s.need()
		if err != nil {
			return false, err
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 || len(fields) > 2 {
			return false, errors.New("usage: :diff name [n]")
		}
		n := 1
		if len(fields) == 2 {
			if n, err = strconv.Atoi(fields[1]); err != nil || n < 0 {
				return false, fmt.Errorf("invalid order %q", fields[1])
			}
		}
		s.current = e.DerivativeN(fields[0], n)
		fmt.Fprintln(s.out, s.current)
	case "subst":
		e, err := s.need()
		if err != nil {
			return false, err
		}
		name, v, err := parseBinding(rest)
		if err != nil {
			return false, err
		}
		s.current = e.Substitute(name, v)
		fmt.Fprintln(s.out, s.current)
	case "tree":
		e, err := s.need()
		if err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "%# v\n", pretty.Formatter(e))
	case "json":
		e, err := s.need()
		if err != nil {
			return false, err
		}
		j, err := symdiff.ToJSON(e)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(s.out, j)
	default:
		return false, fmt.Errorf("unknown command :%s (try :help)", cmd)
	}
	return false, nil
}

func (s *session) setCurrent(src string) error {
	e, err := symdiff.Parse(src)
	if err != nil {
		var pe *symdiff.ParseError
		if errors.As(err, &pe) {
			return fmt.Errorf("%w\n%s", err, pe.Snippet(src))
		}
		return err
	}
	s.current = e
	fmt.Fprintln(s.out, e)
	for _, name := range e.Variables() {
		if _, ok := s.env[name]; !ok {
			return nil
		}
	}
	v, err := e.Evaluate(s.env)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "= %s\n", strconv.FormatFloat(v, 'g', -1, 64))
	return nil
}

func (s *session) need() (*symdiff.Expr[float64], error) {
	if s.current == nil {
		return nil, errors.New("no current expression")
	}
	return s.current, nil
}

func parseBinding(arg string) (string, float64, error) {
	name, value, ok := strings.Cut(arg, "=")
	name, value = strings.TrimSpace(name), strings.TrimSpace(value)
	if !ok || name == "" {
		return "", 0, fmt.Errorf("invalid binding %q, want name=value", arg)
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return "", 0, fmt.Errorf("binding %s: %w", name, err)
	}
	return name, v, nil
}
