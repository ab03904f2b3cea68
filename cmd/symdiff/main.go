// cmd/symdiff: evaluate or differentiate an infix expression
//
// Usage:
//
//	symdiff --eval "x*y + 2" x=3 y=4
//	symdiff --diff "sin(x)*(2+y)^3" --by x
//
// Exit status is 0 on success and 1 on any parse or evaluation failure, with
// the message on stderr.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"

	symdiff "github.com/SadykovFK/SymbDiffProject"
)

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		essentials.Die(err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("symdiff", flag.ContinueOnError)
	fs.SetOutput(stderr)
	evalSrc := fs.String("eval", "", "evaluate `expr`; remaining arguments are name=value bindings")
	diffSrc := fs.String("diff", "", "differentiate `expr`")
	by := fs.String("by", "", "variable `name` to differentiate by (with --diff)")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: symdiff --eval <expr> [name=value ...]")
		fmt.Fprintln(stderr, "       symdiff --diff <expr> --by <name>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case *evalSrc != "" && *diffSrc != "":
		return errors.New("--eval and --diff are mutually exclusive")
	case *evalSrc != "":
		if *by != "" {
			return errors.New("--by only applies to --diff")
		}
		env, err := parseBindings(fs.Args())
		if err != nil {
			return err
		}
		e, err := parse(*evalSrc)
		if err != nil {
			return err
		}
		v, err := e.Evaluate(env)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, strconv.FormatFloat(v, 'g', -1, 64))
		return nil
	case *diffSrc != "":
		if *by == "" {
			return errors.New("--diff needs --by <name>")
		}
		if fs.NArg() > 0 {
			return errors.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
		}
		e, err := parse(*diffSrc)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, e.Derivative(*by).String())
		return nil
	}
	fs.Usage()
	return errors.New("one of --eval or --diff is required")
}

// parse attaches a caret snippet to syntax errors.
func parse(src string) (*symdiff.Expr[float64], error) {
	e, err := symdiff.Parse(src)
	var pe *symdiff.ParseError
	if errors.As(err, &pe) {
		return nil, fmt.Errorf("%w\n%s", err, pe.Snippet(src))
	}
	return e, err
}

func parseBindings(args []string) (map[string]float64, error) {
	env := make(map[string]float64, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, errors.Errorf("invalid binding %q, want name=value", arg)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "binding %s", name)
		}
		env[name] = v
	}
	return env, nil
}
