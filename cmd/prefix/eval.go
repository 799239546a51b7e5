package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/prefix"
)

// evaluator evaluates expressions and prints their results.
type evaluator struct {
	vars   [3]float64
	format string
	echo   bool
	// ctx is used instead of float64 evaluation when a precision is set.
	ctx *prefix.Context
	log *logrus.Logger
}

func newEvaluator(cfg *config, log *logrus.Logger) *evaluator {
	ev := &evaluator{
		vars:   [3]float64{cfg.X, cfg.Y, cfg.Z},
		format: cfg.Format + "\n",
		echo:   cfg.Echo,
		log:    log,
	}
	if cfg.Prec > 0 {
		ev.ctx = prefix.NewContext(
			prefix.Prec(uint(cfg.Prec)),
			prefix.SetVars(big.NewFloat(cfg.X), big.NewFloat(cfg.Y), big.NewFloat(cfg.Z)),
		)
	}
	return ev
}

// set changes the value of a variable.
func (ev *evaluator) set(name string, val float64) error {
	i := strings.Index("xyz", name)
	if len(name) != 1 || i < 0 {
		return fmt.Errorf("no variable named %q", name)
	}
	ev.vars[i] = val
	if ev.ctx != nil {
		ev.ctx.Set(name, big.NewFloat(val))
	}
	return nil
}

// eval evaluates e and writes its value to w. Domain errors from
// arbitrary-precision evaluation are written in place of the value.
func (ev *evaluator) eval(w io.Writer, e prefix.Expr) error {
	ev.log.WithFields(logrus.Fields{"prefix": e.Prefix(), "postfix": e.String()}).Debug("evaluating")
	if ev.echo {
		if _, err := fmt.Fprintf(w, "%s : %s = ", e.Prefix(), e); err != nil {
			return err
		}
	}
	if ev.ctx == nil {
		_, err := fmt.Fprintf(w, ev.format, e.Eval(ev.vars[0], ev.vars[1], ev.vars[2]))
		return err
	}
	r := ev.ctx.Eval(e)
	if r == nil {
		ev.log.WithError(ev.ctx.Err()).Debug("no value")
		_, err := fmt.Fprintln(w, ev.ctx.Err())
		return err
	}
	_, err := fmt.Fprintf(w, ev.format, r)
	return err
}

func newEvalCmd(a *app) *cobra.Command {
	var inname string
	cmd := &cobra.Command{
		Use:   "eval [expr...]",
		Short: "Evaluate expressions",
		Long: `Evaluate each argument as an expression. With no arguments, or with --in,
evaluate a stream of expressions separated by whitespace.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ev := newEvaluator(a.cfg, a.log)
			out := cmd.OutOrStdout()
			in, c, err := infile(cmd.InOrStdin(), inname, len(args) == 0)
			if err != nil {
				return err
			}
			if c != nil {
				defer c.Close()
			}
			if in != nil {
				if err := evalStream(out, ev, in); err != nil {
					return err
				}
			}
			for _, arg := range args {
				e, err := prefix.ParseString(arg)
				if err != nil {
					return fmt.Errorf("%q: %w", arg, err)
				}
				if err := ev.eval(out, e); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	return cmd
}

// infile opens the input stream. The closer is nil when there is nothing to
// close, and the stream is nil when there is no stream input.
func infile(stdin io.Reader, inname string, std bool) (io.RuneScanner, io.Closer, error) {
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			return nil, nil, err
		}
		return bufio.NewReader(f), f, nil
	case inname == "-", std:
		return bufio.NewReader(stdin), nil, nil
	}
	return nil, nil, nil
}

// evalStream parses and evaluates expressions from in until it is exhausted.
func evalStream(w io.Writer, ev *evaluator, in io.RuneScanner) error {
	for n := 1; ; n++ {
		if err := skipSpace(in); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		e, err := prefix.Parse(in, prefix.Partial())
		if err != nil {
			return fmt.Errorf("expression %d: %w", n, err)
		}
		if err := ev.eval(w, e); err != nil {
			return err
		}
	}
}

func skipSpace(in io.RuneScanner) error {
	for {
		r, _, err := in.ReadRune()
		if err != nil {
			return err
		}
		if !unicode.IsSpace(r) {
			return in.UnreadRune()
		}
	}
}
