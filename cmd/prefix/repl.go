package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/prefix"
)

const (
	promptMain  = "> "
	promptCont  = "... "
	historyFile = ".prefix_history"
)

const replHelp = `Enter a prefix expression over x, y, and z, e.g. (+ x (* 2 y)).
Commands:
  :set NAME VALUE  set a variable
  :ops             list operations
  :help            show this help
  :quit            leave
`

// prompter reads lines from the user. *liner.State implements it.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func newReplCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Evaluate expressions interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hist := a.cfg.History
			if hist == "" {
				home, _ := os.UserHomeDir()
				hist = filepath.Join(home, historyFile)
			}

			ln := liner.NewLiner()
			defer ln.Close()
			ln.SetCtrlCAborts(true)
			if f, err := os.Open(hist); err == nil {
				if _, err := ln.ReadHistory(f); err != nil {
					a.log.WithError(err).Warn("couldn't read history")
				}
				f.Close()
			}

			err := runREPL(cmd.OutOrStdout(), ln, newEvaluator(a.cfg, a.log))

			if f, err := os.Create(hist); err == nil {
				if _, err := ln.WriteHistory(f); err != nil {
					a.log.WithError(err).Warn("couldn't write history")
				}
				f.Close()
			}
			return err
		},
	}
	cmd.Flags().String("history", "", "history file (default ~/"+historyFile+")")
	mustBind(a.v, "history", cmd.Flags().Lookup("history"))
	return cmd
}

// runREPL reads and evaluates expressions until the input ends or the user
// quits. Errors in expressions are printed. Only failures to write are
// returned.
func runREPL(w io.Writer, pr prompter, ev *evaluator) error {
	for {
		src, ok := readExpr(pr, promptMain, promptCont)
		if !ok {
			fmt.Fprintln(w)
			return nil
		}
		src = strings.TrimSpace(src)
		if src == "" {
			continue
		}
		pr.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if strings.HasPrefix(src, ":") {
			if command(w, ev, src) {
				return nil
			}
			continue
		}
		e, err := prefix.ParseString(src)
		if err != nil {
			fmt.Fprintln(w, err)
			continue
		}
		if err := ev.eval(w, e); err != nil {
			return err
		}
	}
}

// readExpr reads lines until they form a complete expression or an error
// other than running out of input. The second result is false if the user
// ended the input.
func readExpr(pr prompter, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := pr.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl+C abandons the expression.
			return "", true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		s := strings.TrimSpace(src)
		if s == "" || strings.HasPrefix(s, ":") {
			return src, true
		}
		_, err = prefix.ParseString(src)
		var eof *prefix.EOFError
		if !errors.As(err, &eof) {
			return src, true
		}
	}
}

// command runs a REPL command and reports whether to quit.
func command(w io.Writer, ev *evaluator, line string) bool {
	f := strings.Fields(line)
	switch f[0] {
	case ":quit", ":exit", ":q":
		return true
	case ":help":
		fmt.Fprint(w, replHelp)
	case ":ops":
		fmt.Fprintln(w, strings.Join(prefix.Operators(), " "))
	case ":set":
		if len(f) != 3 {
			fmt.Fprintln(w, "usage: :set NAME VALUE")
			return false
		}
		v, err := strconv.ParseFloat(f[2], 64)
		if err != nil {
			fmt.Fprintln(w, err)
			return false
		}
		if err := ev.set(f[1], v); err != nil {
			fmt.Fprintln(w, err)
			return false
		}
	default:
		fmt.Fprintf(w, "unknown command %s; try :help\n", f[0])
	}
	return false
}
