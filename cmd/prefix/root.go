package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/zephyrtronium/prefix"
)

// app is the state shared by all commands of a run.
type app struct {
	v       *viper.Viper
	cfgfile string
	cfg     *config
	log     *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: newViper()}
	root := &cobra.Command{
		Use:          "prefix",
		Short:        "Evaluate prefix expressions over x, y, and z",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(a.v, a.cfgfile)
			if err != nil {
				return err
			}
			log, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("bad log level: %w", err)
			}
			a.cfg, a.log = cfg, log
			if f := a.v.ConfigFileUsed(); f != "" {
				log.WithField("file", f).Info("loaded config")
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgfile, "config", "", "config file (yaml, toml, or json)")
	flags.Float64("x", 0, "value of x")
	flags.Float64("y", 0, "value of y")
	flags.Float64("z", 0, "value of z")
	flags.Int("prec", 0, "precision of calculations in bits (0 for float64)")
	flags.String("format", "%g", "result formatting verb")
	flags.Bool("echo", false, "print each expression before its value")
	flags.String("log-level", "warn", "log level")
	for _, name := range []string{"x", "y", "z", "prec", "format", "echo"} {
		mustBind(a.v, name, flags.Lookup(name))
	}
	mustBind(a.v, "log_level", flags.Lookup("log-level"))

	root.AddCommand(
		newEvalCmd(a),
		newReplCmd(a),
		newOpsCmd(),
	)
	return root
}

// mustBind binds a config key to a flag. BindPFlag fails only for a nil flag,
// which means the flag name is misspelled here.
func mustBind(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Errorf("binding %s: %w", key, err))
	}
}

func newOpsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List operations and their arity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, s := range prefix.Operators() {
				n := prefix.Lookup(s).Arity()
				if n == prefix.Variadic {
					fmt.Fprintf(w, "%s\t1 or more\n", s)
					continue
				}
				fmt.Fprintf(w, "%s\t%d\n", s, n)
			}
			return w.Flush()
		},
	}
}
