// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/lvlmoment/config"
	"github.com/katalvlaran/lvlmoment/parallel"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// errNoAlgebra indicates that neither flags nor the config file define operators.
var errNoAlgebra = errors.New("no operators: pass --ops or set algebra.operators in the config file")

// cli carries the state shared by every subcommand.
type cli struct {
	out io.Writer
	v   *viper.Viper
	cfg *config.Config
	log *zap.Logger
}

// newRootCmd returns the command tree writing results to out.
func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out, v: viper.New(), log: zap.NewNop()}

	root := &cobra.Command{
		Use:           "momentgen",
		Short:         "Build symbolic moment and localizing matrices",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = c.log.Sync()
		},
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.String("config", "", "YAML configuration file")
	pf.String("policy", "", "threading policy: never, optional, always")
	pf.Int("threshold", 0, "element count at which the optional policy goes parallel")
	pf.Int("max-workers", 0, "worker cap, 0 for the CPU count")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.Bool("metrics", false, "print Prometheus metrics after the build")
	pf.StringSlice("ops", nil, "operator names, in order")
	pf.StringSlice("non-hermitian", nil, "operators that get a generated adjoint")
	pf.Bool("commuting", false, "operators commute")
	pf.StringSlice("projectors", nil, "operators with x·x = x")

	for _, b := range [][2]string{
		{"config", "config"},
		{"threading.policy", "policy"},
		{"threading.threshold", "threshold"},
		{"threading.max_workers", "max-workers"},
		{"logging.level", "log-level"},
		{"metrics.enabled", "metrics"},
		{"algebra.ops", "ops"},
		{"algebra.non_hermitian", "non-hermitian"},
		{"algebra.commuting", "commuting"},
		{"algebra.projectors", "projectors"},
	} {
		_ = c.v.BindPFlag(b[0], pf.Lookup(b[1]))
	}
	c.v.SetEnvPrefix("MOMENTGEN")
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	c.v.AutomaticEnv()

	root.AddCommand(c.momentCmd(), c.localizingCmd(), c.configCmd())
	return root
}

// init loads the config file and applies flag and environment overrides.
func (c *cli) init() error {
	cfg, err := config.Load(c.v.GetString("config"))
	if err != nil {
		return err
	}
	if c.v.IsSet("threading.policy") {
		p, err := parallel.ParsePolicy(c.v.GetString("threading.policy"))
		if err != nil {
			return err
		}
		cfg.Threading.Policy = p
	}
	if c.v.IsSet("threading.threshold") {
		cfg.Threading.Threshold = c.v.GetInt("threading.threshold")
	}
	if c.v.IsSet("threading.max_workers") {
		cfg.Threading.MaxWorkers = c.v.GetInt("threading.max_workers")
	}
	if c.v.IsSet("logging.level") {
		cfg.Logging.Level = c.v.GetString("logging.level")
	}
	if c.v.IsSet("metrics.enabled") {
		cfg.Metrics.Enabled = c.v.GetBool("metrics.enabled")
	}
	if ops := c.v.GetStringSlice("algebra.ops"); len(ops) > 0 {
		cfg.Algebra = algebraFromFlags(ops,
			c.v.GetStringSlice("algebra.non_hermitian"),
			c.v.GetStringSlice("algebra.projectors"),
			c.v.GetBool("algebra.commuting"))
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	c.cfg, c.log = cfg, log
	return nil
}

// algebraFromFlags builds the algebra section from command-line lists.
func algebraFromFlags(ops, nonHermitian, projectors []string, commuting bool) config.AlgebraConfig {
	adjoint := make(map[string]bool, len(nonHermitian))
	for _, name := range nonHermitian {
		adjoint[name] = true
	}
	ac := config.AlgebraConfig{Commuting: commuting, Projectors: projectors}
	for _, name := range ops {
		ac.Operators = append(ac.Operators, config.OperatorConfig{Name: name, Hermitian: !adjoint[name]})
	}
	return ac
}

func (c *cli) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			data, err := c.cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(c.out, string(data))
			return err
		},
	}
}
