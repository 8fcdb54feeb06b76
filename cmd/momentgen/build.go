// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/lvlmoment/engine"
	"github.com/katalvlaran/lvlmoment/matrix"
	"github.com/katalvlaran/lvlmoment/metrics"
	"github.com/katalvlaran/lvlmoment/operator"
	"github.com/katalvlaran/lvlmoment/symbol"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

// buildFlags are shared by the matrix subcommands.
type buildFlags struct {
	level int
	scale float64
	words bool
}

func (f *buildFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.level, "level", "l", 1, "hierarchy depth (maximum word length)")
	cmd.Flags().Float64Var(&f.scale, "scale", 1, "real prefactor applied to every entry")
	cmd.Flags().BoolVar(&f.words, "words", false, "also print the operator words")
}

func (c *cli) momentCmd() *cobra.Command {
	var f buildFlags
	cmd := &cobra.Command{
		Use:   "moment",
		Short: "Build the moment matrix at --level",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return c.run(f, func(*operator.Algebra) (engine.Index, error) {
				return engine.MomentIndex(f.level).WithScale(f.scale), nil
			})
		},
	}
	f.register(cmd)
	return cmd
}

func (c *cli) localizingCmd() *cobra.Command {
	var (
		f    buildFlags
		word string
	)
	cmd := &cobra.Command{
		Use:   "localizing",
		Short: "Build the localizing matrix of --word at --level",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return c.run(f, func(alg *operator.Algebra) (engine.Index, error) {
				w, err := alg.Word(strings.Fields(word)...)
				if err != nil {
					return engine.Index{}, err
				}
				return engine.LocalizingIndex(f.level, w).WithScale(f.scale), nil
			})
		},
	}
	f.register(cmd)
	cmd.Flags().StringVarP(&word, "word", "w", "", "space-separated operator names, e.g. \"x y*\"")
	_ = cmd.MarkFlagRequired("word")
	return cmd
}

// run builds one matrix and prints it with the symbols it references.
func (c *cli) run(f buildFlags, index func(*operator.Algebra) (engine.Index, error)) error {
	if len(c.cfg.Algebra.Operators) == 0 {
		return errNoAlgebra
	}
	alg, err := c.cfg.Algebra.Build()
	if err != nil {
		return err
	}
	idx, err := index(alg)
	if err != nil {
		return err
	}

	var (
		reg       *prometheus.Registry
		collector *metrics.Collector
	)
	if c.cfg.Metrics.Enabled {
		reg = prometheus.NewRegistry()
		collector = metrics.New(reg, c.cfg.Metrics.Namespace)
	}
	e, err := engine.New(alg, c.cfg.EngineOptions(c.log, collector)...)
	if err != nil {
		return err
	}
	m, err := e.Matrix(idx)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "# %s, %s\n", idx.Format(alg), matrix.FromMonomial(m).Describe())
	if f.words {
		fmt.Fprintln(c.out, "# words")
		fmt.Fprint(c.out, m.OperatorMatrix().Format(alg))
		if aliased, ok := m.AliasedOperatorMatrix(); ok {
			fmt.Fprintln(c.out, "# aliased words")
			fmt.Fprint(c.out, aliased.Format(alg))
		}
	}
	fmt.Fprintln(c.out, "# matrix")
	fmt.Fprint(c.out, m)
	fmt.Fprintln(c.out, "# symbols")
	if err := printSymbols(c.out, alg, e.Symbols(), m); err != nil {
		return err
	}
	if reg != nil {
		return printMetrics(c.out, reg)
	}
	return nil
}

// printSymbols lists "#id  forward  [conjugate]" for every referenced symbol.
func printSymbols(out io.Writer, alg *operator.Algebra, table *symbol.Table, m *matrix.MonomialMatrix) error {
	for _, id := range m.IncludedSymbols() {
		s, err := table.Symbol(id)
		if err != nil {
			return err
		}
		if s.Hermitian {
			fmt.Fprintf(out, "#%d\t%s\n", s.ID, alg.Format(s.Forward))
			continue
		}
		fmt.Fprintf(out, "#%d\t%s\t%s\n", s.ID, alg.Format(s.Forward), alg.Format(s.Conjugate))
	}
	return nil
}

func printMetrics(out io.Writer, reg *prometheus.Registry) error {
	mfs, err := reg.Gather()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "# metrics")
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
			return err
		}
	}
	return nil
}
