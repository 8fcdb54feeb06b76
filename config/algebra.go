// SPDX-License-Identifier: MIT

package config

import (
	"fmt"

	"github.com/katalvlaran/lvlmoment/operator"
)

// AlgebraConfig describes a reference operator algebra.
//
//	algebra:
//	  operators:
//	    - {name: a, hermitian: true}
//	    - {name: b, hermitian: true}
//	  commuting: true
//	  projectors: [a]
//	  orthogonal: [[a, b]]
//	  symmetries:
//	    - {a: b, b: a}
type AlgebraConfig struct {
	Operators  []OperatorConfig    `yaml:"operators"`
	Commuting  bool                `yaml:"commuting,omitempty"`
	Projectors []string            `yaml:"projectors,omitempty"`
	Orthogonal [][2]string         `yaml:"orthogonal,omitempty"`
	Symmetries []map[string]string `yaml:"symmetries,omitempty"`
}

// OperatorConfig is one named generator.
type OperatorConfig struct {
	Name      string `yaml:"name"`
	Hermitian bool   `yaml:"hermitian"`
}

// Build constructs the algebra.
func (ac AlgebraConfig) Build() (*operator.Algebra, error) {
	ops := make([]operator.Operator, len(ac.Operators))
	for i, o := range ac.Operators {
		ops[i] = operator.Operator{Name: o.Name, Hermitian: o.Hermitian}
	}
	var opts []operator.AlgebraOption
	if ac.Commuting {
		opts = append(opts, operator.WithCommuting())
	}
	if len(ac.Projectors) > 0 {
		opts = append(opts, operator.WithProjectors(ac.Projectors...))
	}
	for _, pair := range ac.Orthogonal {
		opts = append(opts, operator.WithOrthogonal(pair[0], pair[1]))
	}
	for _, perm := range ac.Symmetries {
		opts = append(opts, operator.WithSymmetry(perm))
	}
	alg, err := operator.NewAlgebra(ops, opts...)
	if err != nil {
		return nil, fmt.Errorf("AlgebraConfig.Build: %w", err)
	}
	return alg, nil
}
