// SPDX-License-Identifier: MIT

package matrix

import (
	"github.com/katalvlaran/lvlmoment/operator"
	"github.com/katalvlaran/lvlmoment/symbol"
)

// IdentifyStripe feeds the stripe's cells of m into c. A Hermitian matrix
// only contributes its upper triangle: lower cells are conjugates of upper
// cells and map to the same symbols.
func IdentifyStripe(m *OperatorMatrix, c *symbol.Collector, worker, workers int) {
	identifyCells(m.data, m.dim, m.hermitian, c, worker, workers)
}

func identifyCells(data []operator.Sequence, n int, upper bool, c *symbol.Collector, worker, workers int) {
	for col := worker; col < n; col += workers {
		last := n - 1
		if upper {
			last = col
		}
		for r := 0; r <= last; r++ {
			c.Add(data[r*n+col])
		}
	}
}

// Identify collects the new symbols of the whole matrix on the calling goroutine.
func Identify(m *OperatorMatrix, table *symbol.Table) *symbol.Set {
	c := symbol.NewCollector(table.Context(), table.Contains)
	IdentifyStripe(m, c, 0, 1)
	return c.Set()
}
