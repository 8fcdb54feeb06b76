// SPDX-License-Identifier: MIT

// Command momentgen builds moment and localizing matrices over a reference
// operator algebra and prints the symbolic matrix with its symbol table.
//
// Usage:
//
//	momentgen moment --ops a,b --level 2
//	momentgen localizing --ops x,y --non-hermitian x --word "x y" --level 1
//	momentgen config > momentgen.yaml
//
// Settings resolve as flag > MOMENTGEN_* environment > --config file > defaults,
// e.g. MOMENTGEN_THREADING_POLICY=always.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "momentgen:", err)
		os.Exit(1)
	}
}
