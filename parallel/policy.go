// SPDX-License-Identifier: MIT

package parallel

import (
	"fmt"
	"runtime"
	"strings"
)

// Policy selects between single- and multithreaded builds.
type Policy uint8

const (
	// PolicyOptional goes parallel once the element count reaches the threshold.
	PolicyOptional Policy = iota
	// PolicyNever always builds on the calling goroutine.
	PolicyNever
	// PolicyAlways always builds with workers, even for tiny matrices.
	PolicyAlways
)

// DefaultThreshold is the element count (N²) at which PolicyOptional
// switches to a multithreaded build.
const DefaultThreshold = 4096

// String returns the lower-case policy name.
func (p Policy) String() string {
	switch p {
	case PolicyNever:
		return "never"
	case PolicyOptional:
		return "optional"
	case PolicyAlways:
		return "always"
	}
	return fmt.Sprintf("Policy(%d)", uint8(p))
}

// ParsePolicy maps a case-insensitive name to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "never":
		return PolicyNever, nil
	case "", "optional":
		return PolicyOptional, nil
	case "always":
		return PolicyAlways, nil
	}
	return PolicyOptional, fmt.Errorf("ParsePolicy(%q): %w", s, ErrUnknownPolicy)
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Policy) UnmarshalText(text []byte) error {
	v, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ShouldMultithread decides the build strategy.
// Never → false; Always → true; Optional → elements ≥ threshold.
func ShouldMultithread(p Policy, elements, threshold int) bool {
	switch p {
	case PolicyNever:
		return false
	case PolicyAlways:
		return true
	}
	return elements >= threshold
}

// WorkerCount returns min(NumCPU, maxWorkers, dim), at least 1.
// maxWorkers ≤ 0 means no cap.
func WorkerCount(maxWorkers, dim int) int {
	n := runtime.NumCPU()
	if maxWorkers > 0 {
		n = min(n, maxWorkers)
	}
	return max(1, min(n, dim))
}
