// SPDX-License-Identifier: MIT

package parallel

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownPolicy indicates a threading policy name that is not
	// one of never, optional, always.
	ErrUnknownPolicy = errors.New("parallel: unknown threading policy")

	// ErrPartnerFailed indicates that a merge partner failed, so the data
	// the waiting worker needed will never arrive.
	ErrPartnerFailed = errors.New("parallel: merge partner failed")

	// ErrGateAborted indicates that a phase gate was aborted instead of opened.
	ErrGateAborted = errors.New("parallel: phase aborted")

	// ErrWorkerPanic indicates a panic recovered inside a worker.
	ErrWorkerPanic = errors.New("parallel: worker panicked")

	// ErrNoWorkers indicates a pipeline with fewer than one worker.
	ErrNoWorkers = errors.New("parallel: at least one worker required")
)

// WorkerError attributes a failure to a worker and phase.
type WorkerError struct {
	Worker int
	Phase  string
	Err    error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker %d, phase %q: %v", e.Worker, e.Phase, e.Err)
}

func (e *WorkerError) Unwrap() error { return e.Err }
