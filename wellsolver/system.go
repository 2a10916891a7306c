// Package wellsolver pre-converges well states with a bounded inner
// iteration before the full reservoir/well system is solved. The outer
// solve is external; it is reached through the System seam below and
// proceeds regardless of whether the inner iteration converged.
package wellsolver

import "github.com/darcyflow/gores/wells"

// Update is a primary-variable update direction for one coupling partition
// (one independent well group).
type Update struct {
	Partition int
	Delta     []float64
}

// Convergence is the per-quantity result of a tolerance check plus the
// largest scaled error magnitude seen.
type Convergence struct {
	Satisfied []bool
	Error     float64
}

func (c Convergence) Done() bool {
	for _, ok := range c.Satisfied {
		if !ok {
			return false
		}
	}
	return true
}

// System is the restricted (wells-only) view of the simulator the sub-solver
// drives. Partitions are independent well groups: their linear systems share
// no state and may be solved concurrently within one round.
type System interface {
	// UpdateSecondaries recomputes dependent quantities from the current
	// primaries and runs the limit checks, which may switch controls.
	UpdateSecondaries() error
	// Assemble builds the restricted residual and linear system. Idempotent
	// for unchanged primaries.
	Assemble() error
	// Converged evaluates the per-quantity tolerances, scaled up by relax.
	Converged(relax float64) Convergence
	NumPartitions() int
	// SolvePartition returns the Newton update for one partition.
	SolvePartition(p int) (Update, error)
	// Apply commits a partition update to the primary variables.
	Apply(u Update)
	SnapshotPrimaries() []float64
	RestorePrimaries(snapshot []float64)
}

// Parameters configures the bounded inner iteration.
type Parameters struct {
	MaxWellIterations int
	// AcceptanceFactor relaxes the tolerances on the final allowed round so a
	// close-enough state is accepted instead of forcing a failed attempt.
	AcceptanceFactor float64
	Verbose          bool
}

func DefaultParameters() (par Parameters) {
	par = Parameters{
		MaxWellIterations: 8,
		AcceptanceFactor:  10.0,
	}
	return
}

// Report is the informational outcome of one pre-solve pass.
type Report struct {
	Converged  bool
	Iterations int
	RolledBack bool
	Error      float64
	Switches   []wells.ControlSwitch
}
