package wellsolver

import "github.com/darcyflow/gores/wells"

// AdvanceWells is the per-timestep entry point: it applies the pre-step
// control update for the step's forces, then runs the bounded pre-solve.
// The report carries any control switches the limit checks triggered. A
// non-converged pre-solve is reported, not returned as an error; the caller
// proceeds with the full-system solve on whatever state resulted.
func AdvanceWells(sys *StandardWellSystem, f wells.Forces, par Parameters) (rep Report, err error) {
	if err = sys.BeginStep(f); err != nil {
		return
	}
	if rep, err = PreSolveWells(sys, par); err != nil {
		return
	}
	rep.Switches = sys.Configuration().DrainSwitches()
	return
}
