package wellsolver

import (
	"fmt"
	"sync"
)

// PreSolveWells runs the bounded inner iteration over one timestep:
// snapshot, up to MaxWellIterations rounds of assemble / convergence check /
// partitioned solve, then commit or rollback. Failure to converge is not an
// error: the primaries are restored to the snapshot, dependents are
// recomputed once against the restored state, and the outer solve proceeds.
// The returned error covers only fatal conditions (unsupported limits,
// malformed configuration) surfaced by the system.
func PreSolveWells(sys System, par Parameters) (rep Report, err error) {
	snapshot := sys.SnapshotPrimaries()
	for round := 1; round <= par.MaxWellIterations; round++ {
		// The snapshot state already reflects current dependents; recompute
		// only after an update has been applied.
		if round > 1 {
			if err = sys.UpdateSecondaries(); err != nil {
				return
			}
		}
		if err = sys.Assemble(); err != nil {
			return
		}
		relax := 1.0
		if round == par.MaxWellIterations {
			relax = par.AcceptanceFactor
		}
		conv := sys.Converged(relax)
		rep.Error = conv.Error
		rep.Iterations = round
		if conv.Done() {
			rep.Converged = true
			if par.Verbose {
				fmt.Printf("well pre-solve converged in %d of %d rounds, err = %8.5e\n",
					round, par.MaxWellIterations, conv.Error)
			}
			return
		}
		if solveErr := solvePartitions(sys); solveErr != nil {
			// A singular group system is handled like non-convergence.
			if par.Verbose {
				fmt.Printf("well pre-solve round %d: %v\n", round, solveErr)
			}
			break
		}
	}
	sys.RestorePrimaries(snapshot)
	if err = sys.UpdateSecondaries(); err != nil {
		return
	}
	rep.RolledBack = true
	if par.Verbose {
		fmt.Printf("well pre-solve did not converge in %d rounds, err = %8.5e, rolled back\n",
			par.MaxWellIterations, rep.Error)
	}
	return
}

// solvePartitions solves every independent well group's restricted linear
// system concurrently, then applies the updates. Ordering among partitions
// is immaterial.
func solvePartitions(sys System) (err error) {
	var (
		NP      = sys.NumPartitions()
		updates = make([]Update, NP)
		errs    = make([]error, NP)
		wg      = sync.WaitGroup{}
	)
	for np := 0; np < NP; np++ {
		wg.Add(1)
		go func(np int) {
			updates[np], errs[np] = sys.SolvePartition(np)
			wg.Done()
		}(np)
	}
	wg.Wait()
	for np := 0; np < NP; np++ {
		if errs[np] != nil {
			err = fmt.Errorf("partition %d solve failed: %w", np, errs[np])
			return
		}
	}
	for np := 0; np < NP; np++ {
		sys.Apply(updates[np])
	}
	return
}
