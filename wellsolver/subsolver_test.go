package wellsolver

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// scriptedSystem converges on the Nth call to Converged (never, when
// convergeAt is zero) and applies a unit increment per solve.
type scriptedSystem struct {
	primaries       []float64
	convergeAt      int
	checks          int
	relaxSeen       []float64
	secondaryCalls  int
	partitionSolves int
	solveErr        error
	mu              sync.Mutex
}

func newScriptedSystem(convergeAt int) *scriptedSystem {
	return &scriptedSystem{
		primaries:  []float64{1.5, -2.5},
		convergeAt: convergeAt,
	}
}

func (s *scriptedSystem) UpdateSecondaries() error { s.secondaryCalls++; return nil }
func (s *scriptedSystem) Assemble() error          { return nil }

func (s *scriptedSystem) Converged(relax float64) Convergence {
	s.checks++
	s.relaxSeen = append(s.relaxSeen, relax)
	done := s.convergeAt > 0 && s.checks >= s.convergeAt
	return Convergence{Satisfied: []bool{done, done}, Error: 0.5}
}

func (s *scriptedSystem) NumPartitions() int { return 2 }

func (s *scriptedSystem) SolvePartition(p int) (Update, error) {
	s.mu.Lock()
	s.partitionSolves++
	s.mu.Unlock()
	if s.solveErr != nil {
		return Update{}, s.solveErr
	}
	return Update{Partition: p, Delta: []float64{1}}, nil
}

func (s *scriptedSystem) Apply(u Update) { s.primaries[u.Partition] += u.Delta[0] }

func (s *scriptedSystem) SnapshotPrimaries() []float64 {
	snap := make([]float64, len(s.primaries))
	copy(snap, s.primaries)
	return snap
}

func (s *scriptedSystem) RestorePrimaries(snapshot []float64) {
	copy(s.primaries, snapshot)
}

func TestPreSolveWellsConvergence(t *testing.T) {
	par := Parameters{MaxWellIterations: 5, AcceptanceFactor: 10}
	// Tolerances satisfied at the round-2 check: two rounds reported and the
	// primaries hold the round-1 committed update, untouched afterwards.
	{
		sys := newScriptedSystem(2)
		rep, err := PreSolveWells(sys, par)
		assert.NoError(t, err)
		assert.True(t, rep.Converged)
		assert.False(t, rep.RolledBack)
		assert.Equal(t, 2, rep.Iterations)
		assert.Equal(t, []float64{2.5, -1.5}, sys.primaries)
		// Dependents recomputed once, at the top of round 2 only
		assert.Equal(t, 1, sys.secondaryCalls)
		assert.Equal(t, []float64{1, 1}, sys.relaxSeen)
	}
	// Already-converged state stops at round 1 with no solves
	{
		sys := newScriptedSystem(1)
		rep, err := PreSolveWells(sys, par)
		assert.NoError(t, err)
		assert.True(t, rep.Converged)
		assert.Equal(t, 1, rep.Iterations)
		assert.Equal(t, 0, sys.partitionSolves)
		assert.Equal(t, []float64{1.5, -2.5}, sys.primaries)
	}
}

func TestPreSolveWellsRelaxation(t *testing.T) {
	// The acceptance factor applies on the final allowed round only
	sys := newScriptedSystem(0)
	rep, err := PreSolveWells(sys, Parameters{MaxWellIterations: 4, AcceptanceFactor: 100})
	assert.NoError(t, err)
	assert.False(t, rep.Converged)
	assert.Equal(t, []float64{1, 1, 1, 100}, sys.relaxSeen)
}

func TestPreSolveWellsRollback(t *testing.T) {
	// Exhausting the rounds restores the snapshot bit for bit and forces one
	// dependent recomputation against the restored state.
	{
		sys := newScriptedSystem(0)
		rep, err := PreSolveWells(sys, Parameters{MaxWellIterations: 5, AcceptanceFactor: 10})
		assert.NoError(t, err)
		assert.False(t, rep.Converged)
		assert.True(t, rep.RolledBack)
		assert.Equal(t, []float64{1.5, -2.5}, sys.primaries)
		// Rounds 2..5 plus the forced post-rollback recomputation
		assert.Equal(t, 5, sys.secondaryCalls)
		assert.Equal(t, 5, rep.Iterations)
	}
	// A failed partition solve takes the rollback path, not an error
	{
		sys := newScriptedSystem(0)
		sys.solveErr = fmt.Errorf("singular group system")
		rep, err := PreSolveWells(sys, Parameters{MaxWellIterations: 5, AcceptanceFactor: 10})
		assert.NoError(t, err)
		assert.True(t, rep.RolledBack)
		assert.Equal(t, []float64{1.5, -2.5}, sys.primaries)
	}
}
