package wellsolver

import (
	"fmt"
	"math"
	"sort"

	"github.com/james-bowman/sparse"

	"github.com/darcyflow/gores/utils"
	"github.com/darcyflow/gores/wells"
)

// WellSpec is the static description of one well: which coupling partition
// (group) it belongs to, its inflow productivity, and its surface fluid
// description.
type WellSpec struct {
	Name              string
	Group             string
	ProductivityIndex float64 // volume rate per unit drawdown
	SurfaceDensities  [wells.NumPhases]float64
	VolumeFractions   [wells.NumPhases]float64
}

// Region is the drainage region shared by one well group. Its pressure
// responds linearly to the group's total withdrawal, which is what couples
// the wells of a group into one linear system.
type Region struct {
	Pressure float64 // undisturbed region pressure
	Drawdown float64 // pressure drop per unit net mass rate
}

// StandardWellSystem implements System for a set of wells on an inflow
// performance model: mass rate = PI * rho * (bhp - p_region), with
// p_region = p0 - drawdown * sum of the group's rates. Primary unknowns per
// well are the total surface mass rate and the bottom hole pressure.
type StandardWellSystem struct {
	cfg   *wells.WellGroupConfiguration
	specs []WellSpec
	index map[string]int

	groupNames []string
	groups     [][]int // partition -> well indices
	regions    []Region

	x      []float64 // [2i] mass rate, [2i+1] bhp
	states []wells.WellState

	jac *sparse.DOK
	csr *sparse.CSR
	res []float64
	ref []float64 // per-row scaling magnitude

	tolControl, tolFlow float64
}

func NewStandardWellSystem(cfg *wells.WellGroupConfiguration, specs []WellSpec,
	regions map[string]Region, tolControl, tolFlow float64) (s *StandardWellSystem, err error) {
	s = &StandardWellSystem{
		cfg:        cfg,
		specs:      make([]WellSpec, len(specs)),
		index:      make(map[string]int),
		tolControl: tolControl,
		tolFlow:    tolFlow,
	}
	copy(s.specs, specs)
	sort.Slice(s.specs, func(i, j int) bool { return s.specs[i].Name < s.specs[j].Name })
	groupIndex := make(map[string]int)
	for i, spec := range s.specs {
		if _, ok := cfg.Wells[spec.Name]; !ok {
			err = fmt.Errorf("well %s is not in the configuration", spec.Name)
			return
		}
		if _, ok := regions[spec.Group]; !ok {
			err = fmt.Errorf("well %s references undefined region %s", spec.Name, spec.Group)
			return
		}
		s.index[spec.Name] = i
		g, ok := groupIndex[spec.Group]
		if !ok {
			g = len(s.groups)
			groupIndex[spec.Group] = g
			s.groupNames = append(s.groupNames, spec.Group)
			s.groups = append(s.groups, nil)
			s.regions = append(s.regions, regions[spec.Group])
		}
		s.groups[g] = append(s.groups[g], i)
	}
	n := 2 * len(s.specs)
	s.x = make([]float64, n)
	s.states = make([]wells.WellState, len(s.specs))
	s.res = make([]float64, n)
	s.ref = make([]float64, n)
	// Start every well shut-in at its region pressure.
	for i, spec := range s.specs {
		s.x[2*i+1] = regions[spec.Group].Pressure
	}
	s.refreshStates()
	return
}

func (s *StandardWellSystem) Configuration() *wells.WellGroupConfiguration {
	return s.cfg
}

// Rate returns the surface mass rate primary of the named well.
func (s *StandardWellSystem) Rate(well string) float64 {
	return s.x[2*s.index[well]]
}

// BottomHolePressure returns the bhp primary of the named well.
func (s *StandardWellSystem) BottomHolePressure(well string) float64 {
	return s.x[2*s.index[well]+1]
}

// BeginStep runs the pre-step control update against the current primaries:
// requested-control reconciliation, rate sign clamping and wholesale limit
// replacement, then a dependent refresh so the pre-loop state is consistent.
func (s *StandardWellSystem) BeginStep(f wells.Forces) (err error) {
	rates := make(wells.SurfaceRates, len(s.specs))
	for i, spec := range s.specs {
		rates[spec.Name] = s.x[2*i]
	}
	if err = s.cfg.UpdateBeforeStep(f, rates); err != nil {
		return
	}
	for i, spec := range s.specs {
		s.x[2*i] = rates[spec.Name]
	}
	s.refreshStates()
	return
}

// refreshStates recomputes the dependent well states from the primaries.
func (s *StandardWellSystem) refreshStates() {
	for i, spec := range s.specs {
		s.states[i] = wells.WellState{
			BottomHolePressure: s.x[2*i+1],
			SurfaceDensities:   spec.SurfaceDensities,
			VolumeFractions:    spec.VolumeFractions,
			TotalMassRate:      s.x[2*i],
		}
	}
}

// UpdateSecondaries recomputes dependents and re-checks the operating
// limits, which may switch a well's control target.
func (s *StandardWellSystem) UpdateSecondaries() (err error) {
	s.refreshStates()
	for i, spec := range s.specs {
		if _, err = s.cfg.CheckWellLimits(spec.Name, s.states[i]); err != nil {
			return
		}
	}
	return
}

// regionPressure is the group's drainage pressure at the current rates.
func (s *StandardWellSystem) regionPressure(g int) (p float64) {
	p = s.regions[g].Pressure
	for _, i := range s.groups[g] {
		p -= s.regions[g].Drawdown * s.x[2*i]
	}
	return
}

// inflowCoefficient converts drawdown to mass rate for well i under ctrl.
func (s *StandardWellSystem) inflowCoefficient(i int, ctrl wells.Control) (C float64) {
	var rho float64
	switch ctrl.Role {
	case wells.InjectorRole:
		rho = ctrl.MixtureDensity
	default:
		for ph := wells.Phase(0); ph < wells.NumPhases; ph++ {
			rho += s.specs[i].SurfaceDensities[ph] * s.specs[i].VolumeFractions[ph]
		}
	}
	C = s.specs[i].ProductivityIndex * rho
	return
}

// Assemble builds the residual and Jacobian of the restricted system. Rows
// 2i hold well i's control equation, rows 2i+1 its inflow equation.
func (s *StandardWellSystem) Assemble() (err error) {
	var (
		n = 2 * len(s.specs)
	)
	s.jac = sparse.NewDOK(n, n)
	for g := range s.groups {
		var (
			region = s.regions[g]
			pReg   = s.regionPressure(g)
		)
		for _, i := range s.groups[g] {
			var (
				op      = s.cfg.Operating(s.specs[i].Name)
				q, bhp  = s.x[2*i], s.x[2*i+1]
				rCtl    = 2 * i
				rInflow = 2*i + 1
			)
			switch {
			case op.Role == wells.DisabledRole || op.Target.Type == wells.DisabledTarget:
				s.res[rCtl] = q
				s.jac.Set(rCtl, 2*i, 1)
				s.ref[rCtl] = 1
			case op.Target.Type == wells.BottomHolePressureTarget:
				s.res[rCtl] = bhp - op.Target.Value
				s.jac.Set(rCtl, 2*i+1, 1)
				s.ref[rCtl] = math.Max(1, math.Abs(op.Target.Value))
			default:
				// Rate-weighted target: evaluated value is linear in q.
				c := wells.Value(op, op.Target, s.states[i])
				s.res[rCtl] = c*q - op.Target.Value
				s.jac.Set(rCtl, 2*i, c)
				s.ref[rCtl] = math.Max(1, math.Abs(op.Target.Value))
			}
			if op.Role == wells.DisabledRole {
				// Shut well: park bhp at the region pressure.
				s.res[rInflow] = bhp - pReg
				s.jac.Set(rInflow, 2*i+1, 1)
				for _, j := range s.groups[g] {
					s.jac.Set(rInflow, 2*j, s.jac.At(rInflow, 2*j)+region.Drawdown)
				}
				s.ref[rInflow] = math.Max(1, math.Abs(region.Pressure))
				continue
			}
			C := s.inflowCoefficient(i, op)
			s.res[rInflow] = q - C*(bhp-pReg)
			s.jac.Set(rInflow, 2*i+1, -C)
			s.jac.Set(rInflow, 2*i, 1)
			for _, j := range s.groups[g] {
				s.jac.Set(rInflow, 2*j, s.jac.At(rInflow, 2*j)-C*region.Drawdown)
			}
			s.ref[rInflow] = math.Max(1, C*math.Abs(region.Pressure))
		}
	}
	s.csr = s.jac.ToCSR()
	return
}

// Converged checks the scaled residuals of the two equation families against
// their tolerances, both relaxed by relax.
func (s *StandardWellSystem) Converged(relax float64) (conv Convergence) {
	var (
		errCtl, errFlow float64
	)
	for i := range s.specs {
		if e := math.Abs(s.res[2*i]) / s.ref[2*i]; e > errCtl {
			errCtl = e
		}
		if e := math.Abs(s.res[2*i+1]) / s.ref[2*i+1]; e > errFlow {
			errFlow = e
		}
	}
	conv = Convergence{
		Satisfied: []bool{
			errCtl <= relax*s.tolControl,
			errFlow <= relax*s.tolFlow,
		},
		Error: math.Max(errCtl, errFlow),
	}
	return
}

func (s *StandardWellSystem) NumPartitions() int {
	return len(s.groups)
}

// SolvePartition extracts the partition's dense block from the assembled
// sparse Jacobian and Newton-solves it for the update direction. Partitions
// touch disjoint rows and columns, so concurrent calls are safe.
func (s *StandardWellSystem) SolvePartition(p int) (u Update, err error) {
	var (
		group = s.groups[p]
		n     = 2 * len(group)
		A     = utils.NewMatrix(n, n)
		b     = utils.NewVector(n)
	)
	for a, i := range group {
		for d := 0; d < 2; d++ {
			r := 2*i + d
			b.Set(2*a+d, -s.res[r])
			for c, j := range group {
				A.Set(2*a+d, 2*c, s.csr.At(r, 2*j))
				A.Set(2*a+d, 2*c+1, s.csr.At(r, 2*j+1))
			}
		}
	}
	var delta utils.Vector
	if delta, err = A.LUSolve(b); err != nil {
		err = fmt.Errorf("well group %s: %w", s.groupNames[p], err)
		return
	}
	u = Update{Partition: p, Delta: delta.Data()}
	return
}

// Apply commits one partition's update to the primaries.
func (s *StandardWellSystem) Apply(u Update) {
	for a, i := range s.groups[u.Partition] {
		s.x[2*i] += u.Delta[2*a]
		s.x[2*i+1] += u.Delta[2*a+1]
	}
}

func (s *StandardWellSystem) SnapshotPrimaries() (snapshot []float64) {
	snapshot = make([]float64, len(s.x))
	copy(snapshot, s.x)
	return
}

func (s *StandardWellSystem) RestorePrimaries(snapshot []float64) {
	copy(s.x, snapshot)
}
