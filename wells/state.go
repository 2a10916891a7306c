package wells

// MinActiveRate bounds the surface mass rate primary variable away from zero
// for active wells, keeping the control equations nonsingular at switch
// points. Disabled wells sit at exactly zero.
const MinActiveRate = 1.0e-12

// WellState supplies the local well physics the target evaluator and limit
// checker read: first-node (bottom hole) pressure, per-phase surface
// densities and volume fractions, and the current total surface mass rate.
type WellState struct {
	BottomHolePressure float64
	SurfaceDensities   [NumPhases]float64
	VolumeFractions    [NumPhases]float64
	TotalMassRate      float64
}

// SurfaceRates is the per-well surface mass rate primary variable, keyed by
// well name. Sign convention: positive injecting, negative producing, zero
// disabled.
type SurfaceRates map[string]float64

// Clamp forces the named well's rate into the valid sign region for role.
func (r SurfaceRates) Clamp(well string, role ControlRole) {
	q := r[well]
	switch role {
	case InjectorRole:
		if q < MinActiveRate {
			r[well] = MinActiveRate
		}
	case ProducerRole:
		if q > -MinActiveRate {
			r[well] = -MinActiveRate
		}
	case DisabledRole:
		r[well] = 0
	}
}
