package wells

// Value evaluates what target currently measures for a well operating under
// ctrl, per unit of total surface mass rate for the rate-weighted targets:
//   - Disabled: identically zero
//   - BottomHolePressure: the first-node pressure
//   - Injector rate targets: lumped mix weight over the mixture density
//   - Producer rate targets: lumped surface volume fraction over the
//     mass-averaged surface density
func Value(ctrl Control, target Target, ws WellState) (v float64) {
	switch target.Type {
	case DisabledTarget:
		return 0
	case BottomHolePressureTarget:
		return ws.BottomHolePressure
	}
	switch ctrl.Role {
	case InjectorRole:
		w := 1.0
		if target.Type != TotalSurfaceRateTarget {
			w = 0
			for _, ph := range target.LumpedPhases() {
				w += ctrl.InjectionMix[ph]
			}
		}
		v = w / ctrl.MixtureDensity
	case ProducerRole:
		var num, den float64
		for _, ph := range target.LumpedPhases() {
			num += ws.VolumeFractions[ph]
		}
		for ph := Phase(0); ph < NumPhases; ph++ {
			den += ws.SurfaceDensities[ph] * ws.VolumeFractions[ph]
		}
		v = num / den
	}
	return
}

// ValueWeighted is Value scaled by the total surface mass rate whenever the
// target is rate weighted; pressure and disabled targets pass through.
func ValueWeighted(ctrl Control, target Target, totalMassRate float64, ws WellState) (v float64) {
	v = Value(ctrl, target, ws)
	if target.IsRateWeighted() {
		v *= totalMassRate
	}
	return
}
