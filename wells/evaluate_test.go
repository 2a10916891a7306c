package wells

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue(t *testing.T) {
	var (
		ws = WellState{
			BottomHolePressure: 1.5e7,
			SurfaceDensities:   [NumPhases]float64{800, 1000, 1},
			VolumeFractions:    [NumPhases]float64{0.5, 0.3, 0.2},
			TotalMassRate:      -50,
		}
		mix = [NumPhases]float64{0.7, 0.3, 0}
		inj = InjectorControl(Target{TotalSurfaceRateTarget, 0.01}, mix, 800)
		prd = ProducerControl(Target{TotalSurfaceRateTarget, -0.05})
	)
	// Disabled target is zero regardless of control and state
	{
		for _, ctrl := range []Control{DisabledControl(), inj, prd} {
			assert.Equal(t, 0., Value(ctrl, Target{Type: DisabledTarget}, ws))
			assert.Equal(t, 0., ValueWeighted(ctrl, Target{Type: DisabledTarget}, 1.e9, ws))
		}
	}
	// BHP target reads the first-node pressure, unweighted
	{
		assert.Equal(t, 1.5e7, Value(prd, Target{BottomHolePressureTarget, 0}, ws))
		assert.Equal(t, 1.5e7, ValueWeighted(prd, Target{BottomHolePressureTarget, 0}, -50, ws))
	}
	// Injector rate targets: lumped mix weight over the mixture density
	{
		assert.InDelta(t, 1./800, Value(inj, Target{Type: TotalSurfaceRateTarget}, ws), 1.e-15)
		assert.InDelta(t, 0.7/800, Value(inj, Target{Type: SurfaceOilRateTarget}, ws), 1.e-15)
		assert.InDelta(t, 1.0/800, Value(inj, Target{Type: SurfaceLiquidRateTarget}, ws), 1.e-15)
		assert.InDelta(t, 0., Value(inj, Target{Type: SurfaceGasRateTarget}, ws), 1.e-15)
	}
	// Producer rate targets: lumped volume fraction over mass-averaged density
	{
		den := 0.5*800 + 0.3*1000 + 0.2*1
		assert.InDelta(t, 1.0/den, Value(prd, Target{Type: TotalSurfaceRateTarget}, ws), 1.e-15)
		assert.InDelta(t, 0.5/den, Value(prd, Target{Type: SurfaceOilRateTarget}, ws), 1.e-15)
		assert.InDelta(t, 0.8/den, Value(prd, Target{Type: SurfaceLiquidRateTarget}, ws), 1.e-15)
		assert.InDelta(t, 0.2/den, Value(prd, Target{Type: SurfaceGasRateTarget}, ws), 1.e-15)
	}
	// Rate-weighted targets scale with the total mass rate
	{
		den := 0.5*800 + 0.3*1000 + 0.2*1
		assert.InDelta(t, -50/den, ValueWeighted(prd, Target{Type: TotalSurfaceRateTarget}, -50, ws), 1.e-15)
		assert.InDelta(t, 250./800, ValueWeighted(inj, Target{Type: TotalSurfaceRateTarget}, 250, ws), 1.e-15)
	}
}

func TestTargetTypes(t *testing.T) {
	assert.False(t, Target{Type: DisabledTarget}.IsRateWeighted())
	assert.False(t, Target{Type: BottomHolePressureTarget}.IsRateWeighted())
	for _, tt := range []TargetType{SurfaceOilRateTarget, SurfaceLiquidRateTarget,
		SurfaceGasRateTarget, SurfaceWaterRateTarget, TotalSurfaceRateTarget} {
		assert.True(t, Target{Type: tt}.IsRateWeighted())
	}
	assert.Equal(t, []Phase{Oil, Water}, Target{Type: SurfaceLiquidRateTarget}.LumpedPhases())
	assert.Equal(t, TotalSurfaceRateTarget, NewTargetType("rate"))
	assert.Panics(t, func() { NewTargetType("momentum") })
}
