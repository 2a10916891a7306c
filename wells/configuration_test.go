package wells

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateBeforeStep(t *testing.T) {
	var (
		mix    = [NumPhases]float64{0, 1, 0}
		inj    = InjectorControl(Target{TotalSurfaceRateTarget, 0.01}, mix, 1000)
		prd    = ProducerControl(Target{BottomHolePressureTarget, 2.e7})
		forces = Forces{
			Controls: map[string]Control{
				"I1": inj,
				"P1": prd,
				"X1": DisabledControl(),
			},
		}
	)
	// Sign invariant after the update: injector floored at +MinActiveRate,
	// producer ceilinged at -MinActiveRate, disabled forced to exactly zero.
	{
		cfg := NewWellGroupConfiguration([]string{"I1", "P1", "X1"})
		rates := SurfaceRates{"I1": -3, "P1": 2, "X1": 7}
		assert.NoError(t, cfg.UpdateBeforeStep(forces, rates))
		assert.True(t, rates["I1"] >= MinActiveRate)
		assert.True(t, rates["P1"] <= -MinActiveRate)
		assert.Equal(t, 0., rates["X1"])
		// Rates already in the valid region are left alone
		rates = SurfaceRates{"I1": 5, "P1": -4, "X1": 0}
		assert.NoError(t, cfg.UpdateBeforeStep(forces, rates))
		assert.Equal(t, 5., rates["I1"])
		assert.Equal(t, -4., rates["P1"])
	}
	// A repeated identical request preserves a limit-triggered override; a
	// changed request discards it.
	{
		cfg := NewWellGroupConfiguration([]string{"I1", "P1", "X1"})
		rates := SurfaceRates{"I1": 1, "P1": -1, "X1": 0}
		assert.NoError(t, cfg.UpdateBeforeStep(forces, rates))
		// Simulate a limit switch during the step
		override := prd
		override.Target = Target{TotalSurfaceRateTarget, -0.05}
		cfg.Wells["P1"].Operating = override
		assert.NoError(t, cfg.UpdateBeforeStep(forces, rates))
		assert.Equal(t, override, cfg.Operating("P1"))
		// New explicit request wins over the override
		changed := ProducerControl(Target{BottomHolePressureTarget, 1.8e7})
		forces.Controls["P1"] = changed
		assert.NoError(t, cfg.UpdateBeforeStep(forces, rates))
		assert.Equal(t, changed, cfg.Operating("P1"))
		assert.Equal(t, changed, cfg.Wells["P1"].Requested)
		forces.Controls["P1"] = prd
	}
	// Limit sets are replaced wholesale each step, not merged
	{
		cfg := NewWellGroupConfiguration([]string{"I1", "P1", "X1"})
		rates := SurfaceRates{"I1": 1, "P1": -1, "X1": 0}
		step1 := NewLimits()
		step1.Set(LimitBHP, 5.e6)
		f := Forces{Controls: forces.Controls, Limits: map[string]Limits{"P1": step1}}
		assert.NoError(t, cfg.UpdateBeforeStep(f, rates))
		assert.True(t, cfg.Wells["P1"].Limits.Active(LimitBHP))
		step2 := NewLimits()
		step2.Set(LimitOilRate, -100)
		f.Limits = map[string]Limits{"P1": step2}
		assert.NoError(t, cfg.UpdateBeforeStep(f, rates))
		assert.False(t, cfg.Wells["P1"].Limits.Active(LimitBHP))
		assert.True(t, cfg.Wells["P1"].Limits.Active(LimitOilRate))
		// A step with no limits for the well clears them
		f.Limits = nil
		assert.NoError(t, cfg.UpdateBeforeStep(f, rates))
		assert.False(t, cfg.Wells["P1"].Limits.Active(LimitOilRate))
	}
	// Forces naming a well outside the configuration are fatal
	{
		cfg := NewWellGroupConfiguration([]string{"I1"})
		err := cfg.UpdateBeforeStep(Forces{
			Controls: map[string]Control{"GHOST": inj},
		}, SurfaceRates{"GHOST": 0})
		assert.Error(t, err)
		err = cfg.UpdateBeforeStep(Forces{
			Controls: map[string]Control{"I1": inj},
			Limits:   map[string]Limits{"GHOST": NewLimits()},
		}, SurfaceRates{"I1": 1})
		assert.Error(t, err)
	}
}

func TestNewWellGroupConfiguration(t *testing.T) {
	cfg := NewWellGroupConfiguration([]string{"B", "A"})
	assert.Equal(t, []string{"A", "B"}, cfg.Names())
	for _, name := range cfg.Names() {
		assert.Equal(t, DisabledControl(), cfg.Operating(name))
		assert.Equal(t, DisabledControl(), cfg.Wells[name].Requested)
		for kind := LimitKind(0); kind < NumLimitKinds; kind++ {
			assert.False(t, cfg.Wells[name].Limits.Active(kind))
		}
	}
	assert.Panics(t, func() { cfg.Operating("GHOST") })
}
