package wells

import (
	"fmt"
	"strings"
)

type Phase uint

const (
	Oil Phase = iota
	Water
	Gas
	NumPhases
)

var (
	PhaseNames = map[string]Phase{
		"oil":   Oil,
		"water": Water,
		"gas":   Gas,
	}
	PhasePrintNames = []string{"Oil", "Water", "Gas"}
)

func (p Phase) Print() (txt string) {
	txt = PhasePrintNames[p]
	return
}

func NewPhase(label string) (p Phase) {
	var (
		ok  bool
		err error
	)
	label = strings.ToLower(label)
	if p, ok = PhaseNames[label]; !ok {
		err = fmt.Errorf("unable to use phase named %s", label)
		panic(err)
	}
	return
}

type TargetType uint

const (
	DisabledTarget TargetType = iota
	BottomHolePressureTarget
	SurfaceOilRateTarget
	SurfaceLiquidRateTarget
	SurfaceGasRateTarget
	SurfaceWaterRateTarget
	TotalSurfaceRateTarget
)

var (
	TargetNames = map[string]TargetType{
		"disabled": DisabledTarget,
		"bhp":      BottomHolePressureTarget,
		"orat":     SurfaceOilRateTarget,
		"lrat":     SurfaceLiquidRateTarget,
		"grat":     SurfaceGasRateTarget,
		"wrat":     SurfaceWaterRateTarget,
		"rate":     TotalSurfaceRateTarget,
	}
	TargetPrintNames = []string{
		"Disabled",
		"Bottom Hole Pressure",
		"Surface Oil Rate",
		"Surface Liquid Rate",
		"Surface Gas Rate",
		"Surface Water Rate",
		"Total Surface Rate",
	}
	// Phase subsets the named rate targets lump together. Liquid is oil+water.
	lumpedPhases = map[TargetType][]Phase{
		SurfaceOilRateTarget:    {Oil},
		SurfaceLiquidRateTarget: {Oil, Water},
		SurfaceGasRateTarget:    {Gas},
		SurfaceWaterRateTarget:  {Water},
		TotalSurfaceRateTarget:  {Oil, Water, Gas},
	}
)

func (tt TargetType) Print() (txt string) {
	txt = TargetPrintNames[tt]
	return
}

func NewTargetType(label string) (tt TargetType) {
	var (
		ok  bool
		err error
	)
	label = strings.ToLower(label)
	if tt, ok = TargetNames[label]; !ok {
		err = fmt.Errorf("unable to use target named %s", label)
		panic(err)
	}
	return
}

// Target is the quantity a well control holds constant. Immutable value type.
type Target struct {
	Type  TargetType
	Value float64
}

// IsRateWeighted reports whether the evaluated target value scales with the
// well's total surface mass rate. Every target except Disabled and
// BottomHolePressure is rate weighted.
func (t Target) IsRateWeighted() bool {
	switch t.Type {
	case DisabledTarget, BottomHolePressureTarget:
		return false
	}
	return true
}

// LumpedPhases returns the phase subset a rate target applies to, nil for
// pressure and disabled targets.
func (t Target) LumpedPhases() []Phase {
	return lumpedPhases[t.Type]
}

func (t Target) Print() (txt string) {
	txt = fmt.Sprintf("%s(%g)", t.Type.Print(), t.Value)
	return
}
