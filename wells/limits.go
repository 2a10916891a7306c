package wells

import (
	"fmt"
	"math"
	"strings"
)

type LimitKind uint

// Enumeration order is the checking order: the first violated limit wins.
const (
	LimitBHP LimitKind = iota
	LimitOilRate
	LimitLiquidRate
	LimitGasRate
	LimitWaterRate
	LimitRate
	LimitRateLower
	LimitRateUpper
	NumLimitKinds
)

var (
	LimitNames = map[string]LimitKind{
		"bhp":        LimitBHP,
		"orat":       LimitOilRate,
		"lrat":       LimitLiquidRate,
		"grat":       LimitGasRate,
		"wrat":       LimitWaterRate,
		"rate":       LimitRate,
		"rate_lower": LimitRateLower,
		"rate_upper": LimitRateUpper,
	}
	LimitPrintNames = []string{
		"bhp", "orat", "lrat", "grat", "wrat", "rate", "rate_lower", "rate_upper",
	}
)

func (lk LimitKind) Print() (txt string) {
	txt = LimitPrintNames[lk]
	return
}

func NewLimitKind(label string) (lk LimitKind, err error) {
	var (
		ok bool
	)
	label = strings.ToLower(label)
	if lk, ok = LimitNames[label]; !ok {
		err = fmt.Errorf("unknown operating limit %q", label)
	}
	return
}

// Limits is a well's active operating bounds, indexed by kind. Entries that
// are NaN (or otherwise non-finite) are inactive.
type Limits [NumLimitKinds]float64

func NewLimits() (l Limits) {
	for k := range l {
		l[k] = math.NaN()
	}
	return
}

func (l *Limits) Set(kind LimitKind, bound float64) *Limits {
	l[kind] = bound
	return l
}

func (l Limits) Active(kind LimitKind) bool {
	return !math.IsNaN(l[kind]) && !math.IsInf(l[kind], 0)
}

// ParseLimits validates a string-keyed bound map at construction time,
// rejecting unknown kinds immediately rather than at first use.
func ParseLimits(bounds map[string]float64) (l Limits, err error) {
	l = NewLimits()
	for label, bound := range bounds {
		var kind LimitKind
		if kind, err = NewLimitKind(label); err != nil {
			return
		}
		l[kind] = bound
	}
	return
}

// Translate maps an operating limit to the target the well switches to when
// the limit is violated, plus the direction of the test. isLower means the
// limit trips when the evaluated value falls below the bound; otherwise it
// trips when the value rises above it. Producer rates are negative, injector
// rates positive, which is why the directions differ per role. Kinds without
// a row for the control's role are unsupported and fatal.
func Translate(ctrl Control, kind LimitKind, bound float64) (limitTarget Target, isLower bool, err error) {
	switch ctrl.Role {
	case ProducerRole:
		switch kind {
		case LimitBHP:
			return Target{BottomHolePressureTarget, bound}, true, nil
		case LimitOilRate:
			return Target{SurfaceOilRateTarget, bound}, false, nil
		case LimitLiquidRate:
			return Target{SurfaceLiquidRateTarget, bound}, false, nil
		case LimitGasRate:
			return Target{SurfaceGasRateTarget, bound}, false, nil
		case LimitWaterRate:
			return Target{SurfaceWaterRateTarget, bound}, false, nil
		case LimitRate, LimitRateUpper:
			return Target{TotalSurfaceRateTarget, bound}, false, nil
		case LimitRateLower:
			// Signed producer rate rising above the bound means production
			// has dropped below the minimum (heading toward re-injection).
			return Target{TotalSurfaceRateTarget, bound}, false, nil
		}
	case InjectorRole:
		switch kind {
		case LimitBHP:
			return Target{BottomHolePressureTarget, bound}, false, nil
		case LimitRate, LimitRateUpper:
			return Target{TotalSurfaceRateTarget, bound}, false, nil
		case LimitRateLower:
			return Target{TotalSurfaceRateTarget, bound}, true, nil
		}
	}
	err = fmt.Errorf("limit %s is not supported for a %s control",
		kind.Print(), ctrl.Role.Print())
	return
}

// limitEps is the relative tolerance applied when testing a bound.
const limitEps = 1.0e-6

// CheckLimits tests every active limit against the current well state, in
// enumeration order, and returns the control with its target replaced by the
// first violated limit's target. The role never changes. A limit whose
// target variant matches the control's current target is skipped: the well
// already operates there and cannot violate it.
func CheckLimits(ctrl Control, limits Limits, ws WellState) (out Control, switched bool, err error) {
	out = ctrl
	if ctrl.Role == DisabledRole {
		return
	}
	for kind := LimitKind(0); kind < NumLimitKinds; kind++ {
		if !limits.Active(kind) {
			continue
		}
		bound := limits[kind]
		var (
			limitTarget Target
			isLower     bool
		)
		if limitTarget, isLower, err = Translate(ctrl, kind, bound); err != nil {
			return
		}
		if limitTarget.Type == ctrl.Target.Type {
			continue
		}
		current := ValueWeighted(ctrl, limitTarget, ws.TotalMassRate, ws)
		var violated bool
		if isLower {
			violated = current < (1+limitEps)*bound
		} else {
			violated = current > (1-limitEps)*bound
		}
		if violated {
			out.Target = limitTarget
			switched = true
			return
		}
	}
	return
}
