package wells

import (
	"fmt"
	"sort"
)

// WellControls is the per-well mutable control record. Operating is
// authoritative and drives the well equations; Requested is the last control
// explicitly set by the caller and is kept only to detect external changes.
// Operating is always either equal to Requested or a limit-derived variant of
// it with the same role.
type WellControls struct {
	Operating Control
	Requested Control
	Limits    Limits
}

// ControlSwitch records a limit-triggered target replacement, for
// diagnostics only.
type ControlSwitch struct {
	Well     string
	From, To Target
}

func (cs ControlSwitch) Print() (txt string) {
	txt = fmt.Sprintf("%s: %s -> %s", cs.Well, cs.From.Print(), cs.To.Print())
	return
}

// WellGroupConfiguration owns the control state of every well for the
// duration of a simulation. It is created once with all wells disabled,
// mutated each timestep by UpdateBeforeStep and, within a timestep, by the
// sub-solver's limit checks.
type WellGroupConfiguration struct {
	Wells    map[string]*WellControls
	names    []string // sorted, for deterministic iteration
	Switches []ControlSwitch
}

func NewWellGroupConfiguration(names []string) (c *WellGroupConfiguration) {
	c = &WellGroupConfiguration{
		Wells: make(map[string]*WellControls),
		names: make([]string, len(names)),
	}
	copy(c.names, names)
	sort.Strings(c.names)
	for _, name := range c.names {
		c.Wells[name] = &WellControls{
			Operating: DisabledControl(),
			Requested: DisabledControl(),
			Limits:    NewLimits(),
		}
	}
	return
}

func (c *WellGroupConfiguration) Names() []string {
	return c.names
}

func (c *WellGroupConfiguration) Operating(well string) (ctrl Control) {
	wc, ok := c.Wells[well]
	if !ok {
		panic(fmt.Errorf("well %s is not in the configuration", well))
	}
	ctrl = wc.Operating
	return
}

// Forces is the per-timestep external request: desired controls and
// operating limits per well.
type Forces struct {
	Controls map[string]Control
	Limits   map[string]Limits
}

// UpdateBeforeStep reconciles forces against the stored state once per
// timestep, before any solve. For every well present in forces: an
// explicitly changed request overwrites both Requested and Operating,
// discarding any limit-triggered override from the previous step; the rate
// primary is clamped into the valid sign region for the (possibly new) role;
// and the limit set is replaced wholesale by the forces' set. A forces entry
// naming a well absent from the configuration is fatal.
func (c *WellGroupConfiguration) UpdateBeforeStep(f Forces, rates SurfaceRates) (err error) {
	for well := range f.Limits {
		if _, ok := c.Wells[well]; !ok {
			err = fmt.Errorf("limits reference well %s which is not in the configuration", well)
			return
		}
	}
	for _, well := range sortedKeys(f.Controls) {
		wc, ok := c.Wells[well]
		if !ok {
			err = fmt.Errorf("forces reference well %s which is not in the configuration", well)
			return
		}
		requested := f.Controls[well]
		if requested != wc.Requested {
			wc.Requested = requested
			wc.Operating = requested
		}
		rates.Clamp(well, wc.Operating.Role)
		if limits, present := f.Limits[well]; present {
			wc.Limits = limits
		} else {
			wc.Limits = NewLimits()
		}
	}
	return
}

// CheckWellLimits runs the limit check for one well against ws, replacing
// the operating target on the first violation and recording the switch.
func (c *WellGroupConfiguration) CheckWellLimits(well string, ws WellState) (switched bool, err error) {
	wc, ok := c.Wells[well]
	if !ok {
		err = fmt.Errorf("well %s is not in the configuration", well)
		return
	}
	var ctrl Control
	if ctrl, switched, err = CheckLimits(wc.Operating, wc.Limits, ws); err != nil {
		return
	}
	if switched {
		c.Switches = append(c.Switches, ControlSwitch{
			Well: well,
			From: wc.Operating.Target,
			To:   ctrl.Target,
		})
		wc.Operating = ctrl
	}
	return
}

// DrainSwitches returns and clears the recorded control switches.
func (c *WellGroupConfiguration) DrainSwitches() (switches []ControlSwitch) {
	switches = c.Switches
	c.Switches = nil
	return
}

func sortedKeys(m map[string]Control) (keys []string) {
	keys = make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return
}
