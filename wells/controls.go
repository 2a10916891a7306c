package wells

import (
	"fmt"
	"strings"
)

type ControlRole uint

const (
	DisabledRole ControlRole = iota
	InjectorRole
	ProducerRole
)

var (
	RoleNames = map[string]ControlRole{
		"disabled": DisabledRole,
		"injector": InjectorRole,
		"producer": ProducerRole,
	}
	RolePrintNames = []string{"Disabled", "Injector", "Producer"}
)

func (cr ControlRole) Print() (txt string) {
	txt = RolePrintNames[cr]
	return
}

func NewControlRole(label string) (cr ControlRole) {
	var (
		ok  bool
		err error
	)
	label = strings.ToLower(label)
	if cr, ok = RoleNames[label]; !ok {
		err = fmt.Errorf("unable to use control role named %s", label)
		panic(err)
	}
	return
}

// Control is what a well is operating against: a role plus the target it
// holds. Injectors additionally carry the injected phase mass-fraction mix
// and the density of the injected mixture. Controls compare by value, which
// the pre-step updater relies on to detect an externally changed request.
type Control struct {
	Role           ControlRole
	Target         Target
	InjectionMix   [NumPhases]float64
	MixtureDensity float64
}

func DisabledControl() (c Control) {
	c = Control{Role: DisabledRole, Target: Target{Type: DisabledTarget}}
	return
}

func ProducerControl(t Target) (c Control) {
	c = Control{Role: ProducerRole, Target: t}
	return
}

func InjectorControl(t Target, mix [NumPhases]float64, mixtureDensity float64) (c Control) {
	c = Control{
		Role:           InjectorRole,
		Target:         t,
		InjectionMix:   mix,
		MixtureDensity: mixtureDensity,
	}
	return
}

func (c Control) Print() (txt string) {
	txt = fmt.Sprintf("%s[%s]", c.Role.Print(), c.Target.Print())
	return
}
