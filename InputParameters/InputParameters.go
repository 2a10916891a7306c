package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML case file
type WellControlParameters struct {
	Title             string               `yaml:"Title"`
	MaxWellIterations int                  `yaml:"MaxWellIterations"`
	AcceptanceFactor  float64              `yaml:"AcceptanceFactor"`
	ToleranceControl  float64              `yaml:"ToleranceControl"`
	ToleranceFlow     float64              `yaml:"ToleranceFlow"`
	Verbose           bool                 `yaml:"Verbose"`
	Wells             []WellDef            `yaml:"Wells"`
	Regions           map[string]RegionDef `yaml:"Regions"`
	Schedule          []StepDef            `yaml:"Schedule"`
}

type WellDef struct {
	Name              string             `yaml:"Name"`
	Group             string             `yaml:"Group"`
	ProductivityIndex float64            `yaml:"ProductivityIndex"`
	SurfaceDensities  map[string]float64 `yaml:"SurfaceDensities"` // keyed by phase name
	VolumeFractions   map[string]float64 `yaml:"VolumeFractions"`
}

type RegionDef struct {
	Pressure float64 `yaml:"Pressure"`
	Drawdown float64 `yaml:"Drawdown"`
}

// StepDef is one report step of the schedule: requested controls and
// operating limits per well
type StepDef struct {
	Controls map[string]ControlDef         `yaml:"Controls"`
	Limits   map[string]map[string]float64 `yaml:"Limits"` // well -> limit kind -> bound
}

type ControlDef struct {
	Role           string             `yaml:"Role"`   // injector, producer or disabled
	Target         string             `yaml:"Target"` // bhp, orat, lrat, grat, wrat or rate
	Value          float64            `yaml:"Value"`
	InjectionMix   map[string]float64 `yaml:"InjectionMix"` // injector only, keyed by phase name
	MixtureDensity float64            `yaml:"MixtureDensity"`
}

func (wp *WellControlParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, wp)
}

func (wp *WellControlParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", wp.Title)
	fmt.Printf("[%d]\t\t\t= Max Well Iterations\n", wp.MaxWellIterations)
	fmt.Printf("%8.5f\t\t= Acceptance Factor\n", wp.AcceptanceFactor)
	fmt.Printf("%8.2e\t\t= Tolerance (control)\n", wp.ToleranceControl)
	fmt.Printf("%8.2e\t\t= Tolerance (flow)\n", wp.ToleranceFlow)
	fmt.Printf("[%d]\t\t\t= Schedule Steps\n", len(wp.Schedule))
	for _, w := range wp.Wells {
		fmt.Printf("Well[%s] group %s, PI = %g\n", w.Name, w.Group, w.ProductivityIndex)
	}
	keys := make([]string, 0, len(wp.Regions))
	for k := range wp.Regions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("Region[%s] = %v\n", key, wp.Regions[key])
	}
}
