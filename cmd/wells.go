/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/darcyflow/gores/InputParameters"
	"github.com/darcyflow/gores/utils"
	"github.com/darcyflow/gores/wells"
	"github.com/darcyflow/gores/wellsolver"
)

type WellModel struct {
	CaseFile string
	Verbose  bool
	Profile  bool
	Perf     bool
}

// WellsCmd represents the wells command
var WellsCmd = &cobra.Command{
	Use:   "wells",
	Short: "Run the well-control schedule of a case file",
	Long: `Runs the per-step control update and bounded well pre-solve over the
report steps of a YAML case file`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		wm := &WellModel{}
		if wm.CaseFile, err = cmd.Flags().GetString("caseFile"); err != nil {
			panic(err)
		}
		wm.Verbose, _ = cmd.Flags().GetBool("verbose")
		wm.Profile, _ = cmd.Flags().GetBool("profile")
		wm.Perf, _ = cmd.Flags().GetBool("perf")
		wp := processInput(wm)
		RunWells(wm, wp)
	},
}

func init() {
	rootCmd.AddCommand(WellsCmd)
	WellsCmd.Flags().StringP("caseFile", "F", "", "YAML case file with wells, regions and schedule")
	WellsCmd.Flags().BoolP("verbose", "v", false, "print the pre-solve progress per round")
	WellsCmd.Flags().Bool("profile", false, "write a CPU profile of the run")
	WellsCmd.Flags().Bool("perf", false, "count hardware instructions over the schedule (linux)")
}

func processInput(wm *WellModel) (wp *InputParameters.WellControlParameters) {
	var (
		err  error
		data []byte
	)
	if len(wm.CaseFile) == 0 {
		err = fmt.Errorf("must supply a case file (-F) for the wells run")
		fmt.Println(err)
		os.Exit(1)
	}
	if data, err = ioutil.ReadFile(wm.CaseFile); err != nil {
		panic(err)
	}
	wp = &InputParameters.WellControlParameters{
		MaxWellIterations: 8,
		AcceptanceFactor:  10,
		ToleranceControl:  1.e-8,
		ToleranceFlow:     1.e-8,
	}
	if err = wp.Parse(data); err != nil {
		panic(err)
	}
	wp.Print()
	return
}

func RunWells(wm *WellModel, wp *InputParameters.WellControlParameters) {
	if wm.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}
	var (
		names   []string
		specs   []wellsolver.WellSpec
		regions = make(map[string]wellsolver.Region)
	)
	for _, wd := range wp.Wells {
		names = append(names, wd.Name)
		specs = append(specs, wellsolver.WellSpec{
			Name:              wd.Name,
			Group:             wd.Group,
			ProductivityIndex: wd.ProductivityIndex,
			SurfaceDensities:  phaseValues(wd.SurfaceDensities),
			VolumeFractions:   phaseValues(wd.VolumeFractions),
		})
	}
	for name, rd := range wp.Regions {
		regions[name] = wellsolver.Region{Pressure: rd.Pressure, Drawdown: rd.Drawdown}
	}
	cfg := wells.NewWellGroupConfiguration(names)
	sys, err := wellsolver.NewStandardWellSystem(cfg, specs, regions,
		wp.ToleranceControl, wp.ToleranceFlow)
	if err != nil {
		panic(err)
	}
	par := wellsolver.Parameters{
		MaxWellIterations: wp.MaxWellIterations,
		AcceptanceFactor:  wp.AcceptanceFactor,
		Verbose:           wm.Verbose || wp.Verbose,
	}
	run := func() {
		for step, sd := range wp.Schedule {
			f := buildForces(sd)
			rep, err := wellsolver.AdvanceWells(sys, f, par)
			if err != nil {
				panic(err)
			}
			printStep(step, rep, sys)
		}
	}
	if wm.Perf {
		instructions, err := utils.CountInstructions(run)
		if err != nil {
			fmt.Printf("unable to count instructions: %v\n", err)
		} else {
			fmt.Printf("%d instructions over %d schedule steps\n", instructions, len(wp.Schedule))
		}
		return
	}
	run()
}

func printStep(step int, rep wellsolver.Report, sys *wellsolver.StandardWellSystem) {
	status := "converged"
	if rep.RolledBack {
		status = "rolled back"
	}
	fmt.Printf("step %4d: %s in %d rounds, err = %8.5e\n",
		step, status, rep.Iterations, rep.Error)
	for _, sw := range rep.Switches {
		fmt.Printf("           switched %s\n", sw.Print())
	}
	for _, name := range sys.Configuration().Names() {
		fmt.Printf("           %-8s %-32s q = %12.5e, bhp = %12.5e\n",
			name, sys.Configuration().Operating(name).Print(),
			sys.Rate(name), sys.BottomHolePressure(name))
	}
}

func buildForces(sd InputParameters.StepDef) (f wells.Forces) {
	f = wells.Forces{
		Controls: make(map[string]wells.Control),
		Limits:   make(map[string]wells.Limits),
	}
	for name, cd := range sd.Controls {
		f.Controls[name] = buildControl(cd)
	}
	for name, bounds := range sd.Limits {
		limits, err := wells.ParseLimits(bounds)
		if err != nil {
			panic(err)
		}
		f.Limits[name] = limits
	}
	return
}

func buildControl(cd InputParameters.ControlDef) (ctrl wells.Control) {
	role := wells.NewControlRole(cd.Role)
	switch role {
	case wells.DisabledRole:
		ctrl = wells.DisabledControl()
	case wells.ProducerRole:
		ctrl = wells.ProducerControl(wells.Target{
			Type:  wells.NewTargetType(cd.Target),
			Value: cd.Value,
		})
	case wells.InjectorRole:
		ctrl = wells.InjectorControl(wells.Target{
			Type:  wells.NewTargetType(cd.Target),
			Value: cd.Value,
		}, phaseValues(cd.InjectionMix), cd.MixtureDensity)
	}
	return
}

func phaseValues(m map[string]float64) (vals [wells.NumPhases]float64) {
	for label, v := range m {
		vals[wells.NewPhase(label)] = v
	}
	return
}
