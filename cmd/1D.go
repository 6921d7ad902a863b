/*
Copyright © 2021 NAME HERE <EMAIL ADDRESS>

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
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/openhydro/goswe/InputParameters"
	"github.com/openhydro/goswe/model_problems/SaintVenant1D"
)

// OneDCmd represents the 1D command
var OneDCmd = &cobra.Command{
	Use:   "1D",
	Short: "One dimensional unsteady open-channel flow on a rectangular reach",
	Long: `
Integrates the Saint-Venant equations from t=0 to the final time,
recording depth and discharge profiles at the output cadence,

goswe 1D -F case.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("1D called")
		cp := processInput(cmd)
		if prof, _ := cmd.Flags().GetBool("profile"); prof {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		}
		verbose, _ := cmd.Flags().GetBool("verbose")
		csvPrefix, _ := cmd.Flags().GetString("output")
		Run1D(cp, verbose, csvPrefix)
	},
}

func init() {
	rootCmd.AddCommand(OneDCmd)
	OneDCmd.Flags().StringP("caseFile", "F", "", "YAML case parameter file; flags below override nothing when given")
	OneDCmd.Flags().Float64P("length", "L", 1000, "reach length (m)")
	OneDCmd.Flags().Float64P("width", "b", 10, "channel bottom width (m)")
	OneDCmd.Flags().Float64P("slope", "s", 0.0001, "bed slope S0")
	OneDCmd.Flags().Float64P("manningN", "n", 0.03, "Manning roughness coefficient")
	OneDCmd.Flags().Float64P("gravity", "g", SaintVenant1D.G, "gravitational acceleration (m/s2)")
	OneDCmd.Flags().Float64("dx", 100, "spatial step (m)")
	OneDCmd.Flags().Float64("dt", 0, "fixed time step (s); 0 selects CFL-adaptive stepping")
	OneDCmd.Flags().Float64("courant", SaintVenant1D.DefaultCourant, "target Courant number for adaptive stepping - values above 1 are unstable")
	OneDCmd.Flags().Float64P("finalTime", "T", 3600, "FinalTime - the target end time for the sim (s)")
	OneDCmd.Flags().Float64("dtOutput", 300, "output snapshot cadence (s)")
	OneDCmd.Flags().Float64("h0", 2.0, "initial uniform depth (m)")
	OneDCmd.Flags().Float64("q0", 20.0, "initial uniform discharge (m3/s)")
	OneDCmd.Flags().StringP("output", "o", "", "prefix for CSV result files; empty disables output")
	OneDCmd.Flags().BoolP("verbose", "v", false, "log per-step diagnostics")
	OneDCmd.Flags().Bool("profile", false, "write a CPU profile for the run")
}

func processInput(cmd *cobra.Command) (cp *InputParameters.CaseParameters) {
	cp = &InputParameters.CaseParameters{}
	if caseFile, _ := cmd.Flags().GetString("caseFile"); caseFile != "" {
		data, err := os.ReadFile(caseFile)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		if err = cp.Parse(data); err != nil {
			fmt.Printf("error parsing %s: %s\n", caseFile, err.Error())
			exampleFile := `
########################################
Title: "Tidal River"
Length: 10000.
Width: 50.
Slope: 0.0001
ManningN: 0.025
Dx: 500.
TargetCourant: 0.5
FinalTime: 43200.
DtOutput: 1800.
InitialDepth: 3.0
InitialDischarge: 100.
BCs:
  Upstream:
    Type: constant
    Params: { Depth: 3.0, Discharge: 100. }
  Downstream:
    Type: tidal
    Params: { MeanDepth: 3.0, Amplitude: 0.5, Period: 44712. }
########################################
`
			fmt.Printf("example case file:%s", exampleFile)
			os.Exit(1)
		}
		cp.Print()
		return
	}
	cp.Title = "command line case"
	cp.Length, _ = cmd.Flags().GetFloat64("length")
	cp.Width, _ = cmd.Flags().GetFloat64("width")
	cp.Slope, _ = cmd.Flags().GetFloat64("slope")
	cp.ManningN, _ = cmd.Flags().GetFloat64("manningN")
	cp.Gravity, _ = cmd.Flags().GetFloat64("gravity")
	cp.Dx, _ = cmd.Flags().GetFloat64("dx")
	cp.Dt, _ = cmd.Flags().GetFloat64("dt")
	cp.TargetCourant, _ = cmd.Flags().GetFloat64("courant")
	cp.FinalTime, _ = cmd.Flags().GetFloat64("finalTime")
	cp.DtOutput, _ = cmd.Flags().GetFloat64("dtOutput")
	cp.InitialDepth, _ = cmd.Flags().GetFloat64("h0")
	cp.InitialDischarge, _ = cmd.Flags().GetFloat64("q0")
	if err := cp.Validate(); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	return
}

func Run1D(cp *InputParameters.CaseParameters, verbose bool, csvPrefix string) {
	gravity := cp.Gravity
	if gravity == 0 {
		gravity = SaintVenant1D.G
	}
	ch, err := SaintVenant1D.NewRectangularChannel(cp.Length, cp.Width, cp.Slope, cp.ManningN, gravity)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	c, err := SaintVenant1D.New(ch, cp.Dx)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	if cp.Dt > 0 {
		if err = c.SetFixedTimestep(cp.Dt); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	} else if cp.TargetCourant > 0 {
		c.SetTargetCourant(cp.TargetCourant)
	}
	if err = c.SetUniformInitial(cp.InitialDepth, cp.InitialDischarge); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	up, err := buildBoundary(cp.BCs["Upstream"])
	if err != nil {
		fmt.Printf("error in upstream BC: %s\n", err.Error())
		os.Exit(1)
	}
	down, err := buildBoundary(cp.BCs["Downstream"])
	if err != nil {
		fmt.Printf("error in downstream BC: %s\n", err.Error())
		os.Exit(1)
	}
	c.SetBoundaryConditions(up, down)

	res, err := c.Run(cp.FinalTime, cp.DtOutput, verbose)
	if err != nil {
		fmt.Printf("run aborted: %s\n", err.Error())
		if res != nil {
			fmt.Printf("partial results: %d snapshots over %d steps\n", len(res.Times), res.Steps)
		}
	} else {
		fmt.Printf("run complete: %d steps, %d snapshots, t = %8.1f s\n",
			res.Steps, len(res.Times), c.Time)
		fmt.Printf("final profile: h in [%8.4f, %8.4f] m, Q in [%8.3f, %8.3f] m3/s\n",
			c.H.Min(), c.H.Max(), c.Q.Min(), c.Q.Max())
	}
	if res != nil && csvPrefix != "" {
		if err = writeResult(csvPrefix, res); err != nil {
			fmt.Printf("error writing results: %s\n", err.Error())
			os.Exit(1)
		}
		fmt.Printf("wrote %s_h.csv and %s_q.csv\n", csvPrefix, csvPrefix)
	}
}

func buildBoundary(p InputParameters.BCParam) (SaintVenant1D.BoundaryCondition, error) {
	switch p.Type {
	case "":
		return nil, nil // unset end: zero-gradient extrapolation
	case "constant":
		return SaintVenant1D.ConstantBoundary{
			Depth:     p.Params["Depth"],
			Discharge: p.Params["Discharge"],
		}, nil
	case "constantDepth":
		return SaintVenant1D.ConstantDepth{Depth: p.Params["Depth"]}, nil
	case "stepHydrograph":
		return SaintVenant1D.StepHydrograph{
			Before: p.Params["Before"],
			After:  p.Params["After"],
			At:     p.Params["At"],
		}, nil
	case "tidal":
		return SaintVenant1D.TidalBoundary{
			MeanDepth: p.Params["MeanDepth"],
			Amplitude: p.Params["Amplitude"],
			Period:    p.Params["Period"],
			Phase:     p.Params["Phase"],
		}, nil
	}
	return nil, fmt.Errorf("unknown boundary type %q", p.Type)
}

// writeResult dumps the recorded depth and discharge matrices as CSV,
// one row per output time, first column t, remaining columns the nodes.
func writeResult(prefix string, res *SaintVenant1D.RunResult) error {
	write := func(path string, m interface{ At(i, j int) float64 }) error {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w := csv.NewWriter(f)
		defer w.Flush()
		header := make([]string, res.X.Len()+1)
		header[0] = "t"
		for j := 0; j < res.X.Len(); j++ {
			header[j+1] = strconv.FormatFloat(res.X.AtVec(j), 'g', -1, 64)
		}
		if err = w.Write(header); err != nil {
			return err
		}
		row := make([]string, res.X.Len()+1)
		for i, t := range res.Times {
			row[0] = strconv.FormatFloat(t, 'g', -1, 64)
			for j := 0; j < res.X.Len(); j++ {
				row[j+1] = strconv.FormatFloat(m.At(i, j), 'g', -1, 64)
			}
			if err = w.Write(row); err != nil {
				return err
			}
		}
		return nil
	}
	if err := write(prefix+"_h.csv", res.H); err != nil {
		return err
	}
	return write(prefix+"_q.csv", res.Q)
}
