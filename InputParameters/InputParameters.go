package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// Case parameters obtained from the YAML input file
type CaseParameters struct {
	Title            string             `yaml:"Title"`
	Length           float64            `yaml:"Length"`   // m
	Width            float64            `yaml:"Width"`    // m
	Slope            float64            `yaml:"Slope"`    // bed slope S0
	ManningN         float64            `yaml:"ManningN"` // roughness
	Gravity          float64            `yaml:"Gravity"`  // m/s^2; 0 = default 9.81
	Dx               float64            `yaml:"Dx"`       // m
	Dt               float64            `yaml:"Dt"`       // s; 0 = CFL-adaptive
	TargetCourant    float64            `yaml:"TargetCourant"`
	FinalTime        float64            `yaml:"FinalTime"` // s
	DtOutput         float64            `yaml:"DtOutput"`  // s
	InitialDepth     float64            `yaml:"InitialDepth"`
	InitialDischarge float64            `yaml:"InitialDischarge"`
	BCs              map[string]BCParam `yaml:"BCs"` // keys "Upstream", "Downstream"
}

// BCParam names a boundary forcing type and its numeric parameters.
// Types: "constant" (Depth, Discharge), "constantDepth" (Depth),
// "stepHydrograph" (Before, After, At), "tidal" (MeanDepth, Amplitude,
// Period, Phase).
type BCParam struct {
	Type   string             `yaml:"Type"`
	Params map[string]float64 `yaml:"Params"`
}

func (cp *CaseParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, cp); err != nil {
		return err
	}
	return cp.Validate()
}

func (cp *CaseParameters) Validate() error {
	switch {
	case cp.Length <= 0:
		return fmt.Errorf("Length must be positive, got %g", cp.Length)
	case cp.Width <= 0:
		return fmt.Errorf("Width must be positive, got %g", cp.Width)
	case cp.ManningN <= 0:
		return fmt.Errorf("ManningN must be positive, got %g", cp.ManningN)
	case cp.Gravity < 0:
		return fmt.Errorf("Gravity must be non-negative, got %g", cp.Gravity)
	case cp.Dx <= 0:
		return fmt.Errorf("Dx must be positive, got %g", cp.Dx)
	case cp.Dt < 0:
		return fmt.Errorf("Dt must be non-negative, got %g", cp.Dt)
	case cp.FinalTime <= 0:
		return fmt.Errorf("FinalTime must be positive, got %g", cp.FinalTime)
	case cp.DtOutput <= 0:
		return fmt.Errorf("DtOutput must be positive, got %g", cp.DtOutput)
	}
	for end := range cp.BCs {
		if end != "Upstream" && end != "Downstream" {
			return fmt.Errorf("unknown BC end %q, want Upstream or Downstream", end)
		}
	}
	return nil
}

func (cp *CaseParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", cp.Title)
	fmt.Printf("%8.2f\t\t= Length (m)\n", cp.Length)
	fmt.Printf("%8.2f\t\t= Width (m)\n", cp.Width)
	fmt.Printf("%8.6f\t\t= Slope\n", cp.Slope)
	fmt.Printf("%8.4f\t\t= ManningN\n", cp.ManningN)
	if cp.Gravity > 0 {
		fmt.Printf("%8.3f\t\t= Gravity (m/s2)\n", cp.Gravity)
	}
	fmt.Printf("%8.2f\t\t= Dx (m)\n", cp.Dx)
	if cp.Dt > 0 {
		fmt.Printf("%8.3f\t\t= Dt (s, fixed)\n", cp.Dt)
	} else {
		fmt.Printf("%8.3f\t\t= TargetCourant (adaptive dt)\n", cp.TargetCourant)
	}
	fmt.Printf("%8.1f\t\t= FinalTime (s)\n", cp.FinalTime)
	fmt.Printf("%8.1f\t\t= DtOutput (s)\n", cp.DtOutput)
	keys := make([]string, len(cp.BCs))
	i := 0
	for k := range cp.BCs {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("BCs[%s] = %v\n", key, cp.BCs[key])
	}
}
