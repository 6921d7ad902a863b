package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var caseYAML = `
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
`

func TestParseCaseFile(t *testing.T) {
	cp := &CaseParameters{}
	require.NoError(t, cp.Parse([]byte(caseYAML)))
	assert.Equal(t, "Tidal River", cp.Title)
	assert.Equal(t, 10000., cp.Length)
	assert.Equal(t, 0.025, cp.ManningN)
	assert.Equal(t, 0., cp.Dt)      // omitted, adaptive stepping
	assert.Equal(t, 0., cp.Gravity) // omitted, solver default applies
	require.Contains(t, cp.BCs, "Downstream")
	bc := cp.BCs["Downstream"]
	assert.Equal(t, "tidal", bc.Type)
	assert.Equal(t, 0.5, bc.Params["Amplitude"])
	cp.Print()
}

func TestValidation(t *testing.T) {
	good := func() *CaseParameters {
		cp := &CaseParameters{}
		require.NoError(t, cp.Parse([]byte(caseYAML)))
		return cp
	}
	cp := good()
	cp.Width = 0
	assert.Error(t, cp.Validate())
	cp = good()
	cp.Dx = -1
	assert.Error(t, cp.Validate())
	cp = good()
	cp.DtOutput = 0
	assert.Error(t, cp.Validate())
	cp = good()
	cp.Gravity = -1
	assert.Error(t, cp.Validate())
	cp = good()
	cp.BCs["Middle"] = BCParam{Type: "constant"}
	assert.Error(t, cp.Validate())
}
