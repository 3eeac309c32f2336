package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provablyfair/slotcore/domain/physics"
	"github.com/provablyfair/slotcore/domain/simulation"
)

func figureEightConfig() physics.SystemConfiguration {
	return physics.SystemConfiguration{
		Bodies: [3]physics.Body{
			{Mass: 1, Position: physics.Vector3{X: -1, Y: 0, Z: 0}, Velocity: physics.Vector3{X: 0.347111, Y: 0.532728, Z: 0}},
			{Mass: 1, Position: physics.Vector3{X: 1, Y: 0, Z: 0}, Velocity: physics.Vector3{X: 0.347111, Y: 0.532728, Z: 0}},
			{Mass: 1, Position: physics.Vector3{X: 0, Y: 0, Z: 0}, Velocity: physics.Vector3{X: -0.694222, Y: -1.065456, Z: 0}},
		},
		G:   1,
		Eps: 0.01,
	}
}

func TestRun_DeterminismAcrossIndependentRuns(t *testing.T) {
	cfg := figureEightConfig()
	params := simulation.Params{Duration: 1.0, TimeStep: 0.001, G: cfg.G, Eps: cfg.Eps}

	sim := New()
	d1, _, err := sim.Run(cfg, params)
	require.NoError(t, err)

	d2, _, err := sim.Run(cfg, params)
	require.NoError(t, err)

	assert.Equal(t, d1.Hex, d2.Hex, "two independent runs of the same config must produce identical digests")
	assert.Len(t, d1.Hex, 64)
}

func TestRun_DigestWellFormed(t *testing.T) {
	cfg := figureEightConfig()
	params := simulation.Params{Duration: 1.0, TimeStep: 0.001, G: cfg.G, Eps: cfg.Eps}

	d, _, err := New().Run(cfg, params)
	require.NoError(t, err)

	assert.Regexp(t, "^[0-9a-f]{64}$", d.Hex)
	assert.NotEmpty(t, d.InitialStateHash)
	assert.Equal(t, params.Duration, d.Duration)
	assert.Equal(t, params.TimeStep, d.TimeStep)
	assert.Greater(t, d.Steps, 0)
}

func TestRun_ChaoticSensitivity(t *testing.T) {
	cfg := figureEightConfig()
	perturbed := cfg
	perturbed.Bodies[0].Position.X += 1e-10

	params := simulation.Params{Duration: 10.0, TimeStep: 0.01, G: cfg.G, Eps: cfg.Eps}

	sim := New()
	d1, _, err := sim.Run(cfg, params)
	require.NoError(t, err)
	d2, _, err := sim.Run(perturbed, params)
	require.NoError(t, err)

	assert.NotEqual(t, d1.Hex, d2.Hex, "a tiny perturbation must diverge after enough simulated time")
}

func TestRun_RejectsInvalidParams(t *testing.T) {
	cfg := figureEightConfig()
	sim := New()

	_, _, err := sim.Run(cfg, simulation.Params{Duration: 0, TimeStep: 0.001, G: cfg.G, Eps: cfg.Eps})
	assert.ErrorIs(t, err, simulation.ErrInvalidDuration)

	_, _, err = sim.Run(cfg, simulation.Params{Duration: 1, TimeStep: 0, G: cfg.G, Eps: cfg.Eps})
	assert.ErrorIs(t, err, simulation.ErrInvalidTimeStep)
}

func TestRun_RejectsInvalidConfiguration(t *testing.T) {
	sim := New()
	bad := figureEightConfig()
	bad.Bodies[0].Mass = -1

	_, _, err := sim.Run(bad, simulation.Params{Duration: 1, TimeStep: 0.001, G: bad.G, Eps: bad.Eps})
	assert.ErrorIs(t, err, physics.ErrNonPositiveMass)
}

func TestRun_EnergyConservationDiagnostic(t *testing.T) {
	cfg := figureEightConfig()
	params := simulation.Params{Duration: 6.3259, TimeStep: 1e-4, G: cfg.G, Eps: cfg.Eps}

	energyBefore := totalEnergy(cfg)

	sim := New()
	_, final, err := sim.Run(cfg, params)
	require.NoError(t, err)

	after := cfg
	after.Bodies = final.Bodies
	energyAfter := totalEnergy(after)

	if energyBefore == 0 {
		t.Skip("degenerate energy baseline")
	}
	relError := (energyAfter - energyBefore) / energyBefore
	if relError < 0 {
		relError = -relError
	}
	assert.Less(t, relError, 1e-2)
}

func totalEnergy(cfg physics.SystemConfiguration) float64 {
	kinetic := 0.0
	for _, b := range cfg.Bodies {
		kinetic += 0.5 * b.Mass * b.Velocity.MagnitudeSquared()
	}
	potential := 0.0
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			d := cfg.Bodies[i].Position.Distance(cfg.Bodies[j].Position)
			potential -= cfg.G * cfg.Bodies[i].Mass * cfg.Bodies[j].Mass / d
		}
	}
	return kinetic + potential
}
