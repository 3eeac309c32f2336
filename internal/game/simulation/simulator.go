// Package simulation implements the deterministic three-body gravitational
// simulator that serves as the house's physical entropy source. It owns the
// integration of domain/physics bodies: everything here is pure arithmetic, driven
// step by step exactly as spec.md §4.1 requires for cross-verifier
// reproducibility.
package simulation

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strings"

	"github.com/provablyfair/slotcore/domain/physics"
	"github.com/provablyfair/slotcore/domain/simulation"
)

// Simulator drives the RK4 integration of a SystemConfiguration over a
// requested duration and extracts the canonical entropy digest afterward.
type Simulator struct{}

// New creates a new three-body simulator. It holds no state: every call to
// Run is independent and reproducible given the same inputs.
func New() *Simulator {
	return &Simulator{}
}

// Run integrates cfg forward by params.Duration using fixed-step RK4 with
// Plummer softening, returning the canonical digest of the final state.
// It fails with simulation.ErrNumericalInstability the moment any body's
// position or velocity stops being finite; there is no retry.
func (s *Simulator) Run(cfg physics.SystemConfiguration, params simulation.Params) (simulation.Digest, simulation.FinalState, error) {
	var zero simulation.Digest
	var zeroState simulation.FinalState

	if err := cfg.Validate(); err != nil {
		return zero, zeroState, err
	}
	if err := params.Validate(); err != nil {
		return zero, zeroState, err
	}

	initialHash := hashConfiguration(cfg)

	bodies := cfg.Bodies
	steps := int(params.Duration / params.TimeStep)
	remaining := params.Duration

	chaoticMetric := 0.0

	for i := 0; i < steps; i++ {
		bodies = stepRK4(bodies, cfg.G, cfg.Eps, params.TimeStep)
		if !allFinite(bodies) {
			return zero, zeroState, simulation.ErrNumericalInstability
		}
		chaoticMetric += separationMetric(bodies)
		remaining -= params.TimeStep
	}

	// Clip the final step so simulated time equals the requested duration exactly.
	if remaining > 0 {
		bodies = stepRK4(bodies, cfg.G, cfg.Eps, remaining)
		if !allFinite(bodies) {
			return zero, zeroState, simulation.ErrNumericalInstability
		}
		chaoticMetric += separationMetric(bodies)
		steps++
	}

	digestHex := extractDigest(bodies)

	return simulation.Digest{
		Hex:              digestHex,
		InitialStateHash: initialHash,
		Duration:         params.Duration,
		TimeStep:         params.TimeStep,
		Steps:            steps,
		ChaoticMetric:    chaoticMetric,
	}, simulation.FinalState{Bodies: bodies}, nil
}

// acceleration computes a_i for every body, summing body-to-body
// contributions in ascending index order with no parallel reduction, per
// spec.md §4.1's determinism contract.
func acceleration(bodies [3]physics.Body, positions [3]physics.Vector3, g, eps float64) [3]physics.Vector3 {
	var acc [3]physics.Vector3
	for i := 0; i < 3; i++ {
		var a physics.Vector3
		for j := 0; j < 3; j++ {
			if i == j {
				continue
			}
			diff := positions[j].Sub(positions[i])
			distSq := diff.MagnitudeSquared() + eps*eps
			denom := math.Pow(distSq, 1.5)
			a = a.Add(diff.Scale(g * bodies[j].Mass / denom))
		}
		acc[i] = a
	}
	return acc
}

// stage is one RK4 evaluation: the position/velocity derivative pair at a
// given offset state.
type stage struct {
	dPos [3]physics.Vector3
	dVel [3]physics.Vector3
}

func evalStage(bodies [3]physics.Body, positions [3]physics.Vector3, velocities [3]physics.Vector3, g, eps float64) stage {
	acc := acceleration(bodies, positions, g, eps)
	var st stage
	for i := 0; i < 3; i++ {
		st.dPos[i] = velocities[i]
		st.dVel[i] = acc[i]
	}
	return st
}

// stepRK4 advances all three bodies by h using classical 4th-order
// Runge-Kutta, evaluating stages in the order t, t+h/2, t+h/2, t+h.
func stepRK4(bodies [3]physics.Body, g, eps, h float64) [3]physics.Body {
	var pos0, vel0 [3]physics.Vector3
	for i := 0; i < 3; i++ {
		pos0[i] = bodies[i].Position
		vel0[i] = bodies[i].Velocity
	}

	k1 := evalStage(bodies, pos0, vel0, g, eps)

	pos1 := offsetVectors(pos0, k1.dPos, h/2)
	vel1 := offsetVectors(vel0, k1.dVel, h/2)
	k2 := evalStage(bodies, pos1, vel1, g, eps)

	pos2 := offsetVectors(pos0, k2.dPos, h/2)
	vel2 := offsetVectors(vel0, k2.dVel, h/2)
	k3 := evalStage(bodies, pos2, vel2, g, eps)

	pos3 := offsetVectors(pos0, k3.dPos, h)
	vel3 := offsetVectors(vel0, k3.dVel, h)
	k4 := evalStage(bodies, pos3, vel3, g, eps)

	var next [3]physics.Body
	for i := 0; i < 3; i++ {
		dPos := weightedSum(k1.dPos[i], k2.dPos[i], k3.dPos[i], k4.dPos[i])
		dVel := weightedSum(k1.dVel[i], k2.dVel[i], k3.dVel[i], k4.dVel[i])
		next[i] = physics.Body{
			Mass:     bodies[i].Mass,
			Position: pos0[i].Add(dPos.Scale(h / 6)),
			Velocity: vel0[i].Add(dVel.Scale(h / 6)),
		}
	}
	return next
}

func offsetVectors(base, delta [3]physics.Vector3, scale float64) [3]physics.Vector3 {
	var out [3]physics.Vector3
	for i := 0; i < 3; i++ {
		out[i] = base[i].Add(delta[i].Scale(scale))
	}
	return out
}

func weightedSum(k1, k2, k3, k4 physics.Vector3) physics.Vector3 {
	return k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4)
}

func allFinite(bodies [3]physics.Body) bool {
	for _, b := range bodies {
		if !b.IsFinite() {
			return false
		}
	}
	return true
}

// separationMetric is a cheap diagnostic proxy for chaotic sensitivity: the
// sum of log pairwise distances this step. Not consumed by the protocol.
func separationMetric(bodies [3]physics.Body) float64 {
	sum := 0.0
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			d := bodies[i].Position.Distance(bodies[j].Position)
			if d > 0 {
				sum += math.Log(d)
			}
		}
	}
	return sum
}

// extractDigest implements spec.md §6's bit-exact canonical form: the 18
// component values (3 bodies x 2 vectors x 3 axes), in body order, each
// formatted to the standard library's %.15e-equivalent precision, joined by
// ":", SHA-256 hashed.
func extractDigest(bodies [3]physics.Body) string {
	parts := make([]string, 0, 18)
	for _, b := range bodies {
		parts = append(parts,
			formatCanonical(b.Position.X), formatCanonical(b.Position.Y), formatCanonical(b.Position.Z),
			formatCanonical(b.Velocity.X), formatCanonical(b.Velocity.Y), formatCanonical(b.Velocity.Z),
		)
	}
	joined := strings.Join(parts, ":")
	sum := sha256.Sum256([]byte(joined))
	return hex.EncodeToString(sum[:])
}

func formatCanonical(f float64) string {
	return fmt.Sprintf("%.15e", f)
}

// hashConfiguration hashes the initial SystemConfiguration so a Digest can
// be tied back to the exact inputs that produced it.
func hashConfiguration(cfg physics.SystemConfiguration) string {
	parts := make([]string, 0, 20)
	for _, b := range cfg.Bodies {
		parts = append(parts,
			formatCanonical(b.Mass),
			formatCanonical(b.Position.X), formatCanonical(b.Position.Y), formatCanonical(b.Position.Z),
			formatCanonical(b.Velocity.X), formatCanonical(b.Velocity.Y), formatCanonical(b.Velocity.Z),
		)
	}
	parts = append(parts, formatCanonical(cfg.G), formatCanonical(cfg.Eps))
	joined := strings.Join(parts, ":")
	sum := sha256.Sum256([]byte(joined))
	return hex.EncodeToString(sum[:])
}
