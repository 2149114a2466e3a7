package reach

import (
	"testing"

	"github.com/ChristopherRabotin/ode"
	"github.com/stretchr/testify/require"
)

func TestPropagateVector(t *testing.T) {
	base, err := NewPolygonFromVertices([]Point{{10, 0}, {30, 0}, {30, 20}, {10, 20}})
	require.NoError(t, err)

	z, err := CreateZeroStatePolygon(2, -2, 2)
	require.NoError(t, err)

	out, err := Propagate(base, z, 2, 0, 20)
	require.NoError(t, err)
	require.NotNil(t, out)

	verts, err := out.Vertices()
	require.NoError(t, err)
	want := []Point{{72, 20}, {70, 18}, {34, 0}, {8, 0}, {10, 2}, {46, 20}}
	requirePointSetsEqual(t, want, verts)
}

func TestPropagateDropsEmptyClip(t *testing.T) {
	base := NewPolygonFromRectangle(0, 100, 1, 101) // v in [100,101], well outside clamp
	z, err := CreateZeroStatePolygon(2, -2, 2)
	require.NoError(t, err)

	out, err := Propagate(base, z, 2, 0, 20)
	require.NoError(t, err)
	require.Nil(t, out)
}

// doubleIntegrator is an ode.Integrable over the constant-acceleration
// double-integrator state (p, v), used only as a test oracle: GetState/
// SetState/Func mirror the shape mission.go's own Integrable (the Mission
// type) implements for ode.NewRK4.
type doubleIntegrator struct {
	p, v, a float64
}

func (d *doubleIntegrator) GetState() []float64 { return []float64{d.p, d.v} }

func (d *doubleIntegrator) SetState(t float64, s []float64) {
	d.p, d.v = s[0], s[1]
}

func (d *doubleIntegrator) Func(t float64, f []float64) []float64 {
	return []float64{f[1], d.a}
}

// TestPropagateAgainstODEOracle cross-validates the closed-form propagated
// polygon against direct RK4 numerical integration of the double
// integrator over the same dt, for every constant-acceleration corner
// case, using the same github.com/ChristopherRabotin/ode integrator the
// teacher's own Mission.Propagate drives via ode.NewRK4(...).Solve().
func TestPropagateAgainstODEOracle(t *testing.T) {
	const dt, aMin, aMax, vMin, vMax = 2.0, -2.0, 2.0, 0.0, 20.0
	base := NewPolygonFromRectangle(10, 0, 30, 20)
	z, err := CreateZeroStatePolygon(dt, aMin, aMax)
	require.NoError(t, err)
	out, err := Propagate(base, z, dt, vMin, vMax)
	require.NoError(t, err)
	require.NotNil(t, out)

	corners := []struct{ p0, v0 float64 }{{10, 0}, {30, 0}, {10, 20}, {30, 20}}
	accels := []float64{aMin, aMax}
	for _, c := range corners {
		for _, a := range accels {
			integrator := &doubleIntegrator{p: c.p0, v: c.v0, a: a}
			ode.NewRK4(0, dt, integrator).Solve()
			p, v := integrator.p, integrator.v
			if v < vMin || v > vMax {
				continue // outside the propagator's own velocity clamp
			}
			for _, h := range out.Halfspaces() {
				require.True(t, h.satisfies(p, v),
					"oracle point (p=%v,v=%v) from p0=%v v0=%v a=%v violates %+v", p, v, c.p0, c.v0, a, h)
			}
		}
	}
}
