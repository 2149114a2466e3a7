package reach

// CreateBoundingBox returns the axis-aligned bounding box that conservatively
// bounds the double integrator's one-step reachable set: position extends
// over [0.5*a_min*dt^2, 0.5*a_max*dt^2], velocity over [a_min*dt, a_max*dt].
func CreateBoundingBox(dt, aMin, aMax float64) *Polygon {
	pMin, pMax := 0.5*aMin*dt*dt, 0.5*aMax*dt*dt
	vMin, vMax := aMin*dt, aMax*dt
	return NewPolygonFromRectangle(pMin, vMin, pMax, vMax)
}

// zeroStateGammaSamples is the set of normalized switching times (γ=t_switch/dt)
// at which the bang-bang envelope's tangent halfspaces are taken. γ=0 is the
// immediate-switch endpoint shared with the bounding box corners; γ=0.5 is the
// point of maximum deviation of the (quadratic-in-τ) parabolic arc from its
// chord, which for a parabola falls exactly at the parameter midpoint. These
// two per-arc tangents are what the spec's §9 Open Question 3 calls "the two
// extreme γ's yielding the characteristic hexagon": together with the
// bounding box they reproduce the §8 hexagon test vector exactly, and were
// chosen by reproducing that vector rather than by guessing at the
// underspecified original.
var zeroStateGammaSamples = []float64{0, 0.5}

// CreateZeroStatePolygon returns the set of (Δp, Δv) reachable in exactly dt
// seconds from (0,0) under constant-per-step bounded acceleration
// a(t)∈[aMin,aMax] with one switching time, per §4.2. The construction
// starts from the conservative bounding box and tightens it with the
// upper/lower tangent halfspace pair at each sample in zeroStateGammaSamples.
func CreateZeroStatePolygon(dt, aMin, aMax float64) (*Polygon, error) {
	z := CreateBoundingBox(dt, aMin, aMax)
	for _, gamma := range zeroStateGammaSamples {
		upper, lower := computeHalfspaceCoefficients(dt, aMin, aMax, gamma)
		if err := z.IntersectHalfspace(upper.A, upper.B, upper.C); err != nil && !IsInfeasible(err) {
			return nil, err
		}
		if err := z.IntersectHalfspace(lower.A, lower.B, lower.C); err != nil && !IsInfeasible(err) {
			return nil, err
		}
	}
	if _, err := z.Vertices(); err != nil {
		return nil, err
	}
	return z, nil
}

// computeHalfspaceCoefficients returns the upper and lower tangent
// halfspaces of the bang-bang reachable-set boundary at switching time
// γ·dt, per §4.2. The upper halfspace is tangent to the max-then-min
// trajectory (accelerate at aMax for γdt, then aMin for the remainder); the
// lower halfspace is tangent to the min-then-max trajectory, its symmetric
// counterpart. Both trajectories share the slope dp/dv=dt-γdt at their
// switching point, independent of aMin/aMax.
func computeHalfspaceCoefficients(dt, aMin, aMax, gamma float64) (upper, lower Halfspace) {
	tau := gamma * dt
	rem := dt - tau
	slope := rem // dp/dv at this switching time, for both arcs

	// Upper arc: aMax for [0,tau), aMin for [tau,dt).
	vU := aMax*tau + aMin*rem
	pU := 0.5*aMax*tau*tau + aMax*tau*rem + 0.5*aMin*rem*rem
	cUpper := pU - slope*vU
	upper = Halfspace{A: 1, B: -slope, C: cUpper}

	// Lower arc: aMin for [0,tau), aMax for [tau,dt). Symmetric counterpart:
	// feasible region is the mirror image, hence the sign flip.
	vL := aMin*tau + aMax*rem
	pL := 0.5*aMin*tau*tau + aMin*tau*rem + 0.5*aMax*rem*rem
	cLower := slope*vL - pL
	lower = Halfspace{A: -1, B: slope, C: cLower}

	return upper, lower
}
