package reach

// Propagate advances a base polygon in (p,v) coordinates through one time
// step of length dt, per §4.3: shear by dt to model free-flight p<-p+dt*v,
// Minkowski-sum with the zero-state polygon z to add the reachable
// acceleration-driven excursion, then clip to [vMin,vMax]. A nil, nil result
// (no error) is the sentinel the spec calls for when clipping leaves an
// empty set: the caller drops the node rather than treating it as a
// failure.
func Propagate(base, z *Polygon, dt, vMin, vMax float64) (*Polygon, error) {
	sheared := base.Clone()
	sheared.Shear(dt)

	summed, err := minkowskiSum(sheared, z)
	if err != nil {
		if IsInfeasible(err) {
			return nil, nil
		}
		return nil, err
	}

	if err := summed.IntersectHalfspace(0, 1, vMax); err != nil {
		if IsInfeasible(err) {
			return nil, nil
		}
		return nil, err
	}
	if err := summed.IntersectHalfspace(0, -1, -vMin); err != nil {
		if IsInfeasible(err) {
			return nil, nil
		}
		return nil, err
	}
	return summed, nil
}

// minkowskiSum realises the Minkowski sum of two convex polygons by
// translating b by every vertex of a (equivalently, summing every pair of
// vertices) and taking the convex hull of the result, per §4.3's "composes
// by translating Z by each vertex of the sheared base polygon and taking
// the convex hull".
func minkowskiSum(a, b *Polygon) (*Polygon, error) {
	av, err := a.Vertices()
	if err != nil {
		return nil, err
	}
	bv, err := b.Vertices()
	if err != nil {
		return nil, err
	}
	sums := make([]Point, 0, len(av)*len(bv))
	for _, p := range av {
		for _, q := range bv {
			sums = append(sums, Point{X: p.X + q.X, Y: p.Y + q.Y})
		}
	}
	return NewPolygonFromVertices(sums)
}
