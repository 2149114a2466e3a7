package reach

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// CreateAdjacencyMap maps each index of a into the indices of b whose
// position rectangles strictly overlap it, per §3/§4.6. Source indices
// with no overlapping target are omitted from the result.
func CreateAdjacencyMap(a, b []AABB) AdjacencyMap {
	adj := make(AdjacencyMap)
	for i, ra := range a {
		var matches []int
		for j, rb := range b {
			if ra.OverlapsStrict(rb) {
				matches = append(matches, j)
			}
		}
		if len(matches) > 0 {
			adj[i] = matches
		}
	}
	return adj
}

// AdaptBaseSetsToDrivableArea rebuilds one reach node per drivable-area
// rectangle, per §4.6: each rectangle's node is the convex-hull union of
// every propagated node whose position rectangle strictly overlaps it,
// with both base sets additionally clipped to the rectangle's own strip.
// A rectangle with no surviving base set (the intersection is empty) is
// dropped from the result rather than erroring. Work is distributed across
// threads worker goroutines; order follows drivableArea's order.
func AdaptBaseSetsToDrivableArea(step int, drivableArea DrivableArea, propagatedNodes []ReachNode, threads int) ([]ReachNode, error) {
	if len(drivableArea) == 0 {
		return nil, nil
	}
	propRects := make([]AABB, len(propagatedNodes))
	for i, n := range propagatedNodes {
		r, err := n.PositionRect()
		if err != nil {
			return nil, err
		}
		propRects[i] = r
	}
	adj := CreateAdjacencyMap(drivableArea, propRects)

	results := make([]*ReachNode, len(drivableArea))
	g, ctx := errgroup.WithContext(context.Background())
	if threads > 0 {
		g.SetLimit(threads)
	}
	for i, rect := range drivableArea {
		i, rect := i, rect
		indices := adj[i]
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &Invariant{Step: step, Msg: invariantMsg(r)}
				}
			}()
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			node, err := adaptBaseSetToDrivableArea(rect, propagatedNodes, indices)
			if err != nil {
				return err
			}
			if node != nil {
				node.Step = step
			}
			results[i] = node
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []ReachNode
	for _, n := range results {
		if n != nil {
			out = append(out, *n)
		}
	}
	return out, nil
}

// adaptBaseSetToDrivableArea builds the node for a single drivable-area
// rectangle from the propagated nodes listed in indices: the longitudinal
// and lateral base sets are each the convex hull of the union of the
// corresponding base sets among indices, intersected with the rectangle's
// own [XMin,XMax]x[YMin,YMax] strip on the position axis. Returns (nil,
// nil) if indices is empty or the intersection empties out either axis.
func adaptBaseSetToDrivableArea(rect AABB, nodes []ReachNode, indices []int) (*ReachNode, error) {
	if len(indices) == 0 {
		return nil, nil
	}
	var lonPts, latPts []Point
	for _, idx := range indices {
		lv, err := nodes[idx].PolygonLon.Vertices()
		if err != nil {
			return nil, err
		}
		lonPts = append(lonPts, lv...)
		dv, err := nodes[idx].PolygonLat.Vertices()
		if err != nil {
			return nil, err
		}
		latPts = append(latPts, dv...)
	}

	lonHull, err := NewPolygonFromVertices(lonPts)
	if err != nil {
		return nil, err
	}
	if err := lonHull.IntersectHalfspace(-1, 0, -rect.XMin); err != nil {
		if IsInfeasible(err) {
			return nil, nil
		}
		return nil, err
	}
	if err := lonHull.IntersectHalfspace(1, 0, rect.XMax); err != nil {
		if IsInfeasible(err) {
			return nil, nil
		}
		return nil, err
	}

	latHull, err := NewPolygonFromVertices(latPts)
	if err != nil {
		return nil, err
	}
	if err := latHull.IntersectHalfspace(-1, 0, -rect.YMin); err != nil {
		if IsInfeasible(err) {
			return nil, nil
		}
		return nil, err
	}
	if err := latHull.IntersectHalfspace(1, 0, rect.YMax); err != nil {
		if IsInfeasible(err) {
			return nil, nil
		}
		return nil, err
	}

	return &ReachNode{PolygonLon: lonHull, PolygonLat: latHull}, nil
}
