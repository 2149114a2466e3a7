package reach

import (
	"math"
	"sort"
)

// ProjectBaseSetsToPositionDomain projects each node's (polygon_lon,
// polygon_lat) pair onto the position plane, per §4.4. Output order matches
// input order; indices are meaningful downstream (adjacency, adaptation).
func ProjectBaseSetsToPositionDomain(nodes []ReachNode) ([]AABB, error) {
	rects := make([]AABB, len(nodes))
	for i, n := range nodes {
		r, err := n.PositionRect()
		if err != nil {
			return nil, err
		}
		rects[i] = r
	}
	return rects, nil
}

// ComputeMinimumPositionsOfRectangles returns the componentwise minimum of
// xmin and ymin over all input rectangles, per §4.4 step 1.
func ComputeMinimumPositionsOfRectangles(rects []AABB) (xMin, yMin float64) {
	xMin, yMin = math.Inf(1), math.Inf(1)
	for _, r := range rects {
		xMin = math.Min(xMin, r.XMin)
		yMin = math.Min(yMin, r.YMin)
	}
	return xMin, yMin
}

// IntAABB is an axis-aligned rectangle on the integer grid produced by
// discretizing a continuous AABB to a Δ-sized grid, per §4.4 step 2.
type IntAABB struct {
	XMin, YMin, XMax, YMax int
}

// DiscretizeRectangles translates every rectangle by -(xMin,yMin), divides
// by Δ, and rounds outward (floor the min, ceil the max) so the discretised
// cover contains the continuous union, per §4.4 step 2.
func DiscretizeRectangles(rects []AABB, xMin, yMin, delta float64) []IntAABB {
	out := make([]IntAABB, len(rects))
	for i, r := range rects {
		out[i] = IntAABB{
			XMin: int(math.Floor((r.XMin - xMin) / delta)),
			YMin: int(math.Floor((r.YMin - yMin) / delta)),
			XMax: int(math.Ceil((r.XMax - xMin) / delta)),
			YMax: int(math.Ceil((r.YMax - yMin) / delta)),
		}
	}
	return out
}

// UndiscretizeRectangles is the inverse of DiscretizeRectangles: multiply by
// Δ, then translate by +(xMin,yMin), per §4.4 step 4.
func UndiscretizeRectangles(rects []IntAABB, xMin, yMin, delta float64) []AABB {
	out := make([]AABB, len(rects))
	for i, r := range rects {
		out[i] = AABB{
			XMin: float64(r.XMin)*delta + xMin,
			YMin: float64(r.YMin)*delta + yMin,
			XMax: float64(r.XMax)*delta + xMin,
			YMax: float64(r.YMax)*delta + yMin,
		}
	}
	return out
}

// RepartitionRectangle rewrites the (possibly overlapping) integer rectangle
// list as a disjoint cover of the same union, per §4.4 step 3: a sweep-line
// over the unique x coordinates, collecting and merging the vertical spans
// present in each column, and emitting one output rectangle per span for
// each contiguous run of columns in which that exact span is present.
// Output order is lexicographic
// (xmin, ymin), per the spec's tie-break.
func RepartitionRectangle(rects []IntAABB) []IntAABB {
	if len(rects) == 0 {
		return nil
	}
	xsSet := make(map[int]struct{})
	for _, r := range rects {
		xsSet[r.XMin] = struct{}{}
		xsSet[r.XMax] = struct{}{}
	}
	xs := make([]int, 0, len(xsSet))
	for x := range xsSet {
		xs = append(xs, x)
	}
	sort.Ints(xs)

	type span = [2]int
	open := make(map[span]int) // span -> xStart of the run currently open
	var result []IntAABB

	closeSpan := func(s span, xEnd int) {
		result = append(result, IntAABB{XMin: open[s], YMin: s[0], XMax: xEnd, YMax: s[1]})
		delete(open, s)
	}

	for i := 0; i+1 < len(xs); i++ {
		x0, x1 := xs[i], xs[i+1]
		var raw []span
		for _, r := range rects {
			if r.XMin <= x0 && r.XMax >= x1 {
				raw = append(raw, span{r.YMin, r.YMax})
			}
		}
		cur := mergeSpans(raw)
		curSet := make(map[span]bool, len(cur))
		for _, s := range cur {
			curSet[s] = true
		}
		for s := range open {
			if !curSet[s] {
				closeSpan(s, x0)
			}
		}
		for _, s := range cur {
			if _, ok := open[s]; !ok {
				open[s] = x0
			}
		}
	}
	lastX := xs[len(xs)-1]
	for s := range open {
		closeSpan(s, lastX)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].XMin != result[j].XMin {
			return result[i].XMin < result[j].XMin
		}
		return result[i].YMin < result[j].YMin
	})
	return result
}

// mergeSpans sorts y-intervals by their low endpoint and merges any that
// overlap or touch, producing the minimal disjoint span list for a column.
func mergeSpans(raw [][2]int) [][2]int {
	if len(raw) == 0 {
		return nil
	}
	sorted := append([][2]int(nil), raw...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i][0] != sorted[j][0] {
			return sorted[i][0] < sorted[j][0]
		}
		return sorted[i][1] < sorted[j][1]
	})
	out := [][2]int{sorted[0]}
	for _, s := range sorted[1:] {
		last := &out[len(out)-1]
		if s[0] <= last[1] {
			if s[1] > last[1] {
				last[1] = s[1]
			}
			continue
		}
		out = append(out, s)
	}
	return out
}

// CreateRepartitionedRectangles runs the full projector+repartitioner
// pipeline of §4.4: discretize to the Δ grid, repartition into a disjoint
// cover, and undiscretize back to continuous coordinates. Δ<=0 is rejected
// as a ConfigError; an empty input yields an empty output.
func CreateRepartitionedRectangles(rects []AABB, delta float64) ([]AABB, error) {
	if delta <= 0 {
		return nil, &ConfigError{Field: "size_grid", Msg: "must be positive"}
	}
	if len(rects) == 0 {
		return nil, nil
	}
	xMin, yMin := ComputeMinimumPositionsOfRectangles(rects)
	intRects := DiscretizeRectangles(rects, xMin, yMin, delta)
	repartitioned := RepartitionRectangle(intRects)
	return UndiscretizeRectangles(repartitioned, xMin, yMin, delta), nil
}
