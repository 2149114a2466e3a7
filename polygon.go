package reach

import (
	"math"
	"sort"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

// Halfspace is one constraint a·x + b·y <= c of a Polygon's H-representation.
type Halfspace struct {
	A, B, C float64
}

// eval returns a·x + b·y for the given point.
func (h Halfspace) eval(x, y float64) float64 {
	return mat64.Dot(mat64.NewVector(2, []float64{h.A, h.B}), mat64.NewVector(2, []float64{x, y}))
}

// satisfies reports whether (x,y) satisfies the halfspace up to Eps.
func (h Halfspace) satisfies(x, y float64) bool {
	v := h.eval(x, y)
	return v <= h.C || floats.EqualWithinAbs(v, h.C, Eps)
}

// Point is a vertex in the plane; the first coordinate is always the
// "position-like" axis (x or s), the second the "velocity-like" axis
// (y, v_s or v_d), matching how callers name planes throughout this repo.
type Point struct {
	X, Y float64
}

// AABB is an axis-aligned bounding box, xmin<=xmax, ymin<=ymax.
type AABB struct {
	XMin, YMin, XMax, YMax float64
}

// Width returns XMax-XMin.
func (b AABB) Width() float64 { return b.XMax - b.XMin }

// Height returns YMax-YMin.
func (b AABB) Height() float64 { return b.YMax - b.YMin }

// DiagonalSquared returns the squared length of the box's diagonal, used by
// the collision splitter's terminal-radius comparison without a sqrt.
func (b AABB) DiagonalSquared() float64 {
	w, h := b.Width(), b.Height()
	return w*w + h*h
}

// OverlapsStrict reports whether b and o have a non-empty open
// intersection (their interiors overlap; touching edges don't count).
func (b AABB) OverlapsStrict(o AABB) bool {
	return b.XMin < o.XMax && o.XMin < b.XMax && b.YMin < o.YMax && o.YMin < b.YMax
}

// Polygon is a convex 2D polygon kept in halfspace (H-)representation, per
// §4.1: an ordered list of (a,b,c) meaning ax+by<=c, with CCW vertex and
// bounding-box caches invalidated whenever a halfspace is added or the
// polygon is translated/sheared. There is a single concrete polygon type
// in this kernel: no subtype polymorphism, per the spec's design notes.
type Polygon struct {
	halfspaces []Halfspace
	vertsValid bool
	verts      []Point
	bboxValid  bool
	bbox       AABB
}

// NewPolygonFromRectangle builds the polygon for an axis-aligned rectangle
// as four halfspaces.
func NewPolygonFromRectangle(xmin, ymin, xmax, ymax float64) *Polygon {
	return &Polygon{halfspaces: []Halfspace{
		{A: -1, B: 0, C: -xmin},
		{A: 1, B: 0, C: xmax},
		{A: 0, B: -1, C: -ymin},
		{A: 0, B: 1, C: ymax},
	}}
}

// NewPolygonFromHalfspaces builds a polygon from an explicit halfspace
// list, failing if the system is infeasible.
func NewPolygonFromHalfspaces(hs []Halfspace) (*Polygon, error) {
	p := &Polygon{halfspaces: append([]Halfspace(nil), hs...)}
	if _, err := p.Vertices(); err != nil {
		return nil, err
	}
	return p, nil
}

// NewPolygonFromVertices builds the polygon whose H-representation is the
// convex hull of the given points (order does not matter; the hull is
// recomputed). Fails with an *Invariant if the hull has fewer than 3
// vertices (fewer than 3 distinct points, or all points collinear).
func NewPolygonFromVertices(pts []Point) (*Polygon, error) {
	hull := convexHull(pts)
	if len(hull) < 3 {
		return nil, &Invariant{Msg: "convex hull degenerates to fewer than 3 vertices"}
	}
	hs := make([]Halfspace, 0, len(hull))
	n := len(hull)
	for i := 0; i < n; i++ {
		p0, p1 := hull[i], hull[(i+1)%n]
		// Edge p0->p1; for a CCW hull the interior is to the left, i.e.
		// the halfspace normal is the outward (right-hand) normal of the
		// edge direction.
		dx, dy := p1.X-p0.X, p1.Y-p0.Y
		a, b := dy, -dx
		c := a*p0.X + b*p0.Y
		hs = append(hs, Halfspace{A: a, B: b, C: c})
	}
	return NewPolygonFromHalfspaces(hs)
}

// IntersectHalfspace adds ax+by<=c to the polygon's H-list and invalidates
// the caches, failing with InfeasibleIntersection if no vertex of the
// resulting system satisfies every constraint within Eps.
func (p *Polygon) IntersectHalfspace(a, b, c float64) error {
	candidate := append(append([]Halfspace(nil), p.halfspaces...), Halfspace{A: a, B: b, C: c})
	saved := p.halfspaces
	p.halfspaces = candidate
	p.invalidate()
	if _, err := p.Vertices(); err != nil {
		p.halfspaces = saved
		p.invalidate()
		return &InfeasibleIntersection{A: a, B: b, C: c}
	}
	return nil
}

// Translate substitutes (x,y)->(x-dx,y-dy) in every halfspace: ax+by<=c
// becomes a(x-dx)+b(y-dy)<=c, i.e. ax+by <= c+a*dx+b*dy.
func (p *Polygon) Translate(dx, dy float64) {
	for i, h := range p.halfspaces {
		p.halfspaces[i] = Halfspace{A: h.A, B: h.B, C: h.C + h.A*dx + h.B*dy}
	}
	p.invalidate()
}

// Shear substitutes x->x-shearXY*y: ax+by<=c becomes a(x-shearXY*y)+by<=c,
// i.e. ax+(b-a*shearXY)y<=c. Used to model s<-s+dt*v during propagation by
// shearing the (s,v) polygon with shearXY=dt.
func (p *Polygon) Shear(shearXY float64) {
	for i, h := range p.halfspaces {
		p.halfspaces[i] = Halfspace{A: h.A, B: h.B - h.A*shearXY, C: h.C}
	}
	p.invalidate()
}

// Halfspaces returns the polygon's current H-list. The slice is owned by
// the caller and safe to mutate; the polygon copies it.
func (p *Polygon) Halfspaces() []Halfspace {
	return append([]Halfspace(nil), p.halfspaces...)
}

// BoundingBox returns the axis-aligned bounding box computed from the
// polygon's vertices, caching the result until the next mutation.
func (p *Polygon) BoundingBox() (AABB, error) {
	verts, err := p.Vertices()
	if err != nil {
		return AABB{}, err
	}
	if p.bboxValid {
		return p.bbox, nil
	}
	xmin, ymin := math.Inf(1), math.Inf(1)
	xmax, ymax := math.Inf(-1), math.Inf(-1)
	for _, v := range verts {
		xmin = math.Min(xmin, v.X)
		xmax = math.Max(xmax, v.X)
		ymin = math.Min(ymin, v.Y)
		ymax = math.Max(ymax, v.Y)
	}
	p.bbox = AABB{XMin: xmin, YMin: ymin, XMax: xmax, YMax: ymax}
	p.bboxValid = true
	return p.bbox, nil
}

// Vertices enumerates the polygon's CCW vertex list by pairwise halfspace
// intersection, filtering out intersections that violate any other
// halfspace, caching the result until the next mutation. Returns
// InfeasibleIntersection if the halfspace system has no feasible point at
// all (the polygon would be empty).
func (p *Polygon) Vertices() ([]Point, error) {
	if p.vertsValid {
		return p.verts, nil
	}
	n := len(p.halfspaces)
	var candidates []Point
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pt, ok := intersectLines(p.halfspaces[i], p.halfspaces[j])
			if !ok {
				continue
			}
			feasible := true
			for _, h := range p.halfspaces {
				if !h.satisfies(pt.X, pt.Y) {
					feasible = false
					break
				}
			}
			if feasible {
				candidates = append(candidates, pt)
			}
		}
	}
	candidates = dedupePoints(candidates)
	if len(candidates) == 0 {
		return nil, &InfeasibleIntersection{}
	}
	ordered := orderCCW(candidates)
	p.verts = ordered
	p.vertsValid = true
	return ordered, nil
}

// Clone returns an independent copy of p; mutating the clone (translate,
// shear, intersect) never affects p.
func (p *Polygon) Clone() *Polygon {
	return &Polygon{halfspaces: append([]Halfspace(nil), p.halfspaces...)}
}

func (p *Polygon) invalidate() {
	p.vertsValid = false
	p.bboxValid = false
}

// intersectLines solves the 2x2 system {a1 x + b1 y = c1, a2 x + b2 y = c2}
// via Cramer's rule, returning ok=false for (near) parallel lines.
func intersectLines(h1, h2 Halfspace) (Point, bool) {
	det := h1.A*h2.B - h2.A*h1.B
	if floats.EqualWithinAbs(det, 0, Eps) {
		return Point{}, false
	}
	x := (h1.C*h2.B - h2.C*h1.B) / det
	y := (h1.A*h2.C - h2.A*h1.C) / det
	return Point{X: x, Y: y}, true
}

func dedupePoints(pts []Point) []Point {
	out := make([]Point, 0, len(pts))
	for _, p := range pts {
		dup := false
		for _, q := range out {
			if floats.EqualWithinAbs(p.X, q.X, Eps) && floats.EqualWithinAbs(p.Y, q.Y, Eps) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}

// orderCCW sorts points counter-clockwise around their centroid.
func orderCCW(pts []Point) []Point {
	if len(pts) <= 2 {
		return pts
	}
	var cx, cy float64
	for _, p := range pts {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(pts))
	cy /= float64(len(pts))
	out := append([]Point(nil), pts...)
	sort.Slice(out, func(i, j int) bool {
		return math.Atan2(out[i].Y-cy, out[i].X-cx) < math.Atan2(out[j].Y-cy, out[j].X-cx)
	})
	return out
}

// convexHull returns the CCW convex hull of pts via the monotone chain
// algorithm, deduplicating coincident points.
func convexHull(pts []Point) []Point {
	uniq := dedupePoints(pts)
	sort.Slice(uniq, func(i, j int) bool {
		if uniq[i].X != uniq[j].X {
			return uniq[i].X < uniq[j].X
		}
		return uniq[i].Y < uniq[j].Y
	})
	n := len(uniq)
	if n < 3 {
		return uniq
	}
	cross := func(o, a, b Point) float64 {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}
	lower := make([]Point, 0, n)
	for _, p := range uniq {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	upper := make([]Point, 0, n)
	for i := n - 1; i >= 0; i-- {
		p := uniq[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}
	lower = lower[:len(lower)-1]
	upper = upper[:len(upper)-1]
	return append(lower, upper...)
}
