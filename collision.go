package reach

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// CollisionChecker is the external boundary of the collision domain, per
// §6's collision checker contract: given a time step and a position
// rectangle, report whether any obstacle occupies part of it. Callers
// outside this package (e.g. an obstacle-prediction pipeline) implement
// this; the package never assumes a concrete obstacle representation.
type CollisionChecker interface {
	Collides(step int, aabb AABB) (bool, error)
}

// CheckCollisionAndSplitRectangles recursively subdivides each input
// rectangle against checker until either it is found collision-free or its
// diagonal drops below rTerm, per §4.5. Splitting runs across threads
// worker goroutines via an errgroup; a checker failure at any leaf aborts
// the whole call and is reported as a *CheckerError naming the step.
// Results preserve input order: rectangle i's pieces all precede rectangle
// i+1's in the output.
func CheckCollisionAndSplitRectangles(step int, checker CollisionChecker, rects []AABB, rTerm float64, threads int) ([]AABB, error) {
	if len(rects) == 0 {
		return nil, nil
	}
	pieces := make([][]AABB, len(rects))
	g, ctx := errgroup.WithContext(context.Background())
	if threads > 0 {
		g.SetLimit(threads)
	}
	for i, r := range rects {
		i, r := i, r
		g.Go(func() (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					err = &CheckerError{Step: step, Err: fmt.Errorf("panic: %v", rec)}
				}
			}()
			out, err := createCollisionFreeRectangles(ctx, step, checker, r, rTerm)
			if err != nil {
				return err
			}
			pieces[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var result []AABB
	for _, p := range pieces {
		result = append(result, p...)
	}
	return result, nil
}

// createCollisionFreeRectangles is the per-rectangle quadtree-like
// recursion at the heart of §4.5: a collision-free rectangle is kept
// whole; a colliding rectangle at or below the terminal radius is dropped
// (it is reported as fully occupied); otherwise it is split in half along
// its longer axis (ties broken toward x) and both halves recurse.
func createCollisionFreeRectangles(ctx context.Context, step int, checker CollisionChecker, r AABB, rTerm float64) ([]AABB, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	collides, err := checker.Collides(step, r)
	if err != nil {
		return nil, &CheckerError{Step: step, Err: err}
	}
	if !collides {
		return []AABB{r}, nil
	}
	if r.DiagonalSquared() <= rTerm*rTerm {
		return nil, nil
	}

	var left, right AABB
	if r.Width() >= r.Height() {
		mid := (r.XMin + r.XMax) / 2
		left = AABB{XMin: r.XMin, YMin: r.YMin, XMax: mid, YMax: r.YMax}
		right = AABB{XMin: mid, YMin: r.YMin, XMax: r.XMax, YMax: r.YMax}
	} else {
		mid := (r.YMin + r.YMax) / 2
		left = AABB{XMin: r.XMin, YMin: r.YMin, XMax: r.XMax, YMax: mid}
		right = AABB{XMin: r.XMin, YMin: mid, XMax: r.XMax, YMax: r.YMax}
	}

	leftPieces, err := createCollisionFreeRectangles(ctx, step, checker, left, rTerm)
	if err != nil {
		return nil, err
	}
	rightPieces, err := createCollisionFreeRectangles(ctx, step, checker, right, rTerm)
	if err != nil {
		return nil, err
	}
	return append(leftPieces, rightPieces...), nil
}
