package reach

import (
	"fmt"
	"time"

	kitlog "github.com/go-kit/kit/log"
)

// StepResult is one step's output: the drivable area and the reach nodes
// available to propagate into the next step.
type StepResult struct {
	Step         int
	DrivableArea DrivableArea
	Nodes        []ReachNode
}

// Driver orchestrates the per-step pipeline of §4.7 over a fixed
// configuration and collision checker, logging one line per step the way
// the teacher's SCLogInit-backed components do.
type Driver struct {
	cfg     Config
	checker CollisionChecker
	logger  kitlog.Logger
}

// NewDriver builds a Driver from a validated Config and a collision
// checker. logger may be nil, in which case a NoopLogger is used.
func NewDriver(cfg Config, checker CollisionChecker, logger kitlog.Logger) *Driver {
	if logger == nil {
		logger = NoopLogger()
	}
	return &Driver{cfg: cfg, checker: checker, logger: kitlog.With(logger, "component", "driver")}
}

// Run executes the initial step followed by planning.steps propagation
// steps, per §4.7, stopping early (without error) the first time a step
// yields no nodes. It recovers any panic raised during a step into a
// returned *Invariant error, per §10.3, so a library caller never observes
// a raw panic.
func (d *Driver) Run() (results []StepResult, err error) {
	initial, err := d.initialStep()
	if err != nil {
		d.logger.Log("level", "error", "step", 0, "kind", fmt.Sprintf("%T", err), "err", err)
		return nil, err
	}
	results = append(results, initial)

	prev := initial
	for t := 1; t <= d.cfg.Planning.Steps; t++ {
		step, err := d.runStep(t, prev)
		if err != nil {
			d.logger.Log("level", "error", "step", t, "kind", fmt.Sprintf("%T", err), "err", err)
			return results, err
		}
		results = append(results, step)
		if len(step.Nodes) == 0 {
			d.logger.Log("level", "info", "step", t, "msg", "no nodes survive; vehicle trapped, stopping early")
			break
		}
		prev = step
	}
	return results, nil
}

// initialStep builds the step-0 drivable area and reach node from the
// configuration's initial position/velocity box, per §4.7.
func (d *Driver) initialStep() (result StepResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &Invariant{Step: 0, Msg: invariantMsg(r)}
		}
	}()

	rect := generateTupleVerticesPositionRectangleInitial(d.cfg.Initial)
	lon, lat := generateTuplesVerticesPolygonsInitial(d.cfg.Initial)
	node := ReachNode{Step: 0, PolygonLon: lon, PolygonLat: lat}
	d.logger.Log("level", "info", "step", 0, "nodes_out", 1, "drivable_rects", 1)
	return StepResult{Step: 0, DrivableArea: DrivableArea{rect}, Nodes: []ReachNode{node}}, nil
}

// RunStep runs one propagate->project->repartition->collision-split->adapt
// pipeline pass for step t given the previous step's nodes, per the
// control-flow summary in §2 and the driver loop in §4.7. Any panic raised
// by a kernel invariant violation is recovered and reported as an
// *Invariant naming t.
func (d *Driver) RunStep(t int, prevNodes []ReachNode) (result StepResult, err error) {
	return d.runStep(t, StepResult{Nodes: prevNodes})
}

func (d *Driver) runStep(t int, prev StepResult) (result StepResult, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = &Invariant{Step: t, Msg: invariantMsg(r)}
		}
	}()

	v := d.cfg.Vehicle
	propagated := make([]ReachNode, 0, len(prev.Nodes))
	for _, n := range prev.Nodes {
		zLon, zerr := CreateZeroStatePolygon(d.cfg.Planning.Dt, v.ALonMin, v.ALonMax)
		if zerr != nil {
			return StepResult{}, zerr
		}
		zLat, zerr := CreateZeroStatePolygon(d.cfg.Planning.Dt, v.ALatMin, v.ALatMax)
		if zerr != nil {
			return StepResult{}, zerr
		}
		lon, perr := Propagate(n.PolygonLon, zLon, d.cfg.Planning.Dt, v.VLonMin, v.VLonMax)
		if perr != nil {
			return StepResult{}, perr
		}
		lat, perr := Propagate(n.PolygonLat, zLat, d.cfg.Planning.Dt, v.VLatMin, v.VLatMax)
		if perr != nil {
			return StepResult{}, perr
		}
		if lon == nil || lat == nil {
			continue
		}
		propagated = append(propagated, ReachNode{Step: t, PolygonLon: lon, PolygonLat: lat})
	}

	if len(propagated) == 0 {
		d.logger.Log("level", "info", "step", t, "nodes_out", 0, "drivable_rects", 0, "elapsed", time.Since(start))
		return StepResult{Step: t}, nil
	}

	projected, err := ProjectBaseSetsToPositionDomain(propagated)
	if err != nil {
		return StepResult{}, err
	}
	repartitioned, err := CreateRepartitionedRectangles(projected, d.cfg.Planning.SizeGrid)
	if err != nil {
		return StepResult{}, err
	}

	splitRects, err := CheckCollisionAndSplitRectangles(t, d.checker, repartitioned, d.cfg.ReachableSet.RadiusTerminalSplit, d.cfg.ReachableSet.NumThreads)
	if err != nil {
		return StepResult{}, err
	}

	nodes, err := AdaptBaseSetsToDrivableArea(t, DrivableArea(splitRects), propagated, d.cfg.ReachableSet.NumThreads)
	if err != nil {
		return StepResult{}, err
	}

	d.logger.Log("level", "info", "step", t, "nodes_in", len(prev.Nodes), "nodes_out", len(nodes),
		"drivable_rects", len(splitRects), "elapsed", time.Since(start))

	return StepResult{Step: t, DrivableArea: DrivableArea(splitRects), Nodes: nodes}, nil
}

func invariantMsg(r interface{}) string {
	if err, ok := r.(error); ok {
		return err.Error()
	}
	return "panic: unexpected value"
}

// generateTupleVerticesPositionRectangleInitial builds the step-0 drivable
// area rectangle from the initial position and its epsilon half-widths,
// per §6/§8 ("a single rectangle with corners (±eps,±eps)").
func generateTupleVerticesPositionRectangleInitial(init InitialConfig) AABB {
	return AABB{
		XMin: init.PLon - init.PLonEps,
		XMax: init.PLon + init.PLonEps,
		YMin: init.PLat - init.PLatEps,
		YMax: init.PLat + init.PLatEps,
	}
}

// generateTuplesVerticesPolygonsInitial builds the step-0 (s,v_s) and
// (d,v_d) base-set polygons from the initial position/velocity box and its
// epsilon half-widths.
func generateTuplesVerticesPolygonsInitial(init InitialConfig) (lon, lat *Polygon) {
	lon = NewPolygonFromRectangle(
		init.PLon-init.PLonEps, init.VLon-init.VLonEps,
		init.PLon+init.PLonEps, init.VLon+init.VLonEps,
	)
	lat = NewPolygonFromRectangle(
		init.PLat-init.PLatEps, init.VLat-init.VLatEps,
		init.PLat+init.PLatEps, init.VLat+init.VLatEps,
	)
	return lon, lat
}
