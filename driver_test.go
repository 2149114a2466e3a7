package reach

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type noCollisionChecker struct{}

func (noCollisionChecker) Collides(step int, aabb AABB) (bool, error) { return false, nil }

func testConfig() Config {
	return Config{
		Planning: PlanningConfig{Dt: 1, Steps: 3, SizeGrid: 0.5},
		Vehicle: VehicleConfig{
			VLonMin: -5, VLonMax: 20, ALonMin: -2, ALonMax: 2,
			VLatMin: -5, VLatMax: 5, ALatMin: -1, ALatMax: 1,
		},
		ReachableSet: ReachableSetConfig{RadiusTerminalSplit: 0.1, NumThreads: 2},
		Initial:      InitialConfig{PLon: 0, PLat: 0, PLonEps: 0.01, PLatEps: 0.01, VLon: 5, VLat: 0, VLonEps: 0.01, VLatEps: 0.01},
	}
}

func TestDriverInitialStepVector(t *testing.T) {
	d := NewDriver(testConfig(), noCollisionChecker{}, nil)
	results, err := d.Run()
	require.NoError(t, err)
	require.NotEmpty(t, results)

	initial := results[0]
	require.Len(t, initial.DrivableArea, 1)
	require.Equal(t, AABB{XMin: -0.01, YMin: -0.01, XMax: 0.01, YMax: 0.01}, initial.DrivableArea[0])
}

func TestDriverRunsMultipleStepsWithoutCollision(t *testing.T) {
	d := NewDriver(testConfig(), noCollisionChecker{}, nil)
	results, err := d.Run()
	require.NoError(t, err)
	require.Len(t, results, 4) // step 0 plus 3 planning steps
	for _, r := range results[1:] {
		require.NotEmpty(t, r.Nodes, "step %d should still have reachable nodes with no obstacles", r.Step)
	}
}

type blockEverythingChecker struct{}

func (blockEverythingChecker) Collides(step int, aabb AABB) (bool, error) { return true, nil }

func TestDriverStopsEarlyWhenTrapped(t *testing.T) {
	d := NewDriver(testConfig(), blockEverythingChecker{}, nil)
	results, err := d.Run()
	require.NoError(t, err)
	require.True(t, len(results) <= 4)
	require.Empty(t, results[len(results)-1].Nodes)
}

func TestDriverSurfacesCheckerError(t *testing.T) {
	d := NewDriver(testConfig(), erroringChecker{}, nil)
	_, err := d.Run()
	require.Error(t, err)
	var checkerErr *CheckerError
	require.ErrorAs(t, err, &checkerErr)
}
