package reach

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateAdjacencyMapVector(t *testing.T) {
	a := []AABB{
		{XMin: 1, YMin: 0, XMax: 2, YMax: 1},
		{XMin: 2, YMin: 0, XMax: 3, YMax: 1},
	}
	b := []AABB{
		{XMin: 0.5, YMin: 0.5, XMax: 1.5, YMax: 1.5},
		{XMin: 1.5, YMin: 0.5, XMax: 2.5, YMax: 1.5},
		{XMin: 2.5, YMin: 0.5, XMax: 3.5, YMax: 1.5},
	}
	require.Equal(t, AdjacencyMap{0: {0, 1}, 1: {1, 2}}, CreateAdjacencyMap(a, b))
}

func TestAdaptBaseSetsToDrivableArea(t *testing.T) {
	lon1 := NewPolygonFromRectangle(0, -1, 5, 1)
	lat1 := NewPolygonFromRectangle(0, -1, 2, 1)
	lon2 := NewPolygonFromRectangle(4, -1, 10, 1)
	lat2 := NewPolygonFromRectangle(0, -1, 2, 1)
	nodes := []ReachNode{
		{Step: 0, PolygonLon: lon1, PolygonLat: lat1},
		{Step: 0, PolygonLon: lon2, PolygonLat: lat2},
	}

	drivable := DrivableArea{{XMin: 2, YMin: 0, XMax: 6, YMax: 1}}
	out, err := AdaptBaseSetsToDrivableArea(1, drivable, nodes, 2)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, 1, out[0].Step)

	lonBB, err := out[0].PolygonLon.BoundingBox()
	require.NoError(t, err)
	require.Equal(t, 2.0, lonBB.XMin)
	require.Equal(t, 6.0, lonBB.XMax)
}

func TestAdaptBaseSetsToDrivableAreaDropsNoOverlap(t *testing.T) {
	lon := NewPolygonFromRectangle(0, -1, 1, 1)
	lat := NewPolygonFromRectangle(0, -1, 1, 1)
	nodes := []ReachNode{{Step: 0, PolygonLon: lon, PolygonLat: lat}}

	drivable := DrivableArea{{XMin: 100, YMin: 100, XMax: 101, YMax: 101}}
	out, err := AdaptBaseSetsToDrivableArea(1, drivable, nodes, 2)
	require.NoError(t, err)
	require.Empty(t, out)
}
