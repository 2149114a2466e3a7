package reach

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleResults(t *testing.T) []StepResult {
	t.Helper()
	lon := NewPolygonFromRectangle(0, -1, 1, 1)
	lat := NewPolygonFromRectangle(-2, -2, 2, 2)
	node := ReachNode{Step: 1, PolygonLon: lon, PolygonLat: lat}
	return []StepResult{
		{Step: 0, DrivableArea: DrivableArea{{XMin: -0.01, YMin: -0.01, XMax: 0.01, YMax: 0.01}}, Nodes: []ReachNode{node}},
		{Step: 1, DrivableArea: DrivableArea{{XMin: 0, YMin: -2, XMax: 1, YMax: 2}}, Nodes: []ReachNode{node}},
	}
}

func TestExportResultsCSV(t *testing.T) {
	dir := t.TempDir()
	conf := ExportConfig{Filename: filepath.Join(dir, "run"), AsCSV: true}
	require.NoError(t, ExportResults(conf, sampleResults(t)))

	f, err := os.Open(conf.Filename + ".csv")
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Equal(t, []string{"step", "jd", "s_min", "d_min", "s_max", "d_max"}, records[0])
	require.Len(t, records, 3) // header + 2 drivable-area rectangles
}

func TestExportResultsJSON(t *testing.T) {
	dir := t.TempDir()
	conf := ExportConfig{Filename: filepath.Join(dir, "run"), AsJSON: true}
	require.NoError(t, ExportResults(conf, sampleResults(t)))

	raw, err := os.ReadFile(conf.Filename + ".json")
	require.NoError(t, err)

	var cat runCatalog
	require.NoError(t, json.Unmarshal(raw, &cat))
	require.Len(t, cat.Rects, 2)
	require.Len(t, cat.Nodes, 2)
	require.NotEmpty(t, cat.Nodes[0].PolygonLon)
}

func TestExportResultsNoop(t *testing.T) {
	conf := ExportConfig{Filename: filepath.Join(t.TempDir(), "run")}
	require.True(t, conf.IsUseless())
	require.NoError(t, ExportResults(conf, sampleResults(t)))
	_, err := os.Stat(conf.Filename + ".csv")
	require.True(t, os.IsNotExist(err))
}
