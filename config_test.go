package reach

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleScenario = `
[planning]
dt = 1.0
steps = 5
size_grid = 0.5

[vehicle.ego]
v_lon_min = -5
v_lon_max = 20
a_lon_min = -2
a_lon_max = 2
v_lat_min = -5
v_lat_max = 5
a_lat_min = -1
a_lat_max = 1
radius_disc = 1.2

[reachable_set]
radius_terminal_split = 0.1
num_threads = 4
rasterize_obstacles = false

[initial]
p_lon = 0
p_lat = 0
p_lon_eps = 0.01
p_lat_eps = 0.01
v_lon = 5
v_lat = 0
v_lon_eps = 0.01
v_lat_eps = 0.01
`

func writeScenario(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeScenario(t, sampleScenario)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 1.0, cfg.Planning.Dt)
	require.Equal(t, 5, cfg.Planning.Steps)
	require.Equal(t, 4, cfg.ReachableSet.NumThreads)
	require.Equal(t, 0.01, cfg.Initial.PLonEps)
}

func TestConfigValidateRejectsBadDt(t *testing.T) {
	cfg := testConfig()
	cfg.Planning.Dt = 0
	err := cfg.Validate()
	require.Error(t, err)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, "planning.dt", cfgErr.Field)
}

func TestConfigValidateRejectsInvertedVelocityBounds(t *testing.T) {
	cfg := testConfig()
	cfg.Vehicle.VLonMin = 10
	cfg.Vehicle.VLonMax = 5
	err := cfg.Validate()
	require.Error(t, err)
}
