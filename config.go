package reach

import (
	"github.com/spf13/viper"
)

// Config mirrors the flat-key scenario schema of §6: planning parameters,
// ego vehicle bounds, reachable-set tuning, and the initial state. It does
// not carry a CollisionChecker or obstacle data; those are external
// collaborators constructed by the caller, per §1.
type Config struct {
	Planning     PlanningConfig
	Vehicle      VehicleConfig
	ReachableSet ReachableSetConfig
	Initial      InitialConfig
}

// PlanningConfig holds the step size, horizon and discretisation grid.
type PlanningConfig struct {
	Dt       float64
	Steps    int
	SizeGrid float64
}

// VehicleConfig bounds the ego vehicle's velocity and acceleration on both
// axes, plus the disc radius used by an external collision-checker
// rasterizer (consumed here only to round-trip through Config, per §6).
type VehicleConfig struct {
	VLonMin, VLonMax float64
	ALonMin, ALonMax float64
	VLatMin, VLatMax float64
	ALatMin, ALatMax float64
	RadiusDisc       float64
}

// ReachableSetConfig tunes the collision splitter and its parallelism.
type ReachableSetConfig struct {
	RadiusTerminalSplit float64
	NumThreads          int
	RasterizeObstacles  bool
}

// InitialConfig is the t=0 position and velocity box, each given as a
// center plus an epsilon half-width, per §6.
type InitialConfig struct {
	PLon, PLat       float64
	PLonEps, PLatEps float64
	VLon, VLat       float64
	VLonEps, VLatEps float64
}

// LoadConfig reads a TOML scenario file into a Config, following the same
// viper wiring cmd/mission/main.go uses for its own scenario files
// (SetConfigFile/ReadInConfig), then walks the nested keys the way
// cmd/designer/config.go's confReadFromUntil does.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, &ConfigError{Field: path, Msg: err.Error()}
	}

	cfg := Config{
		Planning: PlanningConfig{
			Dt:       v.GetFloat64("planning.dt"),
			Steps:    v.GetInt("planning.steps"),
			SizeGrid: v.GetFloat64("planning.size_grid"),
		},
		Vehicle: VehicleConfig{
			VLonMin:    v.GetFloat64("vehicle.ego.v_lon_min"),
			VLonMax:    v.GetFloat64("vehicle.ego.v_lon_max"),
			ALonMin:    v.GetFloat64("vehicle.ego.a_lon_min"),
			ALonMax:    v.GetFloat64("vehicle.ego.a_lon_max"),
			VLatMin:    v.GetFloat64("vehicle.ego.v_lat_min"),
			VLatMax:    v.GetFloat64("vehicle.ego.v_lat_max"),
			ALatMin:    v.GetFloat64("vehicle.ego.a_lat_min"),
			ALatMax:    v.GetFloat64("vehicle.ego.a_lat_max"),
			RadiusDisc: v.GetFloat64("vehicle.ego.radius_disc"),
		},
		ReachableSet: ReachableSetConfig{
			RadiusTerminalSplit: v.GetFloat64("reachable_set.radius_terminal_split"),
			NumThreads:          v.GetInt("reachable_set.num_threads"),
			RasterizeObstacles:  v.GetBool("reachable_set.rasterize_obstacles"),
		},
		Initial: InitialConfig{
			PLon:    v.GetFloat64("initial.p_lon"),
			PLat:    v.GetFloat64("initial.p_lat"),
			PLonEps: v.GetFloat64("initial.p_lon_eps"),
			PLatEps: v.GetFloat64("initial.p_lat_eps"),
			VLon:    v.GetFloat64("initial.v_lon"),
			VLat:    v.GetFloat64("initial.v_lat"),
			VLonEps: v.GetFloat64("initial.v_lon_eps"),
			VLatEps: v.GetFloat64("initial.v_lat_eps"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the numeric constraints §6 and §7 require of a scenario
// (dt>0, steps>0, Δ>0, v_min<=v_max, a_min<=a_max, radius_terminal_split>0,
// num_threads>0), returning the first violation as a *ConfigError.
func (c Config) Validate() error {
	switch {
	case c.Planning.Dt <= 0:
		return &ConfigError{Field: "planning.dt", Msg: "must be positive"}
	case c.Planning.Steps <= 0:
		return &ConfigError{Field: "planning.steps", Msg: "must be positive"}
	case c.Planning.SizeGrid <= 0:
		return &ConfigError{Field: "planning.size_grid", Msg: "must be positive"}
	case c.Vehicle.VLonMin > c.Vehicle.VLonMax:
		return &ConfigError{Field: "vehicle.ego.v_lon_min", Msg: "must not exceed v_lon_max"}
	case c.Vehicle.ALonMin > c.Vehicle.ALonMax:
		return &ConfigError{Field: "vehicle.ego.a_lon_min", Msg: "must not exceed a_lon_max"}
	case c.Vehicle.VLatMin > c.Vehicle.VLatMax:
		return &ConfigError{Field: "vehicle.ego.v_lat_min", Msg: "must not exceed v_lat_max"}
	case c.Vehicle.ALatMin > c.Vehicle.ALatMax:
		return &ConfigError{Field: "vehicle.ego.a_lat_min", Msg: "must not exceed a_lat_max"}
	case c.ReachableSet.RadiusTerminalSplit <= 0:
		return &ConfigError{Field: "reachable_set.radius_terminal_split", Msg: "must be positive"}
	case c.ReachableSet.NumThreads <= 0:
		return &ConfigError{Field: "reachable_set.num_threads", Msg: "must be positive"}
	}
	return nil
}
