package reach

import (
	"os"

	"gopkg.in/yaml.v3"
)

// debugStep is the YAML shape of one step's results, used for scenario
// fixture authoring and for diffing steps in code review: easier to eyeball
// than the JSON results surface, and not meant to be a stable wire format.
type debugStep struct {
	Step         int       `yaml:"step"`
	DrivableArea []AABB    `yaml:"drivable_area"`
	Nodes        []yamlNode `yaml:"nodes"`
}

type yamlNode struct {
	PolygonLon [][2]float64 `yaml:"polygon_lon"`
	PolygonLat [][2]float64 `yaml:"polygon_lat"`
}

// DumpStepYAML writes a single step's drivable area and reach nodes as YAML
// to path, for debugging a scenario or diffing two runs of the driver.
func DumpStepYAML(path string, step StepResult) error {
	dump := debugStep{Step: step.Step, DrivableArea: []AABB(step.DrivableArea)}
	for _, n := range step.Nodes {
		lonV, err := n.PolygonLon.Vertices()
		if err != nil {
			return err
		}
		latV, err := n.PolygonLat.Vertices()
		if err != nil {
			return err
		}
		dump.Nodes = append(dump.Nodes, yamlNode{
			PolygonLon: pointsToPairs(lonV),
			PolygonLat: pointsToPairs(latV),
		})
	}

	out, err := yaml.Marshal(dump)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}
