package reach

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/soniakeys/meeus/julian"
)

// ExportConfig configures how a run's results are written to disk,
// following the teacher's own ExportConfig (Cosmo/AsCSV/Timestamp) shape:
// a results surface can be asked for CSV, JSON, or both.
type ExportConfig struct {
	Filename  string
	AsCSV     bool
	AsJSON    bool
	Timestamp bool
}

// IsUseless returns whether this config doesn't actually do anything.
func (c ExportConfig) IsUseless() bool {
	return !c.AsCSV && !c.AsJSON
}

// rectRecord and nodeRecord are the JSON shapes of a step's results
// surface (§6): one entry per drivable-area rectangle, one per reach node.
type rectRecord struct {
	Step int     `json:"step"`
	JD   float64 `json:"jd"`
	XMin float64 `json:"s_min"`
	YMin float64 `json:"d_min"`
	XMax float64 `json:"s_max"`
	YMax float64 `json:"d_max"`
}

type nodeRecord struct {
	Step       int         `json:"step"`
	JD         float64     `json:"jd"`
	PolygonLon [][2]float64 `json:"polygon_lon"`
	PolygonLat [][2]float64 `json:"polygon_lat"`
}

// runCatalog is the JSON document written for a whole run, modeled on the
// teacher's CgCatalog top-level wrapper (version, name, items).
type runCatalog struct {
	Version string       `json:"version"`
	Name    string        `json:"name"`
	Rects   []rectRecord  `json:"drivable_area"`
	Nodes   []nodeRecord  `json:"reach_nodes"`
}

func resultFilename(conf ExportConfig, ext string) string {
	if conf.Timestamp {
		t := time.Now()
		return fmt.Sprintf("%s-%d-%02d-%02dT%02d.%02d.%02d.%s",
			conf.Filename, t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), ext)
	}
	return fmt.Sprintf("%s.%s", conf.Filename, ext)
}

// ExportResults writes the driver's per-step results to disk per conf,
// stamping every record with the current Julian Date the same way the
// teacher's export pipeline stamps interpolated states via
// soniakeys/meeus/julian, giving each row an absolute-time axis alongside
// the step index.
func ExportResults(conf ExportConfig, results []StepResult) error {
	if conf.IsUseless() {
		return nil
	}
	jd := julian.TimeToJD(time.Now())

	if conf.AsCSV {
		if err := exportCSV(conf, results, jd); err != nil {
			return err
		}
	}
	if conf.AsJSON {
		if err := exportJSON(conf, results, jd); err != nil {
			return err
		}
	}
	return nil
}

func exportCSV(conf ExportConfig, results []StepResult, jd float64) error {
	f, err := os.Create(resultFilename(conf, "csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()
	if err := w.Write([]string{"step", "jd", "s_min", "d_min", "s_max", "d_max"}); err != nil {
		return err
	}
	for _, r := range results {
		for _, rect := range r.DrivableArea {
			row := []string{
				strconv.Itoa(r.Step),
				strconv.FormatFloat(jd, 'f', -1, 64),
				strconv.FormatFloat(rect.XMin, 'f', -1, 64),
				strconv.FormatFloat(rect.YMin, 'f', -1, 64),
				strconv.FormatFloat(rect.XMax, 'f', -1, 64),
				strconv.FormatFloat(rect.YMax, 'f', -1, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

func exportJSON(conf ExportConfig, results []StepResult, jd float64) error {
	cat := runCatalog{Version: "1.0", Name: conf.Filename}
	for _, r := range results {
		for _, rect := range r.DrivableArea {
			cat.Rects = append(cat.Rects, rectRecord{
				Step: r.Step, JD: jd,
				XMin: rect.XMin, YMin: rect.YMin, XMax: rect.XMax, YMax: rect.YMax,
			})
		}
		for _, n := range r.Nodes {
			lonV, err := n.PolygonLon.Vertices()
			if err != nil {
				return err
			}
			latV, err := n.PolygonLat.Vertices()
			if err != nil {
				return err
			}
			cat.Nodes = append(cat.Nodes, nodeRecord{
				Step: r.Step, JD: jd,
				PolygonLon: pointsToPairs(lonV),
				PolygonLat: pointsToPairs(latV),
			})
		}
	}

	f, err := os.Create(resultFilename(conf, "json"))
	if err != nil {
		return err
	}
	defer f.Close()

	marsh, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return err
	}
	_, err = f.Write(marsh)
	return err
}

func pointsToPairs(pts []Point) [][2]float64 {
	out := make([][2]float64, len(pts))
	for i, p := range pts {
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}
