package main

import (
	"flag"
	"log"

	reach "github.com/lenvt/commonroad-reachable-set"
)

const defaultScenario = "~~unset~~"

var (
	scenario string
	outFile  string
	asJSON   bool
	asCSV    bool
)

func init() {
	flag.StringVar(&scenario, "scenario", defaultScenario, "scenario TOML file")
	flag.StringVar(&outFile, "out", "results", "basename for the exported results")
	flag.BoolVar(&asJSON, "json", true, "write results as JSON")
	flag.BoolVar(&asCSV, "csv", false, "write results as CSV")
}

// emptyChecker is a stand-in CollisionChecker that never reports a
// collision: a placeholder for the external obstacle/frame collaborator
// that §1 explicitly keeps out of this core's scope. A real binary wires
// in the scenario's own checker instead.
type emptyChecker struct{}

func (emptyChecker) Collides(step int, aabb reach.AABB) (bool, error) { return false, nil }

func main() {
	flag.Parse()
	if scenario == defaultScenario {
		log.Fatal("no -scenario provided")
	}

	cfg, err := reach.LoadConfig(scenario)
	if err != nil {
		log.Fatalf("config: %s", err)
	}

	logger := reach.NewLogger("cmd")
	driver := reach.NewDriver(cfg, emptyChecker{}, logger)

	results, err := driver.Run()
	if err != nil {
		log.Fatalf("run: %s", err)
	}

	exportConf := reach.ExportConfig{Filename: outFile, AsJSON: asJSON, AsCSV: asCSV}
	if err := reach.ExportResults(exportConf, results); err != nil {
		log.Fatalf("export: %s", err)
	}
}
