package main

import (
	"flag"
	"log"

	"github.com/harrier-data/vertex.report/internal/config"
	"github.com/harrier-data/vertex.report/internal/event"
	"github.com/harrier-data/vertex.report/internal/geom"
	"github.com/harrier-data/vertex.report/internal/recon"
	"github.com/harrier-data/vertex.report/internal/recondb"
)

func main() {
	var eventPath string
	var configPath string
	var dbPath string

	flag.StringVar(&eventPath, "event", "", "path to event JSON file")
	flag.StringVar(&configPath, "config", "", "path to tuning JSON (default: bundled defaults)")
	flag.StringVar(&dbPath, "db", "", "optional sqlite db to record the run in")
	flag.Parse()

	if eventPath == "" {
		log.Fatalf("event file must be provided (-event)")
	}

	tuning := config.MustLoadDefaultConfig()
	if configPath != "" {
		loaded, err := config.LoadTuningConfig(configPath)
		if err != nil {
			log.Fatalf("load tuning config: %v", err)
		}
		tuning = loaded
	}
	cfg := config.SelectionConfigFromTuning(tuning)

	store, err := event.LoadEventFile(eventPath)
	if err != nil {
		log.Fatalf("load event: %v", err)
	}

	candidates, err := store.CurrentVertices()
	if err != nil {
		log.Fatalf("read candidate vertices: %v", err)
	}

	algo, err := recon.NewAlgorithm(cfg, geom.DefaultWirePlaneProjector())
	if err != nil {
		log.Fatalf("build algorithm: %v", err)
	}

	result, err := algo.Run(store)
	if err != nil {
		log.Fatalf("selection failed: %v", err)
	}

	log.Printf("event %s: %d candidates, %d scored, %d shortlisted",
		store.EventID(), len(candidates), len(result.Scored), len(result.Shortlist))

	if len(result.Selected) == 0 {
		log.Printf("no vertex selected")
	} else {
		v := result.Selected[0]
		log.Printf("selected vertex %s at (%.3f, %.3f, %.3f) score=%.4f -> list %q",
			v.ID, v.Position.X, v.Position.Y, v.Position.Z, result.BestScore,
			cfg.OutputVertexList)
	}

	if dbPath != "" {
		db, err := recondb.NewDB(dbPath)
		if err != nil {
			log.Fatalf("open run db: %v", err)
		}
		defer db.Close()

		if err := db.SaveEvent(store); err != nil {
			log.Fatalf("save event: %v", err)
		}

		run, scores := recondb.BuildRun(store.EventID(), candidates, result)
		if err := db.RecordRun(run, scores); err != nil {
			log.Fatalf("record run: %v", err)
		}
		log.Printf("recorded run %s for event %s", run.RunID, store.EventID())
	}
}
