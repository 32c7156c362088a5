// One-shot cleanup: deletes every launderette in the cities listed below,
// optionally only those created before a cutoff date. Run manually; there
// is no checkpointing, a crash mid-run leaves a partial deletion.
package main

import (
	"flag"
	"log"
	"time"

	"launderette-finder/src/config"
	"launderette-finder/src/db"
)

var purgeCities = []string{
	"Atlantis",
	"Test City",
	"Example Town",
}

func main() {
	before := flag.String("before", "", "only delete listings created before this date (2006-01-02)")
	dryRun := flag.Bool("dry-run", false, "log what would be deleted without deleting")
	flag.Parse()

	var cutoff time.Time
	if *before != "" {
		var err error
		cutoff, err = time.Parse("2006-01-02", *before)
		if err != nil {
			log.Fatalf("invalid -before date: %v", err)
		}
	}

	cfg := config.Load()
	store, err := db.NewElasticStore(cfg.ElasticURL)
	if err != nil {
		log.Fatalf("connect to Elasticsearch: %v", err)
	}
	defer store.Client.Stop()

	listings, err := store.FindListingsByCities(purgeCities)
	if err != nil {
		log.Fatalf("find listings: %v", err)
	}
	log.Printf("matched %d listings in %d cities", len(listings), len(purgeCities))

	deleted := 0
	for _, l := range listings {
		if !cutoff.IsZero() && !l.CreatedAt.Before(cutoff) {
			continue
		}
		if *dryRun {
			log.Printf("would delete %s (%s, %s)", l.ID, l.Name, l.City)
			continue
		}
		if err := store.DeleteListing(l.ID); err != nil {
			log.Fatalf("delete %s: %v", l.ID, err)
		}
		log.Printf("deleted %s (%s, %s)", l.ID, l.Name, l.City)
		deleted++
	}

	log.Printf("done, %d listings deleted", deleted)
}
