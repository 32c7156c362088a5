// One-shot cleanup: deletes contact submissions older than -days. Run
// manually against the live store.
package main

import (
	"flag"
	"log"
	"time"

	"launderette-finder/src/config"
	"launderette-finder/src/db"
)

func main() {
	days := flag.Int("days", 90, "delete submissions older than this many days")
	flag.Parse()

	cfg := config.Load()
	store, err := db.NewElasticStore(cfg.ElasticURL)
	if err != nil {
		log.Fatalf("connect to Elasticsearch: %v", err)
	}
	defer store.Client.Stop()

	cutoff := time.Now().AddDate(0, 0, -*days)
	contacts, err := store.FindContactsBefore(cutoff)
	if err != nil {
		log.Fatalf("find contact submissions: %v", err)
	}
	log.Printf("matched %d submissions older than %s", len(contacts), cutoff.Format("2006-01-02"))

	for _, c := range contacts {
		if err := store.DeleteContactSubmission(c.ID); err != nil {
			log.Fatalf("delete %s: %v", c.ID, err)
		}
		log.Printf("deleted %s (%s, %s)", c.ID, c.Email, c.CreatedAt.Format(time.RFC3339))
	}

	log.Printf("done, %d submissions deleted", len(contacts))
}
