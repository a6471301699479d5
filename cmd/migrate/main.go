// Command migrate brings an existing tasks table up to date by adding the
// priority and due_date columns when they are missing. It can be run any
// number of times. Failures are logged and the command still exits 0.
package main

import (
	"context"
	"log"
	"time"

	"github.com/iliyamo/task-manager/internal/config"
	"github.com/iliyamo/task-manager/internal/database"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	run(ctx, config.DatabaseURL())
}

func run(ctx context.Context, url string) {
	store, err := database.Open(ctx, url)
	if err != nil {
		log.Printf("migrate: %v", err)
		return
	}
	defer store.Close()

	results, err := database.EvolveTasks(ctx, store)
	for _, r := range results {
		if r.Added {
			log.Printf("migrate: added tasks.%s", r.Column)
		} else {
			log.Printf("migrate: tasks.%s already present", r.Column)
		}
	}
	if err != nil {
		log.Printf("migrate: %v", err)
		return
	}
	log.Printf("migrate: done")
}
