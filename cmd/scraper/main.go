package main

import (
	"context"
	"log"
	"time"

	"mealhub/internal/scraper"
	"mealhub/pkg/database"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	// Ensure schema exists
	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	agg := scraper.NewAggregator(
		scraper.NewArlaSource(),
		scraper.NewKoketSource(),
	)

	recipes, err := agg.FetchAndMerge(ctx)
	if err != nil {
		log.Fatalf("scrape failed: %v", err)
	}

	log.Printf("merged recipes: %d", len(recipes))

	inserted, err := scraper.SaveToDatabase(ctx, db, recipes)
	if err != nil {
		log.Fatalf("save failed: %v", err)
	}

	log.Printf("✅ catalog updated (%d new recipes)", len(inserted))
}
