// seed_recommendations loads the recommendation catalog straight into the
// database.
//
// Input is a TSV with a header row and lines of the form
// subcomponent<TAB>text. A text of "Recommendation coming soon!" is stored
// as empty, which keeps that subcomponent out of recommendation output.
//
// Usage:
//
//	go run ./scripts/seed_recommendations -file recommendations.tsv -database postgres://localhost/vitality
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/vitalworks/vitality/internal/store"
)

const placeholderText = "Recommendation coming soon!"

func main() {
	filePath := flag.String("file", "recommendations.tsv", "path to recommendations TSV")
	databaseURL := flag.String("database", os.Getenv("VITALITY_DATABASE_URL"), "postgres connection URL")
	dryRun := flag.Bool("dry-run", false, "print recommendations without storing")
	flag.Parse()

	f, err := os.Open(*filePath)
	if err != nil {
		log.Fatalf("open recommendations file: %v", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = '\t'
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("parse recommendations file: %v", err)
	}
	if len(records) < 2 {
		log.Fatalf("no recommendations after the header row")
	}

	var recs []*store.Recommendation
	for i, rec := range records[1:] {
		if len(rec) != 2 {
			log.Fatalf("line %d: expected subcomponent and text", i+2)
		}
		text := rec[1]
		if text == placeholderText {
			text = ""
		}
		recs = append(recs, &store.Recommendation{SubComponent: rec[0], Text: text})
	}

	if *dryRun {
		for _, rec := range recs {
			fmt.Printf("%s -> %q\n", rec.SubComponent, rec.Text)
		}
		return
	}

	ctx := context.Background()
	db, err := store.NewPostgresStore(ctx, *databaseURL)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer db.Close()

	if err := db.UpsertRecommendations(ctx, recs); err != nil {
		log.Fatalf("store recommendations: %v", err)
	}
	fmt.Printf("stored %d recommendations\n", len(recs))
}
