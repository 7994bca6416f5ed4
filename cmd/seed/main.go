package main // seed loads venue, artist, show and trivia fixtures

import (
	"context"
	"flag"
	"log"

	"github.com/iliyamo/fyyur-trivia/internal/config"
	"github.com/iliyamo/fyyur-trivia/internal/seed"
	"github.com/iliyamo/fyyur-trivia/internal/server"
)

func main() {
	file := flag.String("file", "", "YAML fixtures to load (default: bundled fixtures)")
	flag.Parse()

	config.LoadDotEnv()
	cfg := config.LoadDatabase()
	cfg.DBBootstrap = true

	ctx := context.Background()
	db, err := server.OpenDB(ctx, cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	var f seed.Fixtures
	if *file == "" {
		f, err = seed.Default()
	} else {
		f, err = seed.LoadFile(*file)
	}
	if err != nil {
		log.Fatalf("fixtures: %v", err)
	}

	ids, err := seed.Apply(ctx, db, f)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Printf("seeded %d venues, %d artists, %d shows, %d categories, %d questions",
		len(ids.Venues), len(ids.Artists), len(f.Shows), len(ids.Categories), len(f.Questions))
}
