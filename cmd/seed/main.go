// Command main runs the database seeder for ModelHub.
package main

import (
	"context"
	"flag"
	"log"

	"modelhub/internal/config"
	"modelhub/internal/database"
	"modelhub/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 20, "Number of users to create")
	numModels := flag.Int("models", 60, "Number of models to create")
	maxComments := flag.Int("comments", 5, "Maximum comments per model")
	maxLikes := flag.Int("likes", 10, "Maximum likes per model")
	shouldClean := flag.Bool("clean", false, "Clean database before seeding")
	categoriesOnly := flag.Bool("categories-only", false, "Only upsert the reference categories")
	fast := flag.Bool("fast", true, "Hash demo passwords at minimum bcrypt cost")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *categoriesOnly {
		if err := seed.Categories(db); err != nil {
			log.Fatalf("Category seeding failed: %v", err)
		}
		log.Println("Categories seeded.")
		return
	}

	log.Printf("Target: %d users, %d models, clean=%v\n", *numUsers, *numModels, *shouldClean)
	s := seed.NewSeeder(db, seed.Options{
		NumUsers:    *numUsers,
		NumModels:   *numModels,
		MaxComments: *maxComments,
		MaxLikes:    *maxLikes,
		FastHash:    *fast,
	})

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := s.Run(context.Background()); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with demo data.")
	log.Printf("All demo users have the password: %s", seed.DemoPassword)
}
