// Command main runs the database seeder for Holocron.
package main

import (
	"context"
	"flag"
	"log"

	"holocron/internal/config"
	"holocron/internal/database"
	"holocron/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 10, "Number of users to create")
	maxFavorites := flag.Int("favorites", 3, "Maximum favorites of each kind per user")
	fixtures := flag.String("fixtures", "", "YAML catalog file (defaults to the built-in Star Wars catalog)")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	migrate := flag.Bool("migrate", true, "Create or update the schema before seeding")
	randSeed := flag.Int64("seed", 0, "Random seed for reproducible data (0 uses the current time)")
	fast := flag.Bool("fast", false, "Store plaintext passwords instead of bcrypt hashes (development only)")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, clean=%v\n", *numUsers, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *fast && cfg.IsProduction() {
		log.Fatal("❌ -fast is not allowed in production")
	}

	// Connect to database
	db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{ApplySchema: *migrate})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	res, err := seed.Seed(context.Background(), db, seed.Options{
		NumUsers:     *numUsers,
		MaxFavorites: *maxFavorites,
		ShouldClean:  *shouldClean,
		FixturesPath: *fixtures,
		SkipBcrypt:   *fast,
		RandSeed:     *randSeed,
	})
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Printf("✨ All done! %d users, %d characters, %d planets.", res.Users, res.Characters, res.Planets)
	log.Printf("📧 All test users have the password: %s", seed.DefaultPassword)
}
