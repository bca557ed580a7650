// Command main runs the database seeder for DevLink.
package main

import (
	"flag"
	"log"

	"devlink/internal/config"
	"devlink/internal/database"
	"devlink/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numPosts := flag.Int("posts", 100, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d posts, clean=%v\n", *numUsers, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if cerr := database.Close(db); cerr != nil {
			log.Printf("Failed to close database: %v", cerr)
		}
	}()

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	users, err := s.SeedUsers(*numUsers)
	if err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}
	if err := s.SeedPosts(users, *numPosts); err != nil {
		log.Fatalf("Post seeding failed: %v", err)
	}

	log.Println("All done! Database populated with test data.")
	log.Println("All test users have the password: password123")
}
