// Command main seeds a development database with generated users and posts.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"postapi/internal/config"
	"postapi/internal/database"
	"postapi/internal/middleware"
	"postapi/internal/repository"
	"postapi/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of users to create")
	numPosts := flag.Int("posts", 40, "Number of posts to create")
	seedValue := flag.Int64("seed", 0, "Random seed for reproducible data (0 = random)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}
	middleware.ConfigureLogger(cfg.Env, cfg.LogLevel)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := database.Acquire(ctx, db); err != nil {
		log.Fatalf("Database unavailable: %v", err)
	}

	s := seed.NewSeeder(repository.NewUserRepository(db), repository.NewPostRepository(db), *seedValue)
	res, err := s.Run(ctx, seed.Options{Users: *numUsers, Posts: *numPosts})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d users and %d posts", len(res.Users), len(res.Posts))
}
