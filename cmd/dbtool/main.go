package main

import (
	"flag"
	"itinerary-service/internal/adapters/cache"
	"itinerary-service/internal/platform/db"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func main() {
	clear := flag.Bool("clear", false, "drop all cached travel estimates")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pool, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	log.Println("Initializing database schema...")
	if err := cache.InitSchema(pool); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if *clear {
		log.Println("Clearing cached estimates...")
		if err := cache.ClearEstimates(pool); err != nil {
			log.Fatalf("clearing estimates failed: %v", err)
		}
		log.Println("Estimates cleared.")
	}
}
