package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"pocketledger/config"
	"pocketledger/database"
)

// Applies pending migrations and exits. Deploy hooks run this before the
// server starts so schema changes never race request traffic.
func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	cfg := config.Load()
	dbPath := flag.String("db", cfg.DatabasePath, "path to the sqlite database")
	flag.Parse()

	store, err := database.Open(*dbPath)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	defer store.Close()

	log.Printf("Migrations applied to %s", *dbPath)
}
