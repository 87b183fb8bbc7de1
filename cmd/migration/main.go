package main

import (
	"flag"
	"log"

	"github.com/dukkanlabs/dukkan-erp/internal/infrastructure/database"
	"github.com/joho/godotenv"
)

func main() {
	var (
		path = flag.String("path", "migrations", "directory holding the migration files")
		down = flag.Bool("down", false, "roll back all migrations instead of applying them")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := database.NewPostgresConfigFromEnv()

	if *down {
		if err := database.RollbackMigrations(cfg, *path); err != nil {
			log.Fatalf("failed to roll back migrations: %v", err)
		}
		log.Println("migrations rolled back")
		return
	}

	if err := database.RunMigrations(cfg, *path); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	log.Println("migrations applied")
}
