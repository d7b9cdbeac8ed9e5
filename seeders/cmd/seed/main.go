package main

import (
	"flag"
	"log"
	"os"

	"asset-system/migrations"
	"asset-system/pkg/config"
	"asset-system/pkg/database/postgresql"
	"asset-system/seeders"
)

func main() {
	runDicts := flag.Bool("dictionaries", false, "seed lookup tables (statuses, models, locations)")
	runAdmin := flag.Bool("admin", false, "create the initial admin user")
	runAll := flag.Bool("all", false, "run every seeder")
	flag.Parse()

	if !*runDicts && !*runAdmin && !*runAll {
		log.Println("no seeder selected")
		flag.PrintDefaults()
		return
	}

	cfg := config.New()
	db := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer db.Close()

	if err := migrations.Up(db); err != nil {
		log.Fatalf("applying migrations: %v", err)
	}

	if *runDicts || *runAll {
		seeders.SeedDictionaries(db)
	}
	if *runAdmin || *runAll {
		email := os.Getenv("ADMIN_EMAIL")
		if email == "" {
			email = "admin@example.com"
		}
		password := os.Getenv("ADMIN_PASSWORD")
		if password == "" {
			password = "changeme123"
		}
		seeders.SeedAdmin(db, email, password)
	}
}
