package main

import (
	"log"

	"kuliner-chatbot-be/internal/config"
	"kuliner-chatbot-be/internal/model"
	"kuliner-chatbot-be/pkg/database"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, true)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Step 1: Setting up extensions...")
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	log.Println("Step 2: Running AutoMigrate...")
	if err := db.AutoMigrate(&model.VenueEmbedding{}); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("Step 3: Creating indexes...")
	indexSQL := []string{
		// Filter predicates use jsonb containment and ->> on metadata.
		`CREATE INDEX IF NOT EXISTS idx_venue_embeddings_metadata ON venue_embeddings USING GIN (metadata jsonb_path_ops);`,
		`CREATE INDEX IF NOT EXISTS idx_venue_embeddings_embedding ON venue_embeddings USING hnsw (embedding_value vector_cosine_ops);`,
		`CREATE INDEX IF NOT EXISTS idx_venue_embeddings_kota ON venue_embeddings ((metadata ->> 'kota'));`,
	}
	for _, sql := range indexSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to create index: %v. Continuing...", err)
		}
	}

	log.Println("Migration completed successfully.")
}
