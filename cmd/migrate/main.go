// Command migrate copies records from the JSON file store into the MongoDB
// collection, skipping any whose email or roll number is already present.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"hackreg/internal/config"
	"hackreg/internal/storage"
)

func main() {
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("config", "err", err)
		os.Exit(1)
	}
	if cfg.MongoURI == "" {
		log.Error("MONGO_URI is required for migration")
		os.Exit(1)
	}

	ctx := context.Background()

	fileStore, err := storage.NewFileStore(cfg.DataFile)
	if err != nil {
		log.Error("file storage", "err", err)
		os.Exit(1)
	}

	mongoStore, err := storage.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoCollection)
	if err != nil {
		log.Error("mongo storage", "err", err)
		os.Exit(1)
	}
	defer func() { _ = mongoStore.Close(ctx) }()

	students, err := fileStore.List(ctx)
	if err != nil {
		log.Error("read records", "err", err)
		os.Exit(1)
	}
	if len(students) == 0 {
		log.Info("no records to migrate", "path", cfg.DataFile)
		return
	}

	migrated, skipped := 0, 0
	for _, s := range students {
		if _, err := mongoStore.FindByEmail(ctx, s.Email); err == nil {
			log.Info("skipping duplicate", "email", s.Email)
			skipped++
			continue
		}
		if _, err := mongoStore.FindByRollNumber(ctx, s.RollNumber); err == nil {
			log.Info("skipping duplicate", "rollNumber", s.RollNumber)
			skipped++
			continue
		}
		if err := mongoStore.Insert(ctx, &s); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				skipped++
				continue
			}
			log.Error("insert failed", "id", s.ID, "err", err)
			os.Exit(1)
		}
		migrated++
	}

	log.Info("migration complete", "migrated", migrated, "skipped", skipped)
}
