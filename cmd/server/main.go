package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hackreg/internal/config"
	"hackreg/internal/registration"
	"hackreg/internal/server"
	"hackreg/internal/sheets"
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

	ctx := context.Background()
	store := openStore(ctx, cfg, log)

	var exporter registration.Exporter
	if cfg.ExportEnabled() {
		client, err := sheets.New(cfg.GoogleServiceAccountJSON, cfg.SpreadsheetID)
		if err != nil {
			log.Warn("sheet export disabled", "err", err)
		} else {
			exporter = client
			log.Info("sheet export enabled", "spreadsheet", client.SpreadsheetID())
		}
	} else {
		log.Info("sheet export disabled: no spreadsheet or credentials configured")
	}

	svc := registration.New(store, exporter, cfg.UploadsDir, log)
	httpSrv := server.New(cfg, svc, store, log)

	go func() {
		log.Info("HTTP listening", "addr", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server", "err", err)
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down...")

	ctxTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(ctxTimeout)
	_ = store.Close(ctxTimeout)

	log.Info("bye")
}

// openStore picks the storage strategy for the process lifetime: MongoDB when
// MONGO_URI is set and reachable, otherwise the JSON file. A failed Mongo
// connection degrades to file storage instead of refusing to start.
func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) storage.Store {
	if cfg.MongoURI != "" {
		ms, err := storage.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoCollection)
		if err == nil {
			log.Info("using MongoDB storage", "db", cfg.MongoDB, "collection", cfg.MongoCollection)
			return ms
		}
		log.Warn("MongoDB unavailable, falling back to file storage", "err", err)
	}
	fs, err := storage.NewFileStore(cfg.DataFile)
	if err != nil {
		log.Error("file storage", "err", err)
		os.Exit(1)
	}
	log.Info("using file storage", "path", cfg.DataFile)
	return fs
}
