package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"go-data-quality/internal/api"
	"go-data-quality/internal/api/handler"
	"go-data-quality/internal/config"
	"go-data-quality/internal/logging"
	"go-data-quality/internal/store"
)

// @title Data Quality Analysis API
// @version 1.0
// @description Upload tabular datasets and receive structured data quality reports.
// @BasePath /api/v1
func main() {
	cfgFile := flag.String("config", "", "config file (default is ./quality.yaml)")
	flag.Parse()

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer log.Sync()

	history, err := openHistory(cfg)
	if err != nil {
		log.Fatal("failed to open history store", zap.Error(err))
	}
	defer history.Close()

	h := handler.New(history, log, cfg.MaxUploadBytes)
	r := api.NewRouter(h, log, cfg.CORSOrigins)

	if err := r.Start(cfg.ListenAddr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func openHistory(cfg *config.Config) (store.History, error) {
	switch cfg.HistoryBackend {
	case "redis":
		opts := store.DefaultRedisOptions(cfg.RedisAddr)
		opts.Password = cfg.RedisPassword
		opts.Database = cfg.RedisDB
		opts.Prefix = cfg.RedisPrefix
		return store.NewRedisHistory(opts)
	default:
		return store.NewSQLiteHistory(store.SQLiteOptions{
			Path:  cfg.SQLitePath,
			Reset: cfg.ResetHistory,
		})
	}
}
