package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/panos-42/gaming-pipeline/pipeline"
	"github.com/panos-42/gaming-pipeline/pipeline/database"
	"github.com/panos-42/gaming-pipeline/pipeline/logger"
)

var (
	version = "dev"
	commit  = "unknown"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: gaming-pipeline [flags] [start_date] [end_date]")
	fmt.Fprintln(os.Stderr, "  no dates     process all available data")
	fmt.Fprintln(os.Stderr, "  one date     process a single business date (YYYY-MM-DD)")
	fmt.Fprintln(os.Stderr, "  two dates    process the inclusive date range")
	flag.PrintDefaults()
}

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(slog.LevelInfo)))

	configPath := flag.String("config", "config.toml", "path to config")
	flag.Usage = usage
	flag.Parse()

	// Usage errors must never touch the database.
	filter, err := pipeline.ParseDateArgs(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		usage()
		os.Exit(1)
	}

	cfg, err := pipeline.LoadConfig(*configPath)
	if err != nil {
		logger.LogError("Failed to load configuration", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(logger.NewHandler(cfg.Log.Level)))

	logger.LogSystem("Starting gaming ETL pipeline",
		slog.String("version", version),
		slog.String("commit", commit),
		slog.String("window", filter.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	dbStart := time.Now()
	db, err := database.New(ctx, cfg.DB.DSN(), cfg.DB.PoolSize)
	if err != nil {
		logger.LogError("Database connection failed", err,
			slog.Duration("attempted_for", time.Since(dbStart)))
		os.Exit(1)
	}
	defer db.Close()
	logger.LogSystem("Database connected", slog.Duration("took", time.Since(dbStart)))

	if err := db.InitializeSchema(ctx); err != nil {
		logger.LogError("Failed to initialize target schema", err)
		os.Exit(1)
	}
	logger.LogSystem("Target table ready")

	report, err := pipeline.New(cfg, db).Run(ctx, filter)
	if err != nil {
		logger.LogError("ETL failed", err)
		os.Exit(1)
	}

	report.PrintSummary(os.Stdout)
	logger.LogSystem("ETL completed successfully")
}
