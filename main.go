package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"huskykennel-scraper/config"
	"huskykennel-scraper/models"
	"huskykennel-scraper/scraper"
	"huskykennel-scraper/sources"
	"huskykennel-scraper/storage"
	"huskykennel-scraper/utils"
)

func main() {
	sourceFlag := flag.String("source", "", "scrape a single source by name instead of the full fleet")
	flag.Parse()

	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== HuskyKennel Housing Scraper starting ===")
	logger.Info("Config — concurrency: %d | source delay: %dms | static timeout: %v | headless timeout: %v",
		cfg.MaxConcurrency, cfg.SourceDelayMs, cfg.StaticTimeout, cfg.HeadlessTimeout)

	srcConfigs := sources.Builtin()
	if cfg.SourcesPath != "" {
		loaded, err := sources.LoadFile(cfg.SourcesPath)
		if err != nil {
			logger.Error("Failed to load sources file: %v", err)
			os.Exit(1)
		}
		logger.Info("Loaded %d sources from %s", len(loaded), cfg.SourcesPath)
		srcConfigs = loaded
	}
	registry := sources.NewRegistry(srcConfigs)

	store, err := storage.NewPostgresStore(cfg.DSN(), logger)
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		logger.Error("Make sure Docker is running: docker compose up -d")
		os.Exit(1)
	}
	defer store.Close()

	var exporter storage.BatchExporter
	if cfg.CSVOutputPath != "" {
		csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
		if err != nil {
			logger.Error("Failed to create CSV writer: %v", err)
			os.Exit(1)
		}
		defer csvWriter.Close()
		exporter = csvWriter
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orch := scraper.New(cfg, registry, store, exporter, logger)

	if *sourceFlag != "" {
		runSingle(ctx, orch, *sourceFlag, logger)
		return
	}

	result := orch.RunAll(ctx)
	printSummary(result)

	if result.WriteErr != nil {
		logger.Error("PostgreSQL write failed: %v", result.WriteErr)
		os.Exit(1)
	}
}

func runSingle(ctx context.Context, orch *scraper.Orchestrator, name string, logger *utils.Logger) {
	res, err := orch.RunOne(ctx, name)
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("  === Source Run Summary ===")
	fmt.Printf("  %s\n", formatSourceLine(res.SourceResult))
	fmt.Printf("  Duration: %dms\n\n", res.DurationMs)

	if res.WriteErr != nil {
		logger.Error("PostgreSQL write failed: %v", res.WriteErr)
		os.Exit(1)
	}
	if !res.Success {
		os.Exit(1)
	}
}

func printSummary(result *models.RunResult) {
	fmt.Println()
	fmt.Println("  === Run Summary ===")
	for _, res := range result.PerSource {
		fmt.Printf("  %s\n", formatSourceLine(res))
	}

	failed := 0
	for _, res := range result.PerSource {
		if !res.Success {
			failed++
		}
	}

	fmt.Println()
	fmt.Printf("  Sources: %d ok, %d failed\n", len(result.PerSource)-failed, failed)
	fmt.Printf("  Listings found: %d\n", result.TotalListingsFound)
	fmt.Printf("  Duration: %dms\n", result.DurationMs)
	if result.Cancelled {
		fmt.Println("  Run was cancelled before all sources were scraped.")
	}
	fmt.Println()
}

func formatSourceLine(res models.SourceResult) string {
	if res.Success {
		return fmt.Sprintf("✅ %-30s %d listings", res.Source, res.RecordCount)
	}
	return fmt.Sprintf("❌ %-30s %v", res.Source, res.Err)
}
