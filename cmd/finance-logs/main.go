package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dvloznov/finance-logs/internal/config"
	"github.com/dvloznov/finance-logs/internal/gcsuploader"
	"github.com/dvloznov/finance-logs/internal/logger"
	"github.com/dvloznov/finance-logs/internal/notionsync"
	"github.com/dvloznov/finance-logs/internal/pipeline"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to the pipeline config file")
	inputDir := flag.String("input", "", "Override the statements input directory")
	archiveDir := flag.String("archive", "", "Override the archive directory")
	dryRun := flag.Bool("dry-run", false, "Parse and normalize but skip upload and archiving")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *inputDir != "" {
		cfg.InputDir = *inputDir
	}
	if *archiveDir != "" {
		cfg.ArchiveDir = *archiveDir
	}

	log, logPath, closeLog, err := logger.NewWithRunFile(cfg.LogsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up logger: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	log.Info().Msg("Starting finance logs pipeline")

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Environment validation failed")
	}

	ctx := logger.WithContext(context.Background(), log)

	extractor := pipeline.NewGeminiExtractor(cfg.ModelName, cfg.GeminiAPIKey)
	parser := pipeline.NewStatementParser(extractor)
	normalizer := pipeline.NewNormalizer(cfg.ExcludedKeywords)
	uploader := notionsync.NewUploader(notionsync.NewNotionClient(cfg.NotionAPIKey), cfg.NotionDatabaseID)

	opts := pipeline.RunnerOptions{
		InputDir:           cfg.InputDir,
		ArchiveDir:         cfg.ArchiveDir,
		Extensions:         cfg.Extensions,
		RequireFullSuccess: cfg.RequireFullSuccess,
		DryRun:             *dryRun,
	}
	if cfg.GCSBackupBucket != "" {
		opts.Backup = gcsuploader.NewBackup(cfg.GCSBackupBucket)
	}

	runner := pipeline.NewRunner(parser, normalizer, uploader, opts)

	summary, err := runner.Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Pipeline run failed")
		fmt.Fprintf(os.Stderr, "Error: %v\nCheck log file for details: %s\n", err, logPath)
		os.Exit(1)
	}

	log.Info().Msg("Finance logs pipeline completed successfully")
	fmt.Printf("Successfully processed %d files\n", summary.FilesProcessed)
	fmt.Printf("Uploaded %d transactions to Notion\n", summary.Uploaded)
	if summary.FilesSkipped > 0 {
		fmt.Printf("Skipped %d unsupported files\n", summary.FilesSkipped)
	}
	fmt.Printf("Log file: %s\n", logPath)
}
