package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"kuliner-chatbot-be/internal/bootstrap"
	"kuliner-chatbot-be/internal/config"
	"kuliner-chatbot-be/internal/pkg/logger"
	"kuliner-chatbot-be/internal/service"
	"kuliner-chatbot-be/pkg/catalog"
	"kuliner-chatbot-be/pkg/database"
)

var (
	csvPath    string
	batchSize  int
	batchDelay time.Duration
	reset      bool
)

var rootCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Embed the venue catalog into pgvector",
	Long: `Reads the venue CSV catalog, embeds every row and upserts it into the
venue_embeddings table. Rows are keyed by their social media URL, so running
it again refreshes existing venues instead of duplicating them.`,
	RunE: runIngest,
}

func init() {
	rootCmd.Flags().StringVar(&csvPath, "csv", "", "catalog CSV path (default CATALOG_CSV_PATH)")
	rootCmd.Flags().IntVar(&batchSize, "batch-size", service.DefaultIngestBatchSize, "rows embedded and stored per batch")
	rootCmd.Flags().DurationVar(&batchDelay, "delay", 0, "pause between batches, for rate limited embedding APIs")
	rootCmd.Flags().BoolVar(&reset, "reset", false, "delete all stored venues before ingesting")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if csvPath == "" {
		csvPath = cfg.App.CatalogCSVPath
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	defer sysLogger.Sync()

	c, err := catalog.Load(csvPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	color.Cyan("Loaded %d venues from %s", len(c.Rows), csvPath)

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, false)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	container := bootstrap.NewIngestContainer(db, cfg, sysLogger)
	defer container.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := container.ConsumerService.Consume(ctx); err != nil {
		return fmt.Errorf("start consumer: %w", err)
	}

	started := time.Now()
	report, err := container.IngestService.Ingest(ctx, c, service.IngestOptions{
		Source:     csvPath,
		BatchSize:  batchSize,
		Reset:      reset,
		BatchDelay: batchDelay,
		OnBatch:    printBatch,
	})
	if err != nil {
		color.Red("Ingestion stopped: %v", err)
		return err
	}

	summary := color.GreenString
	if report.Failed > 0 {
		summary = color.YellowString
	}
	fmt.Println(summary("Done in %s: %d rows, %d stored, %d failed",
		time.Since(started).Round(time.Second), report.Rows, report.Stored, report.Failed))
	return nil
}

func printBatch(total int, res service.BatchResult) {
	line := fmt.Sprintf("[%d/%d] stored %d, failed %d", res.BatchIndex+1, total, res.Stored, res.Failed)
	switch {
	case res.Err != nil:
		color.Red("%s: %v", line, res.Err)
	case res.Failed > 0:
		color.Yellow("%s", line)
	default:
		color.Green("%s", line)
	}
}
