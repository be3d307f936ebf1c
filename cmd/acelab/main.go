package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/Endio1/LAB-App-1/internal/config"
	"github.com/Endio1/LAB-App-1/internal/infrastructure"
	"github.com/Endio1/LAB-App-1/internal/services"
	"github.com/Endio1/LAB-App-1/pkg/contracts/domain"
)

func main() {
	inFile := flag.String("in", "", "input dataset file (.xlsx or .csv)")
	outDir := flag.String("out", "", "output directory for snapshot files (defaults to configured output dir)")
	format := flag.String("format", "", "snapshot format: xlsx or csv (defaults to configured format)")
	flag.Parse()

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "usage: acelab -in <dataset.xlsx|dataset.csv> [-out <dir>] [-format xlsx|csv]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	if *outDir != "" {
		cfg.Paths.OutputDir = *outDir
	}
	if *format != "" {
		cfg.Pipeline.SnapshotFormat = *format
	}
	if cfg.Pipeline.SnapshotFormat != string(domain.ArtifactXLSX) && cfg.Pipeline.SnapshotFormat != string(domain.ArtifactCSV) {
		fmt.Fprintf(os.Stderr, "unsupported snapshot format %q: expected xlsx or csv\n", cfg.Pipeline.SnapshotFormat)
		os.Exit(2)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	paths, err := config.NewPaths(cfg.Paths)
	if err != nil {
		logger.Error("Failed to resolve paths", "error", err)
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		logger.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.DefaultProcessTimeout)
	defer cancel()

	svc := services.NewCorrectionService(cfg, paths, logger, nil)
	result, err := svc.ProcessFile(ctx, *inFile)
	if err != nil {
		logger.Error("Correction run failed",
			slog.String("input", *inFile),
			slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	anomalies := 0
	for _, row := range result.TableA {
		if row.IsAnomaly {
			anomalies++
		}
	}

	fmt.Printf("Processed %d rows (%d anomalous) from %s\n", result.RowCount, anomalies, *inFile)
	fmt.Printf("  avg_error:     %.4f\n", result.Summary.AvgError)
	fmt.Printf("  avg_error_pct: %.4f\n", result.Summary.AvgErrorPct)
	fmt.Printf("  total_error:   %.4f\n", result.Summary.TotalError)
	fmt.Printf("  capped_pct:    %.4f\n", result.Summary.CappedPct)
	for _, artifact := range result.Artifacts {
		fmt.Printf("  wrote %s snapshot: %s\n", artifact.Table, artifact.Path)
	}
}
