package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Endio1/LAB-App-1/internal/config"
	"github.com/Endio1/LAB-App-1/internal/dataprocessing"
	"github.com/Endio1/LAB-App-1/internal/exporter"
	"github.com/Endio1/LAB-App-1/internal/files"
	"github.com/Endio1/LAB-App-1/internal/infrastructure"
	"github.com/Endio1/LAB-App-1/internal/validation"
	"github.com/Endio1/LAB-App-1/pkg/contracts/domain"
)

// TracerName identifies correction service spans.
const TracerName = "acelab.correction"

// CorrectionService runs the full correction workflow over one dataset:
// validate, parse, detect, summarize, correct, and snapshot the result.
type CorrectionService struct {
	cfg       *config.Config
	paths     *config.Paths
	logger    *slog.Logger
	pipeline  *dataprocessing.Pipeline
	validator *validation.FileValidator
	snapshots *exporter.SnapshotExporter
	manager   *files.Manager
	metrics   *infrastructure.PipelineMetrics
	tracer    trace.Tracer
}

// NewCorrectionService wires the correction workflow from configuration.
func NewCorrectionService(cfg *config.Config, paths *config.Paths, logger *slog.Logger, metrics *infrastructure.PipelineMetrics) *CorrectionService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("CorrectionService initialized with paths",
		slog.String("uploads_dir", paths.UploadsDir),
		slog.String("output_dir", paths.OutputDir))

	return &CorrectionService{
		cfg:       cfg,
		paths:     paths,
		logger:    logger,
		pipeline:  dataprocessing.NewPipeline(logger, cfg.Pipeline),
		validator: validation.NewFileValidator(logger, cfg.Server.MaxUploadBytes),
		snapshots: exporter.NewSnapshotExporter(logger, paths, domain.ArtifactFormat(cfg.Pipeline.SnapshotFormat)),
		manager:   files.NewManager(paths),
		metrics:   metrics,
		tracer:    otel.Tracer(TracerName),
	}
}

// ProcessUpload stores uploaded dataset content under the uploads
// directory and processes the stored file.
func (s *CorrectionService) ProcessUpload(ctx context.Context, name string, content io.Reader) (*domain.CorrectionResult, error) {
	ctx, span := s.tracer.Start(ctx, "correction.process_upload",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("upload.name", name)))
	defer span.End()

	if err := s.validator.ValidateUploadName(name); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	path, err := s.manager.SaveUpload(name, content)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return s.ProcessFile(ctx, path)
}

// ProcessFile validates and parses a dataset file, then processes it.
func (s *CorrectionService) ProcessFile(ctx context.Context, path string) (*domain.CorrectionResult, error) {
	ctx, span := s.tracer.Start(ctx, "correction.process_file",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("input.path", path)))
	defer span.End()

	if err := s.validator.ValidateInputFile(path); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	ds, err := dataprocessing.ParseFile(path)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return s.Process(ctx, ds)
}

// Process runs the pipeline over a parsed dataset, computes descriptive
// statistics, and exports the snapshot pair. The returned result is the
// complete envelope for one run.
func (s *CorrectionService) Process(ctx context.Context, ds domain.Dataset) (*domain.CorrectionResult, error) {
	runID := uuid.New().String()
	start := time.Now()

	ctx, span := s.tracer.Start(ctx, "correction.process",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("input.source", ds.Source),
			attribute.Int("input.rows", len(ds.Rows)),
		))
	defer span.End()

	result, err := s.pipeline.Run(ctx, ds)
	if err != nil {
		s.observeFailure(span, start, err)
		return nil, err
	}

	stats, err := dataprocessing.ComputeStats(result.TableB)
	if err != nil {
		s.observeFailure(span, start, err)
		return nil, err
	}

	artifacts, err := s.snapshots.Export(ctx, ds.ExtraColumns, result)
	if err != nil {
		s.observeFailure(span, start, err)
		return nil, err
	}

	anomalies := 0
	for _, row := range result.TableA {
		if row.IsAnomaly {
			anomalies++
		}
	}

	if s.metrics != nil {
		s.metrics.ObserveRun("success", time.Since(start).Seconds())
		s.metrics.ObserveTables(len(result.TableA), anomalies, result.Summary.CappedPct)
	}
	span.SetAttributes(
		attribute.Int("run.anomalies", anomalies),
		attribute.Float64("run.capped_pct", result.Summary.CappedPct),
	)

	s.logger.InfoContext(ctx, "correction run completed",
		slog.String("run_id", runID),
		slog.String("source", ds.Source),
		slog.Int("rows", len(result.TableA)),
		slog.Int("anomalies", anomalies),
		slog.Float64("avg_error", result.Summary.AvgError),
		slog.Float64("capped_pct", result.Summary.CappedPct),
		slog.Duration("elapsed", time.Since(start)))

	return &domain.CorrectionResult{
		RunID:       runID,
		ProcessedAt: start.UTC(),
		RowCount:    len(result.TableA),
		TableA:      result.TableA,
		TableB:      result.TableB,
		Summary:     result.Summary,
		Stats:       stats,
		Artifacts:   artifacts,
	}, nil
}

// ListSnapshots returns the exported snapshot files, newest first.
func (s *CorrectionService) ListSnapshots(ctx context.Context) ([]files.SnapshotInfo, error) {
	_, span := s.tracer.Start(ctx, "correction.list_snapshots")
	defer span.End()

	return s.manager.ListSnapshots()
}

// ResolveSnapshot maps a snapshot name to its on-disk path.
func (s *CorrectionService) ResolveSnapshot(ctx context.Context, name string) (string, error) {
	_, span := s.tracer.Start(ctx, "correction.resolve_snapshot",
		trace.WithAttributes(attribute.String("snapshot.name", name)))
	defer span.End()

	path, err := s.manager.ResolveSnapshot(name)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return path, nil
}

func (s *CorrectionService) observeFailure(span trace.Span, start time.Time, err error) {
	span.SetStatus(codes.Error, err.Error())
	if s.metrics != nil {
		s.metrics.ObserveRun("error", time.Since(start).Seconds())
	}
}
