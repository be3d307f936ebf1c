package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Endio1/LAB-App-1/internal/config"
	"github.com/Endio1/LAB-App-1/internal/errors"
	"github.com/Endio1/LAB-App-1/internal/infrastructure"
	"github.com/Endio1/LAB-App-1/pkg/contracts/domain"
)

func testService(t *testing.T) *CorrectionService {
	t.Helper()

	cfg := config.Default()
	cfg.Paths.BaseDir = t.TempDir()
	cfg.Pipeline.SnapshotFormat = "csv"

	paths, err := config.NewPaths(cfg.Paths)
	require.NoError(t, err)
	require.NoError(t, paths.EnsureDirectories())

	return NewCorrectionService(cfg, paths, nil, infrastructure.NewPipelineMetrics())
}

func sampleDataset() domain.Dataset {
	return domain.Dataset{
		Rows: []domain.SignalReading{
			{Timestamp: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Before: 10, After: 10},
			{Timestamp: time.Date(2024, 3, 1, 1, 0, 0, 0, time.UTC), Before: 10, After: 12},
			{Timestamp: time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC), Before: 5, After: 4},
		},
		Source: "sample",
	}
}

func TestProcess(t *testing.T) {
	svc := testService(t)

	result, err := svc.Process(context.Background(), sampleDataset())
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.False(t, result.ProcessedAt.IsZero())
	assert.Equal(t, 3, result.RowCount)
	require.Len(t, result.TableA, 3)
	require.Len(t, result.TableB, 3)

	assert.Equal(t, 1.0, result.Summary.AvgError)
	assert.Equal(t, 12.0, result.Summary.AvgErrorPct)
	assert.Equal(t, 5.0, result.Summary.CappedPct)

	assert.Equal(t, 10.0, result.TableB[0].Estimated)
	assert.Equal(t, 10.5, result.TableB[1].Estimated)
	assert.Equal(t, 5.25, result.TableB[2].Estimated)

	require.NotNil(t, result.Stats)
	assert.Equal(t, []string{"ace_before", "ace_after", "estimated"}, result.Stats.Labels)

	require.Len(t, result.Artifacts, 2)
	for _, artifact := range result.Artifacts {
		info, err := os.Stat(artifact.Path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestProcessDistinctRunIDs(t *testing.T) {
	svc := testService(t)

	first, err := svc.Process(context.Background(), sampleDataset())
	require.NoError(t, err)
	second, err := svc.Process(context.Background(), sampleDataset())
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, first.Summary, second.Summary)
}

func TestProcessEmptyDataset(t *testing.T) {
	svc := testService(t)

	_, err := svc.Process(context.Background(), domain.Dataset{})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeEmptyInput))
}

func TestProcessFile(t *testing.T) {
	svc := testService(t)

	content := strings.Join([]string{
		"timestamp,ace_before,ace_after",
		"2024-03-01 00:00:00,10,10",
		"2024-03-01 01:00:00,10,12",
		"2024-03-01 02:00:00,5,4",
	}, "\n")
	path := filepath.Join(t.TempDir(), "signals.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	result, err := svc.ProcessFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 3, result.RowCount)
	assert.Equal(t, 5.0, result.Summary.CappedPct)
}

func TestProcessFileMissing(t *testing.T) {
	svc := testService(t)

	_, err := svc.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeValidation))
}

func TestListAndResolveSnapshots(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	result, err := svc.Process(ctx, sampleDataset())
	require.NoError(t, err)

	snapshots, err := svc.ListSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, snapshots, 2)

	path, err := svc.ResolveSnapshot(ctx, result.Artifacts[0].Name)
	require.NoError(t, err)
	assert.Equal(t, result.Artifacts[0].Path, path)

	_, err = svc.ResolveSnapshot(ctx, "table1_raw_19700101_000000.csv")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeNotFound))
}
