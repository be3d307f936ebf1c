package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/Endio1/LAB-App-1/internal/errors"
	"github.com/Endio1/LAB-App-1/internal/files"
	"github.com/Endio1/LAB-App-1/pkg/contracts/domain"
)

type mockCorrectionService struct {
	processUpload   func(ctx context.Context, name string, content io.Reader) (*domain.CorrectionResult, error)
	listSnapshots   func(ctx context.Context) ([]files.SnapshotInfo, error)
	resolveSnapshot func(ctx context.Context, name string) (string, error)
}

func (m *mockCorrectionService) ProcessUpload(ctx context.Context, name string, content io.Reader) (*domain.CorrectionResult, error) {
	return m.processUpload(ctx, name, content)
}

func (m *mockCorrectionService) ListSnapshots(ctx context.Context) ([]files.SnapshotInfo, error) {
	return m.listSnapshots(ctx)
}

func (m *mockCorrectionService) ResolveSnapshot(ctx context.Context, name string) (string, error) {
	return m.resolveSnapshot(ctx, name)
}

func testHandler(svc CorrectionServiceInterface) *CorrectionHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCorrectionHandler(svc, logger, apierrors.NewErrorHandler(logger, false), 1<<20)
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestCreateCorrection(t *testing.T) {
	var gotName string
	svc := &mockCorrectionService{
		processUpload: func(_ context.Context, name string, content io.Reader) (*domain.CorrectionResult, error) {
			gotName = name
			data, err := io.ReadAll(content)
			require.NoError(t, err)
			assert.Contains(t, string(data), "ace_before")
			return &domain.CorrectionResult{
				RunID:    "run-1",
				RowCount: 3,
				Summary:  domain.ErrorSummary{AvgError: 1, AvgErrorPct: 12, TotalError: 3, CappedPct: 5},
			}, nil
		},
	}

	body, contentType := multipartBody(t, "file", "signals.csv",
		"timestamp,ace_before,ace_after\n2024-03-01,10,12\n")
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	testHandler(svc).Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "signals.csv", gotName)

	var result domain.CorrectionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "run-1", result.RunID)
	assert.Equal(t, 5.0, result.Summary.CappedPct)
}

func TestCreateCorrectionMissingField(t *testing.T) {
	svc := &mockCorrectionService{}

	body, contentType := multipartBody(t, "upload", "signals.csv", "x")
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	testHandler(svc).Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, apierrors.TypeValidation, problem["type"])
}

func TestCreateCorrectionEmptyDataset(t *testing.T) {
	svc := &mockCorrectionService{
		processUpload: func(context.Context, string, io.Reader) (*domain.CorrectionResult, error) {
			return nil, apierrors.NewEmptyInputError()
		},
	}

	body, contentType := multipartBody(t, "file", "empty.csv", "timestamp,ace_before,ace_after\n")
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	testHandler(svc).Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, apierrors.TypeEmptyInput, problem["type"])
}

func TestCreateCorrectionSchemaErrorNamesRowAndColumn(t *testing.T) {
	svc := &mockCorrectionService{
		processUpload: func(context.Context, string, io.Reader) (*domain.CorrectionResult, error) {
			return nil, apierrors.NewSchemaError("row 2: ace_after \"offline\" is not numeric", 2, "ace_after")
		},
	}

	body, contentType := multipartBody(t, "file", "signals.csv", "data")
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	testHandler(svc).Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, apierrors.TypeSchema, problem["type"])
	assert.Equal(t, float64(2), problem["row"])
	assert.Equal(t, "ace_after", problem["column"])
}

func TestListSnapshots(t *testing.T) {
	svc := &mockCorrectionService{
		listSnapshots: func(context.Context) ([]files.SnapshotInfo, error) {
			return []files.SnapshotInfo{
				{Name: "table1_raw_20240301_120000.csv", Table: domain.TableRaw, Size: 120, ModTime: time.Now()},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/snapshots", nil)
	rec := httptest.NewRecorder()
	testHandler(svc).Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["count"])
}

func TestDownloadSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table1_raw_20240301_120000.csv")
	require.NoError(t, os.WriteFile(path, []byte("timestamp,ace_before,ace_after\n"), 0644))

	svc := &mockCorrectionService{
		resolveSnapshot: func(_ context.Context, name string) (string, error) {
			assert.Equal(t, "table1_raw_20240301_120000.csv", name)
			return path, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/snapshots/table1_raw_20240301_120000.csv", nil)
	rec := httptest.NewRecorder()
	testHandler(svc).Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "table1_raw_20240301_120000.csv")
	assert.Contains(t, rec.Body.String(), "ace_before")
}

func TestDownloadSnapshotNotFound(t *testing.T) {
	svc := &mockCorrectionService{
		resolveSnapshot: func(_ context.Context, name string) (string, error) {
			return "", apierrors.NewNotFoundError("snapshot " + name)
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/snapshots/missing.csv", nil)
	rec := httptest.NewRecorder()
	testHandler(svc).Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
