package http

import (
	"context"
	"io"

	"github.com/Endio1/LAB-App-1/internal/files"
	"github.com/Endio1/LAB-App-1/pkg/contracts/domain"
)

// CorrectionServiceInterface defines the service operations the
// correction handler depends on.
type CorrectionServiceInterface interface {
	ProcessUpload(ctx context.Context, name string, content io.Reader) (*domain.CorrectionResult, error)
	ListSnapshots(ctx context.Context) ([]files.SnapshotInfo, error)
	ResolveSnapshot(ctx context.Context, name string) (string, error)
}
