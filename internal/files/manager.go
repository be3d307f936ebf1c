package files

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Endio1/LAB-App-1/internal/config"
	"github.com/Endio1/LAB-App-1/internal/errors"
	"github.com/Endio1/LAB-App-1/pkg/contracts/domain"
)

// SnapshotInfo describes one exported snapshot file on disk
type SnapshotInfo struct {
	Name    string    `json:"name"`
	Table   string    `json:"table"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Manager provides file management operations over the managed
// application directories.
type Manager struct {
	paths *config.Paths
}

// NewManager creates a new file manager instance
func NewManager(paths *config.Paths) *Manager {
	return &Manager{paths: paths}
}

// EnsureDirectories creates the managed directories if missing
func (m *Manager) EnsureDirectories() error {
	return m.paths.EnsureDirectories()
}

// FileExists checks if a file exists in the output directory
func (m *Manager) FileExists(name string) bool {
	fullPath := m.paths.OutputPath(name)
	_, err := os.Stat(fullPath)
	exists := err == nil

	slog.Debug("FileExists check",
		slog.String("name", name),
		slog.String("full_path", fullPath),
		slog.Bool("exists", exists))

	return exists
}

// SaveUpload copies uploaded content into the uploads directory under a
// sanitized file name and returns the stored path.
func (m *Manager) SaveUpload(name string, r io.Reader) (string, error) {
	safe := filepath.Base(filepath.Clean(name))
	if safe == "." || safe == ".." || safe == string(filepath.Separator) || safe == "" {
		return "", errors.NewValidationError(fmt.Sprintf("invalid upload file name %q", name))
	}

	if err := os.MkdirAll(m.paths.UploadsDir, 0755); err != nil {
		return "", errors.NewStorageError("failed to create uploads directory", err)
	}

	dstPath := m.paths.UploadPath(safe)
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", errors.NewStorageError("failed to create upload file", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, r)
	if err != nil {
		return "", errors.NewStorageError("failed to write upload content", err)
	}
	if err := dst.Sync(); err != nil {
		return "", errors.NewStorageError("failed to sync upload file", err)
	}

	slog.Info("Upload stored",
		slog.String("name", safe),
		slog.String("path", dstPath),
		slog.Int64("bytes", written))

	return dstPath, nil
}

// ListSnapshots scans the output directory for exported snapshot files,
// newest first.
func (m *Manager) ListSnapshots() ([]SnapshotInfo, error) {
	entries, err := os.ReadDir(m.paths.OutputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewStorageError(
			fmt.Sprintf("failed to read output directory %s", m.paths.OutputDir), err)
	}

	var snapshots []SnapshotInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		table, ok := snapshotTable(entry.Name())
		if !ok {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		snapshots = append(snapshots, SnapshotInfo{
			Name:    entry.Name(),
			Table:   table,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(snapshots, func(i, j int) bool {
		if !snapshots[i].ModTime.Equal(snapshots[j].ModTime) {
			return snapshots[i].ModTime.After(snapshots[j].ModTime)
		}
		return snapshots[i].Name < snapshots[j].Name
	})

	return snapshots, nil
}

// ResolveSnapshot maps a snapshot file name to its on-disk path,
// rejecting anything that is not a plain snapshot file name so a
// crafted name cannot escape the output directory.
func (m *Manager) ResolveSnapshot(name string) (string, error) {
	if name != filepath.Base(filepath.Clean(name)) || strings.ContainsAny(name, `/\`) {
		return "", errors.NewValidationError(fmt.Sprintf("invalid snapshot name %q", name))
	}
	if _, ok := snapshotTable(name); !ok {
		return "", errors.NewNotFoundError(fmt.Sprintf("snapshot %q", name))
	}

	fullPath := m.paths.OutputPath(name)
	if _, err := os.Stat(fullPath); err != nil {
		return "", errors.NewNotFoundError(fmt.Sprintf("snapshot %q", name))
	}
	return fullPath, nil
}

// DeleteFile removes a file from the output directory
func (m *Manager) DeleteFile(name string) error {
	fullPath, err := m.ResolveSnapshot(name)
	if err != nil {
		return err
	}

	slog.Info("Deleting file", slog.String("path", fullPath))
	if err := os.Remove(fullPath); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to delete %s", name), err)
	}
	return nil
}

// snapshotTable maps a snapshot file name to its table identifier.
func snapshotTable(name string) (string, bool) {
	lower := strings.ToLower(name)
	if !strings.HasSuffix(lower, ".csv") && !strings.HasSuffix(lower, ".xlsx") {
		return "", false
	}
	switch {
	case strings.HasPrefix(name, config.SnapshotRawPrefix):
		return domain.TableRaw, true
	case strings.HasPrefix(name, config.SnapshotCorrectedPrefix):
		return domain.TableCorrected, true
	default:
		return "", false
	}
}
