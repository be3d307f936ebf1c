package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Endio1/LAB-App-1/internal/errors"
)

// FileValidator checks input files before they reach the parser
type FileValidator struct {
	logger   *slog.Logger
	maxBytes int64
}

// NewFileValidator creates a new file validator. maxBytes of zero
// disables the size check.
func NewFileValidator(logger *slog.Logger, maxBytes int64) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger:   logger,
		maxBytes: maxBytes,
	}
}

// ValidateInputFile checks that a dataset file exists, is readable, has
// a supported extension and is within the size limit.
func (v *FileValidator) ValidateInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("Input file does not exist",
			slog.String("file", path))
		return errors.NewValidationError(fmt.Sprintf("input file %s does not exist", path))
	}
	if err != nil {
		v.logger.Error("Failed to stat input file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return errors.NewStorageError(fmt.Sprintf("failed to stat file %s", path), err)
	}
	if info.IsDir() {
		v.logger.Error("Input path is a directory, not a file",
			slog.String("path", path))
		return errors.NewValidationError(fmt.Sprintf("%s is a directory, not a file", path))
	}

	if err := v.validateExtension(path); err != nil {
		return err
	}

	if v.maxBytes > 0 && info.Size() > v.maxBytes {
		v.logger.Error("Input file exceeds size limit",
			slog.String("file", path),
			slog.Int64("size", info.Size()),
			slog.Int64("limit", v.maxBytes))
		return errors.NewValidationError(
			fmt.Sprintf("input file %s is %d bytes, exceeding the %d byte limit", path, info.Size(), v.maxBytes))
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("Input file is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return errors.NewStorageError(fmt.Sprintf("file %s is not readable", path), err)
	}
	file.Close()

	v.logger.Debug("Input file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateUploadName checks a file name supplied by an HTTP upload,
// where only the name is known before the content is stored.
func (v *FileValidator) ValidateUploadName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.NewValidationError("upload file name is empty")
	}
	if base := filepath.Base(name); strings.HasPrefix(base, "~$") {
		v.logger.Warn("Rejecting temporary spreadsheet file",
			slog.String("file", name))
		return errors.NewValidationError(fmt.Sprintf("file %s is a temporary spreadsheet file", name))
	}
	return v.validateExtension(name)
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return errors.NewStorageError(fmt.Sprintf("failed to create output directory %s", dir), err)
	}

	// Verify it's writable by creating a test file
	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return errors.NewStorageError(fmt.Sprintf("output directory %s is not writable", dir), err)
	}
	file.Close()
	os.Remove(testFile)

	return nil
}

func (v *FileValidator) validateExtension(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".xlsx" && ext != ".csv" {
		v.logger.Error("Unsupported input file type",
			slog.String("file", path),
			slog.String("extension", ext))
		return errors.NewValidationError(
			fmt.Sprintf("file %s has unsupported type %q: expected .xlsx or .csv", path, ext))
	}
	return nil
}
