package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/Endio1/LAB-App-1/internal/config"
	apierrors "github.com/Endio1/LAB-App-1/internal/errors"
)

// CorrectionHandler handles correction HTTP requests with RFC 7807
// error responses.
type CorrectionHandler struct {
	service        CorrectionServiceInterface
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
	maxUploadBytes int64
}

// NewCorrectionHandler creates a new correction handler
func NewCorrectionHandler(service CorrectionServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, maxUploadBytes int64) *CorrectionHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = config.MaxUploadBytes
	}
	return &CorrectionHandler{
		service:        service,
		logger:         logger.With(slog.String("component", "correction_handler")),
		errorHandler:   errorHandler,
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns the correction routes
func (h *CorrectionHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateCorrection)
	r.Get("/snapshots", h.ListSnapshots)
	r.Get("/snapshots/{filename}", h.DownloadSnapshot)

	return r
}

// CreateCorrection handles POST /api/corrections. The dataset comes in
// as a multipart upload under the "file" field; the response carries
// both tables, the summary, descriptive statistics, and the written
// snapshot artifacts.
func (h *CorrectionHandler) CreateCorrection(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		h.logger.WarnContext(r.Context(), "rejected oversized or malformed upload",
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, apierrors.NewValidationError(
			"request body must be a multipart form within the upload size limit"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(config.UploadFormField)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewValidationError(
			"missing multipart field \""+config.UploadFormField+"\""))
		return
	}
	defer file.Close()

	h.logger.InfoContext(r.Context(), "processing uploaded dataset",
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size))

	result, err := h.service.ProcessUpload(r.Context(), header.Filename, file)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "correction run failed",
			slog.String("filename", header.Filename),
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, result)
}

// ListSnapshots handles GET /api/corrections/snapshots
func (h *CorrectionHandler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.service.ListSnapshots(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list snapshots",
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"snapshots": snapshots,
		"count":     len(snapshots),
	})
}

// DownloadSnapshot handles GET /api/corrections/snapshots/{filename}
func (h *CorrectionHandler) DownloadSnapshot(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if filename == "" {
		h.errorHandler.HandleError(w, r, apierrors.NewValidationError("snapshot filename is required"))
		return
	}

	path, err := h.service.ResolveSnapshot(r.Context(), filename)
	if err != nil {
		h.logger.WarnContext(r.Context(), "snapshot download refused",
			slog.String("filename", filename),
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename=\""+filename+"\"")
	http.ServeFile(w, r, path)
}
