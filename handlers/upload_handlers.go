package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vit0-9/imagefetch_api/models"
	"github.com/vit0-9/imagefetch_api/pkg/safefetch"
	"github.com/vit0-9/imagefetch_api/pkg/storage"
)

// ImageDownloader fetches a remote image under the outbound fetch policy.
type ImageDownloader interface {
	Download(ctx context.Context, rawURL string) (*safefetch.Image, error)
}

// UploadStore persists accepted images.
type UploadStore interface {
	CheckScope(scope string) error
	Save(ctx context.Context, scope, ext string, data []byte) (*storage.SavedFile, error)
}

// multipartOverhead leaves room for boundaries and form fields on top of the
// file itself.
const multipartOverhead = 64 << 10

// UploadHandlers serves direct and URL-based image uploads.
type UploadHandlers struct {
	downloader ImageDownloader
	store      UploadStore
	maxBytes   int64
	logger     zerolog.Logger
}

func NewUploadHandlers(downloader ImageDownloader, store UploadStore, maxBytes int64, logger zerolog.Logger) *UploadHandlers {
	return &UploadHandlers{
		downloader: downloader,
		store:      store,
		maxBytes:   maxBytes,
		logger:     logger.With().Str("component", "uploads").Logger(),
	}
}

// ExternalUploadHandler godoc
// @Summary      Import an image from a URL
// @Description  Downloads an image from a public http(s) URL and stores it under the given scope. Private, loopback and internal destinations are refused, including through redirects. The caller must set confirm to true. Failures never disclose why the download was refused.
// @Tags         Uploads
// @Accept       json
// @Produce      json
// @Param        request body models.ExternalUploadRequest true "Image URL, target scope and confirmation"
// @Success      201 {object} models.UploadResponse "Image stored"
// @Failure      400 {object} models.APIErrorResponse "Invalid request, missing confirmation or unknown scope"
// @Failure      422 {object} models.APIErrorResponse "Download failed"
// @Failure      500 {object} models.APIErrorResponse "Storage failure"
// @Router       /uploads/external [post]
func (h *UploadHandlers) ExternalUploadHandler(c *gin.Context) {
	var req models.ExternalUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidRequest, "Invalid request: "+err.Error())
		return
	}

	if req.Confirm == nil || !*req.Confirm {
		respondError(c, http.StatusBadRequest, models.ErrCodeConfirmRequired, "confirm must be true to import an external image")
		return
	}

	if err := h.store.CheckScope(req.Scope); err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidScope, "invalid scope")
		return
	}

	img, err := h.downloader.Download(c.Request.Context(), req.URL)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Str("reason", string(safefetch.ReasonOf(err))).
			Str("url", req.URL).
			Str("scope", req.Scope).
			Str("client_ip", c.ClientIP()).
			Msg("External image download refused")
		respondError(c, http.StatusUnprocessableEntity, models.ErrCodeDownloadFailed, "download failed")
		return
	}

	saved, err := h.store.Save(c.Request.Context(), req.Scope, img.Extension, img.Data)
	if err != nil {
		h.logger.Error().Err(err).Str("scope", req.Scope).Msg("Failed to store imported image")
		respondError(c, http.StatusInternalServerError, models.ErrCodeStorageFailed, "could not store image")
		return
	}

	h.logger.Info().
		Str("scope", req.Scope).
		Str("path", saved.Path).
		Str("source", img.FinalURL).
		Int64("size", saved.Size).
		Msg("External image imported")

	c.PureJSON(http.StatusCreated, models.UploadResponse{
		URL:         models.SafeURLString(saved.URL),
		Path:        saved.Path,
		Scope:       req.Scope,
		ContentType: img.ContentType,
		Extension:   img.Extension,
		Size:        saved.Size,
		SourceURL:   models.SafeURLString(img.FinalURL),
	})
}

// UploadHandler godoc
// @Summary      Upload an image file
// @Description  Stores a multipart image upload under the given scope. The same content rules as URL imports apply: image types only, no SVG, size capped.
// @Tags         Uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        scope formData string true "Target scope"
// @Param        file formData file true "Image file"
// @Success      201 {object} models.UploadResponse "Image stored"
// @Failure      400 {object} models.APIErrorResponse "Invalid request, scope or file"
// @Failure      413 {object} models.APIErrorResponse "File too large"
// @Failure      500 {object} models.APIErrorResponse "Storage failure"
// @Router       /uploads [post]
func (h *UploadHandlers) UploadHandler(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)

	fh, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(c, http.StatusRequestEntityTooLarge, models.ErrCodeInvalidFile, "file too large")
			return
		}
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidRequest, "file form field is required")
		return
	}

	scope := c.PostForm("scope")
	if err := h.store.CheckScope(scope); err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidScope, "invalid scope")
		return
	}
	if fh.Size > h.maxBytes {
		respondError(c, http.StatusRequestEntityTooLarge, models.ErrCodeInvalidFile, "file too large")
		return
	}

	contentType, err := safefetch.CheckContentType(fh.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidFile, "unsupported file type")
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.logger.Error().Err(err).Msg("Could not open uploaded file")
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidFile, "could not read file")
		return
	}
	defer f.Close()

	data, err := safefetch.ReadLimited(f, h.maxBytes)
	if err != nil {
		if safefetch.ReasonOf(err) == safefetch.ReasonTooLarge {
			respondError(c, http.StatusRequestEntityTooLarge, models.ErrCodeInvalidFile, "file too large")
			return
		}
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidFile, "could not read file")
		return
	}
	if err := safefetch.CheckSniffed(data); err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidFile, "unsupported file type")
		return
	}

	ext := safefetch.ExtensionFor(contentType)
	saved, err := h.store.Save(c.Request.Context(), scope, ext, data)
	if err != nil {
		h.logger.Error().Err(err).Str("scope", scope).Msg("Failed to store uploaded image")
		respondError(c, http.StatusInternalServerError, models.ErrCodeStorageFailed, "could not store image")
		return
	}

	c.PureJSON(http.StatusCreated, models.UploadResponse{
		URL:         models.SafeURLString(saved.URL),
		Path:        saved.Path,
		Scope:       scope,
		ContentType: contentType,
		Extension:   ext,
		Size:        saved.Size,
	})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.APIErrorResponse{
		StatusCode: status,
		ErrorCode:  code,
		Message:    message,
	})
}
