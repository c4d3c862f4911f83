package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"goiashop-bff/internal/domains/media"
	"goiashop-bff/internal/domains/media/service"
	"goiashop-bff/internal/gateway"
	"goiashop-bff/internal/shared/response"
)

// =====================================================
// PRODUCT IMAGE HANDLER
// =====================================================

type ImageHandler struct {
	gallery *service.Gallery
}

func NewImageHandler(gallery *service.Gallery) *ImageHandler {
	return &ImageHandler{gallery: gallery}
}

// List godoc: GET /backoffice/products/:id/images
func (h *ImageHandler) List(c *gin.Context) {
	items, err := h.gallery.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromGatewayError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// Upload godoc: POST /backoffice/products/:id/images
//
// Multipart form, field "images", up to five files. The whole selection
// is validated before any upload starts; one aggregated message covers
// every rejected file.
func (h *ImageHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "Invalid multipart form")
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		response.BadRequest(c, "No files in the 'images' field")
		return
	}

	uploads := make([]media.Upload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			response.BadRequest(c, "Could not read uploaded file "+fh.Filename)
			return
		}
		// One byte past the limit is enough for validation to reject the
		// file; the rest of an oversized body is never buffered.
		data, err := io.ReadAll(io.LimitReader(f, media.MaxImageSize+1))
		f.Close()
		if err != nil {
			response.BadRequest(c, "Could not read uploaded file "+fh.Filename)
			return
		}
		uploads = append(uploads, media.Upload{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        int64(len(data)),
			Data:        data,
		})
	}

	items, err := h.gallery.Upload(c.Request.Context(), c.Param("id"), uploads)
	if err != nil {
		status, message, code := gateway.MapErrorToHTTP(err)
		response.ErrorWithDetails(c, status, code, message, gin.H{"items": items})
		return
	}
	response.Success(c, http.StatusCreated, items)
}

// Remove godoc: DELETE /backoffice/products/:id/images/:imageId
func (h *ImageHandler) Remove(c *gin.Context) {
	items, err := h.gallery.Remove(c.Request.Context(), c.Param("id"), c.Param("imageId"))
	if err != nil {
		status, message, code := gateway.MapErrorToHTTP(err)
		response.ErrorWithDetails(c, status, code, message, gin.H{"items": items})
		return
	}
	response.Success(c, http.StatusOK, items)
}

// SetPrincipal godoc: PUT /backoffice/products/:id/images/:imageId/principal
func (h *ImageHandler) SetPrincipal(c *gin.Context) {
	items, err := h.gallery.SetPrincipal(c.Request.Context(), c.Param("id"), c.Param("imageId"))
	if err != nil {
		status, message, code := gateway.MapErrorToHTTP(err)
		response.ErrorWithDetails(c, status, code, message, gin.H{"items": items})
		return
	}
	response.Success(c, http.StatusOK, items)
}

type moveRequest struct {
	Index int `json:"index"`
}

// Move godoc: PUT /backoffice/products/:id/images/:imageId/position
func (h *ImageHandler) Move(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items, err := h.gallery.Move(c.Request.Context(), c.Param("id"), c.Param("imageId"), req.Index)
	if err != nil {
		status, message, code := gateway.MapErrorToHTTP(err)
		response.ErrorWithDetails(c, status, code, message, gin.H{"items": items})
		return
	}
	response.Success(c, http.StatusOK, items)
}
