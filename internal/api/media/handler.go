package media

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"artist-portfolio/internal/api/respond"
	"artist-portfolio/internal/apperr"
	"artist-portfolio/internal/domain/media"
	"artist-portfolio/internal/remote"
)

type Handler struct {
	blobs  media.BlobStore
	images remote.Images
	log    *zap.Logger
}

func NewHandler(blobs media.BlobStore, images remote.Images, log *zap.Logger) *Handler {
	return &Handler{blobs: blobs, images: images, log: log}
}

// POST /admin/media  (multipart, field "file")
func (h *Handler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, media.MaxImageBytes+1<<20)

	fh, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, apperr.ValidationError("Image file is required", apperr.FieldError{
			Field: "file", Message: "This field is required",
		}))
		return
	}

	f, err := fh.Open()
	if err != nil {
		respond.Error(c, apperr.Internal(err))
		return
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		respond.Error(c, apperr.Internal(err))
		return
	}
	head = head[:n]

	contentType, err := media.ValidateImage(fh.Filename, fh.Header.Get("Content-Type"), fh.Size, head)
	if err != nil {
		respond.Error(c, err)
		return
	}

	body := io.MultiReader(bytes.NewReader(head), f)
	stored, err := h.blobs.Put(c.Request.Context(), fh.Filename, body)
	if err != nil {
		h.log.Error("blob upload failed", zap.String("filename", fh.Filename), zap.Error(err))
		respond.Error(c, apperr.Remote("Failed to upload image", err))
		return
	}

	img, err := h.images.InsertImage(c.Request.Context(), media.Image{
		URL:         stored.URL,
		PublicID:    stored.PublicID,
		ContentType: contentType,
		Bytes:       fh.Size,
		Filename:    fh.Filename,
	})
	if err != nil {
		// keep the blob store in step with the upload log
		if derr := h.blobs.Delete(c.Request.Context(), stored.PublicID); derr != nil {
			h.log.Warn("orphaned blob", zap.String("public_id", stored.PublicID), zap.Error(derr))
		}
		respond.Error(c, remote.Wrap("Failed to upload image", err))
		return
	}

	c.JSON(http.StatusCreated, img)
}

// GET /admin/media
func (h *Handler) List(c *gin.Context) {
	list, err := h.images.SelectImages(c.Request.Context())
	if err != nil {
		respond.Error(c, remote.Wrap("Failed to load images", err))
		return
	}
	c.JSON(http.StatusOK, list)
}
