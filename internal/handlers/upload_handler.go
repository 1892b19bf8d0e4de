package handlers

import (
	"time"

	"library-backend/internal/services"
	"library-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// UploadHandler hands out presigned URLs so staff can upload book covers
// straight to object storage.
type UploadHandler struct {
	storage services.ObjectStorage
	prefix  string
	expiry  time.Duration
	logger  *logrus.Logger
}

func NewUploadHandler(storage services.ObjectStorage, prefix string, expiry time.Duration, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{
		storage: storage,
		prefix:  prefix,
		expiry:  expiry,
		logger:  logger,
	}
}

// GetPresignedURL godoc
// @Summary Get presigned URL for a book cover upload
// @Description Generate a presigned PUT URL under the covers prefix. The public URL goes into the book's cover field.
// @Tags upload
// @Produce json
// @Security BearerAuth
// @Param filename query string true "Filename"
// @Success 200 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 403 {object} utils.StandardResponse
// @Failure 500 {object} utils.StandardResponse
// @Router /upload/presign [get]
func (h *UploadHandler) GetPresignedURL(c *fiber.Ctx) error {
	filename := c.Query("filename")
	if filename == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "filename is required")
	}
	if h.storage == nil {
		return respondError(c, h.logger, services.ErrStorageDisabled, "File storage is not available")
	}

	presignedURL, publicURL, err := h.storage.GeneratePresignedURL(c.UserContext(), h.prefix, filename, h.expiry)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to generate presigned URL")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Presigned URL generated successfully", fiber.Map{
		"presigned_url": presignedURL,
		"public_url":    publicURL,
		"expires_in":    int(h.expiry.Seconds()),
	})
}
