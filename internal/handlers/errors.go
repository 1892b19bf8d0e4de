package handlers

import (
	"errors"
	"strconv"

	"library-backend/internal/forms"
	"library-backend/internal/services"
	"library-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// respondError maps service errors onto HTTP answers. Anything it does not
// recognise is logged and reported as a 500 with fallback as the message.
func respondError(c *fiber.Ctx, logger *logrus.Logger, err error, fallback string) error {
	var fieldErrors forms.FieldErrors
	switch {
	case errors.As(err, &fieldErrors):
		return utils.ErrorWithDataResponse(c, fiber.StatusUnprocessableEntity, "Please correct the errors below", fieldErrors)
	case errors.Is(err, services.ErrNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrStorageDisabled):
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "File storage is not available")
	}

	logger.WithError(err).WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	}).Error(fallback)
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, fallback)
}

// idParam parses a positive integer path parameter. Malformed ids are
// answered with 404 since no object can carry them.
func idParam(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func uuidParam(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func notFoundResponse(c *fiber.Ctx) error {
	return utils.ErrorResponse(c, fiber.StatusNotFound, "Not found")
}
