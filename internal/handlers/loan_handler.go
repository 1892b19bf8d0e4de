package handlers

import (
	"time"

	"library-backend/internal/forms"
	"library-backend/internal/middleware"
	"library-backend/internal/services"
	"library-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type LoanHandler struct {
	service services.LoanService
	logger  *logrus.Logger
	now     func() time.Time
}

func NewLoanHandler(service services.LoanService, logger *logrus.Logger) *LoanHandler {
	return &LoanHandler{
		service: service,
		logger:  logger,
		now:     time.Now,
	}
}

// GetMyBooks godoc
// @Summary Books on loan to the current user
// @Description Copies with status "taken" ordered by due date, ten per page
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param page query string false "Page number" default(1)
// @Success 200 {object} utils.StandardResponse{data=[]BookInstanceResponse,meta=utils.PaginationMeta}
// @Failure 401 {object} utils.StandardResponse
// @Failure 403 {object} utils.StandardResponse
// @Router /mybooks [get]
func (h *LoanHandler) GetMyBooks(c *fiber.Ctx) error {
	instances, page, err := h.service.ListLoanedBooks(c.UserContext(), middleware.CurrentUser(c), c.Query("page"))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve loaned books")
	}
	return utils.PageResponse(c, "Loaned books retrieved successfully", newBookInstanceResponses(instances, h.now()), page)
}

// GetMyBook godoc
// @Summary Loaned copy by ID
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book instance UUID"
// @Success 200 {object} utils.StandardResponse{data=BookInstanceResponse}
// @Failure 404 {object} utils.StandardResponse
// @Router /mybooks/{id} [get]
func (h *LoanHandler) GetMyBook(c *fiber.Ctx) error {
	id, ok := uuidParam(c, "id")
	if !ok {
		return notFoundResponse(c)
	}

	instance, err := h.service.GetLoanedBook(c.UserContext(), middleware.CurrentUser(c), id)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve book instance")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Book instance retrieved successfully", newBookInstanceResponse(instance, h.now()))
}

// NewBookInstanceForm godoc
// @Summary Book instance form choices
// @Description The available loan statuses for creating a copy
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.StandardResponse{data=[]forms.StatusChoice}
// @Failure 403 {object} utils.StandardResponse
// @Router /book-instances/new [get]
func (h *LoanHandler) NewBookInstanceForm(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.StatusOK, "Book instance form", fiber.Map{
		"status_choices": forms.StatusChoices(),
	})
}

// CreateBookInstance godoc
// @Summary Add a copy of a book
// @Tags loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param instance body forms.BookInstanceForm true "Book instance"
// @Success 201 {object} utils.StandardResponse{data=BookInstanceResponse}
// @Failure 403 {object} utils.StandardResponse
// @Failure 422 {object} utils.StandardResponse
// @Router /book-instances [post]
func (h *LoanHandler) CreateBookInstance(c *fiber.Ctx) error {
	var form forms.BookInstanceForm
	if err := c.BodyParser(&form); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	instance, err := h.service.CreateBookInstance(c.UserContext(), form)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create book instance")
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "Book instance created successfully", newBookInstanceResponse(instance, h.now()))
}

// UpdateBookInstance godoc
// @Summary Edit a copy of a book
// @Tags loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book instance UUID"
// @Param instance body forms.BookInstanceForm true "Book instance"
// @Success 200 {object} utils.StandardResponse{data=BookInstanceResponse}
// @Failure 403 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Failure 422 {object} utils.StandardResponse
// @Router /book-instances/{id} [put]
func (h *LoanHandler) UpdateBookInstance(c *fiber.Ctx) error {
	id, ok := uuidParam(c, "id")
	if !ok {
		return notFoundResponse(c)
	}

	var form forms.BookInstanceForm
	if err := c.BodyParser(&form); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	instance, err := h.service.UpdateBookInstance(c.UserContext(), id, form)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update book instance")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Book instance updated successfully", newBookInstanceResponse(instance, h.now()))
}
