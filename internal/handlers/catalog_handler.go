package handlers

import (
	"library-backend/internal/forms"
	"library-backend/internal/middleware"
	"library-backend/internal/services"
	"library-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/sirupsen/logrus"
)

const visitsKey = "num_visits"

type CatalogHandler struct {
	service  services.CatalogService
	sessions *session.Store
	logger   *logrus.Logger
}

func NewCatalogHandler(service services.CatalogService, sessions *session.Store, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		service:  service,
		sessions: sessions,
		logger:   logger,
	}
}

// Index godoc
// @Summary Library home page
// @Description Catalogue counters plus the number of times this session has opened the home page
// @Tags catalog
// @Produce json
// @Success 200 {object} utils.StandardResponse{data=models.LibraryStats}
// @Router / [get]
func (h *CatalogHandler) Index(c *fiber.Ctx) error {
	stats, err := h.service.GetStats(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve library statistics")
	}

	visits, err := h.countVisit(c)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to update visit counter")
	}
	stats.NumVisits = visits

	return utils.SuccessResponse(c, fiber.StatusOK, "Library statistics retrieved successfully", stats)
}

// countVisit increments the session's visit counter and returns it, so the
// first visit reports 1.
func (h *CatalogHandler) countVisit(c *fiber.Ctx) (int, error) {
	sess, err := h.sessions.Get(c)
	if err != nil {
		return 0, err
	}

	visits, _ := sess.Get(visitsKey).(int)
	visits++
	sess.Set(visitsKey, visits)
	return visits, sess.Save()
}

// GetAuthors godoc
// @Summary List authors
// @Description Authors ordered by last name, two per page. Out of range pages resolve to the last page.
// @Tags catalog
// @Produce json
// @Param page query string false "Page number" default(1)
// @Success 200 {object} utils.StandardResponse{data=[]AuthorSummary,meta=utils.PaginationMeta}
// @Router /authors [get]
func (h *CatalogHandler) GetAuthors(c *fiber.Ctx) error {
	authors, page, err := h.service.ListAuthors(c.UserContext(), c.Query("page"))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve authors")
	}
	return utils.PageResponse(c, "Authors retrieved successfully", newAuthorSummaries(authors), page)
}

// GetAuthor godoc
// @Summary Get author by ID
// @Tags catalog
// @Produce json
// @Param id path int true "Author ID"
// @Success 200 {object} utils.StandardResponse{data=AuthorDetail}
// @Failure 404 {object} utils.StandardResponse
// @Router /authors/{id} [get]
func (h *CatalogHandler) GetAuthor(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return notFoundResponse(c)
	}

	author, err := h.service.GetAuthor(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve author")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Author retrieved successfully", newAuthorDetail(author))
}

// CreateAuthor godoc
// @Summary Add an author
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param author body forms.AuthorForm true "Author"
// @Success 201 {object} utils.StandardResponse{data=AuthorSummary}
// @Failure 403 {object} utils.StandardResponse
// @Failure 422 {object} utils.StandardResponse
// @Router /authors [post]
func (h *CatalogHandler) CreateAuthor(c *fiber.Ctx) error {
	var form forms.AuthorForm
	if err := c.BodyParser(&form); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	author, err := h.service.CreateAuthor(c.UserContext(), form)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create author")
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "Author created successfully", newAuthorSummary(author))
}

// GetBooks godoc
// @Summary List books
// @Description Books with author and genres, two per page
// @Tags catalog
// @Produce json
// @Param page query string false "Page number" default(1)
// @Success 200 {object} utils.StandardResponse{data=[]BookSummary,meta=utils.PaginationMeta}
// @Router /books [get]
func (h *CatalogHandler) GetBooks(c *fiber.Ctx) error {
	books, page, err := h.service.ListBooks(c.UserContext(), c.Query("page"))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve books")
	}
	return utils.PageResponse(c, "Books retrieved successfully", newBookSummaries(books), page)
}

// GetBook godoc
// @Summary Get book by ID
// @Description A book with its genres and reviews, newest review first
// @Tags catalog
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} utils.StandardResponse{data=BookDetail}
// @Failure 404 {object} utils.StandardResponse
// @Router /books/{id} [get]
func (h *CatalogHandler) GetBook(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return notFoundResponse(c)
	}

	book, err := h.service.GetBook(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve book")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Book retrieved successfully", newBookDetail(book))
}

// CreateBook godoc
// @Summary Add a book
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param book body forms.BookForm true "Book"
// @Success 201 {object} utils.StandardResponse{data=BookSummary}
// @Failure 403 {object} utils.StandardResponse
// @Failure 422 {object} utils.StandardResponse
// @Router /books [post]
func (h *CatalogHandler) CreateBook(c *fiber.Ctx) error {
	var form forms.BookForm
	if err := c.BodyParser(&form); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	book, err := h.service.CreateBook(c.UserContext(), form)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create book")
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "Book created successfully", newBookSummary(book))
}

// CreateReview godoc
// @Summary Review a book
// @Description Adds a review by the signed-in user
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Param review body forms.BookReviewForm true "Review"
// @Success 201 {object} utils.StandardResponse{data=ReviewResponse}
// @Failure 401 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Failure 422 {object} utils.StandardResponse
// @Router /books/{id}/reviews [post]
func (h *CatalogHandler) CreateReview(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return notFoundResponse(c)
	}

	var form forms.BookReviewForm
	if err := c.BodyParser(&form); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	review, err := h.service.AddReview(c.UserContext(), id, middleware.CurrentUser(c), form)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to save review")
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "Review added successfully", newReviewResponse(review))
}

// Search godoc
// @Summary Search books
// @Description Case-insensitive substring match on title, summary and author first name. A missing query matches every book.
// @Tags catalog
// @Produce json
// @Param query query string false "Search text"
// @Success 200 {object} utils.StandardResponse{data=SearchResponse}
// @Router /search [get]
func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	query := c.Query("query")

	books, err := h.service.SearchBooks(c.UserContext(), query)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to search books")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Search completed successfully", SearchResponse{
		Query: query,
		Books: newBookSummaries(books),
	})
}

// GetGenres godoc
// @Summary List genres
// @Tags catalog
// @Produce json
// @Success 200 {object} utils.StandardResponse{data=[]models.Genre}
// @Router /genres [get]
func (h *CatalogHandler) GetGenres(c *fiber.Ctx) error {
	genres, err := h.service.ListGenres(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve genres")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Genres retrieved successfully", genres)
}

// CreateGenre godoc
// @Summary Add a genre
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param genre body forms.GenreForm true "Genre"
// @Success 201 {object} utils.StandardResponse{data=models.Genre}
// @Failure 403 {object} utils.StandardResponse
// @Failure 422 {object} utils.StandardResponse
// @Router /genres [post]
func (h *CatalogHandler) CreateGenre(c *fiber.Ctx) error {
	var form forms.GenreForm
	if err := c.BodyParser(&form); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	genre, err := h.service.CreateGenre(c.UserContext(), form)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create genre")
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "Genre created successfully", genre)
}
