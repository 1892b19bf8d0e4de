package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"library-backend/internal/config"
	"library-backend/internal/forms"
	"library-backend/internal/models"
	"library-backend/internal/repository"
	"library-backend/internal/utils"

	"github.com/sirupsen/logrus"
)

type CatalogService interface {
	GetStats(ctx context.Context) (*models.LibraryStats, error)

	ListAuthors(ctx context.Context, rawPage string) ([]models.Author, utils.Page, error)
	GetAuthor(ctx context.Context, id uint) (*models.Author, error)
	CreateAuthor(ctx context.Context, form forms.AuthorForm) (*models.Author, error)

	ListBooks(ctx context.Context, rawPage string) ([]models.Book, utils.Page, error)
	GetBook(ctx context.Context, id uint) (*models.Book, error)
	CreateBook(ctx context.Context, form forms.BookForm) (*models.Book, error)
	SearchBooks(ctx context.Context, query string) ([]models.Book, error)

	AddReview(ctx context.Context, bookID uint, reviewer *models.User, form forms.BookReviewForm) (*models.BookReview, error)

	ListGenres(ctx context.Context) ([]models.Genre, error)
	CreateGenre(ctx context.Context, form forms.GenreForm) (*models.Genre, error)
}

type catalogService struct {
	authors   repository.AuthorRepository
	books     repository.BookRepository
	genres    repository.GenreRepository
	instances repository.BookInstanceRepository
	reviews   repository.ReviewRepository
	config    config.LibraryConfig
	logger    *logrus.Logger
}

func NewCatalogService(
	authors repository.AuthorRepository,
	books repository.BookRepository,
	genres repository.GenreRepository,
	instances repository.BookInstanceRepository,
	reviews repository.ReviewRepository,
	cfg config.LibraryConfig,
	logger *logrus.Logger,
) CatalogService {
	return &catalogService{
		authors:   authors,
		books:     books,
		genres:    genres,
		instances: instances,
		reviews:   reviews,
		config:    cfg,
		logger:    logger,
	}
}

func (s *catalogService) GetStats(ctx context.Context) (*models.LibraryStats, error) {
	var stats models.LibraryStats
	var err error

	if stats.NumBooks, err = s.books.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count books: %w", err)
	}
	if stats.NumInstances, err = s.instances.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count book instances: %w", err)
	}
	if stats.NumInstancesAvailable, err = s.instances.CountByStatus(ctx, models.LoanStatusAvailable); err != nil {
		return nil, fmt.Errorf("failed to count available instances: %w", err)
	}
	if stats.NumAuthors, err = s.authors.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count authors: %w", err)
	}

	return &stats, nil
}

func (s *catalogService) ListAuthors(ctx context.Context, rawPage string) ([]models.Author, utils.Page, error) {
	total, err := s.authors.Count(ctx)
	if err != nil {
		return nil, utils.Page{}, fmt.Errorf("failed to count authors: %w", err)
	}

	page := utils.ResolvePage(rawPage, total, s.config.AuthorsPerPage)
	authors, err := s.authors.FindPage(ctx, page.Offset(), page.Size)
	if err != nil {
		return nil, utils.Page{}, fmt.Errorf("failed to list authors: %w", err)
	}
	return authors, page, nil
}

func (s *catalogService) GetAuthor(ctx context.Context, id uint) (*models.Author, error) {
	author, err := s.authors.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "author %d", id)
	}
	return author, nil
}

func (s *catalogService) CreateAuthor(ctx context.Context, form forms.AuthorForm) (*models.Author, error) {
	if err := forms.Validate(form); err != nil {
		return nil, err
	}

	author := &models.Author{
		FirstName:   strings.TrimSpace(form.FirstName),
		LastName:    strings.TrimSpace(form.LastName),
		Description: form.Description,
	}
	if err := s.authors.Create(ctx, author); err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"author_id": author.ID,
		"author":    author.String(),
	}).Info("Author created")
	return author, nil
}

func (s *catalogService) ListBooks(ctx context.Context, rawPage string) ([]models.Book, utils.Page, error) {
	total, err := s.books.Count(ctx)
	if err != nil {
		return nil, utils.Page{}, fmt.Errorf("failed to count books: %w", err)
	}

	page := utils.ResolvePage(rawPage, total, s.config.BooksPerPage)
	books, err := s.books.FindPage(ctx, page.Offset(), page.Size)
	if err != nil {
		return nil, utils.Page{}, fmt.Errorf("failed to list books: %w", err)
	}
	return books, page, nil
}

func (s *catalogService) GetBook(ctx context.Context, id uint) (*models.Book, error) {
	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "book %d", id)
	}
	return book, nil
}

func (s *catalogService) CreateBook(ctx context.Context, form forms.BookForm) (*models.Book, error) {
	if err := forms.Validate(form); err != nil {
		return nil, err
	}

	if form.AuthorID != nil {
		if _, err := s.authors.FindByID(ctx, *form.AuthorID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, forms.FieldErrors{"author_id": "Select a valid choice."}
			}
			return nil, fmt.Errorf("failed to load author: %w", err)
		}
	}

	genres, err := s.genres.FindByIDs(ctx, form.GenreIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load genres: %w", err)
	}
	if len(genres) != len(uniqueIDs(form.GenreIDs)) {
		return nil, forms.FieldErrors{"genre_ids": "Select a valid choice."}
	}

	book := &models.Book{
		Title:    strings.TrimSpace(form.Title),
		AuthorID: form.AuthorID,
		Summary:  form.Summary,
		ISBN:     strings.TrimSpace(form.ISBN),
		Cover:    form.Cover,
		Genres:   genres,
	}
	if err := s.books.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"book_id": book.ID,
		"title":   book.Title,
	}).Info("Book created")
	return book, nil
}

func (s *catalogService) SearchBooks(ctx context.Context, query string) ([]models.Book, error) {
	books, err := s.books.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	return books, nil
}

func (s *catalogService) AddReview(ctx context.Context, bookID uint, reviewer *models.User, form forms.BookReviewForm) (*models.BookReview, error) {
	form.Normalize()
	if err := forms.Validate(form); err != nil {
		return nil, err
	}

	exists, err := s.books.Exists(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to load book: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("book %d: %w", bookID, ErrNotFound)
	}

	review := &models.BookReview{
		BookID:     &bookID,
		ReviewerID: &reviewer.ID,
		Content:    form.Content,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}
	review.Reviewer = reviewer

	s.logger.WithFields(logrus.Fields{
		"book_id":     bookID,
		"reviewer_id": reviewer.ID,
	}).Info("Book review added")
	return review, nil
}

func (s *catalogService) ListGenres(ctx context.Context) ([]models.Genre, error) {
	return s.genres.FindAll(ctx)
}

func (s *catalogService) CreateGenre(ctx context.Context, form forms.GenreForm) (*models.Genre, error) {
	if err := forms.Validate(form); err != nil {
		return nil, err
	}

	genre := &models.Genre{Name: strings.TrimSpace(form.Name)}
	if err := s.genres.Create(ctx, genre); err != nil {
		return nil, fmt.Errorf("failed to create genre: %w", err)
	}
	return genre, nil
}

// notFound translates a repository miss into ErrNotFound.
func notFound(err error, format string, args ...interface{}) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
	}
	return err
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
