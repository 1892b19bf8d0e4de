package repository

import (
	"context"
	"errors"

	"library-backend/internal/database"
	"library-backend/internal/models"
	"library-backend/internal/utils"

	"gorm.io/gorm"
)

type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	FindByID(ctx context.Context, id uint) (*models.Book, error)
	Exists(ctx context.Context, id uint) (bool, error)
	FindPage(ctx context.Context, offset, limit int) ([]models.Book, error)
	Count(ctx context.Context) (int64, error)
	Search(ctx context.Context, query string) ([]models.Book, error)
}

type bookRepository struct {
	scope
}

func NewBookRepository(db *database.Database) BookRepository {
	return &bookRepository{scope: newScope(db)}
}

func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(book).Error
}

func (r *bookRepository) FindByID(ctx context.Context, id uint) (*models.Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var book models.Book
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Genres").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("date_created DESC, id DESC") }).
		Preload("Reviews.Reviewer").
		First(&book, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) Exists(ctx context.Context, id uint) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Book{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *bookRepository) FindPage(ctx context.Context, offset, limit int) ([]models.Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var books []models.Book
	err := r.db.WithContext(ctx).
		Preload("Author").Preload("Genres").
		Order("id").
		Offset(offset).Limit(limit).
		Find(&books).Error
	return books, err
}

func (r *bookRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var total int64
	err := r.db.WithContext(ctx).Model(&models.Book{}).Count(&total).Error
	return total, err
}

// Search matches query case-insensitively as a substring of the title,
// the summary or the author's first name.
func (r *bookRepository) Search(ctx context.Context, query string) ([]models.Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	pattern := utils.ContainsPattern(query)

	var books []models.Book
	err := r.db.WithContext(ctx).Model(&models.Book{}).
		Joins("LEFT JOIN authors ON authors.id = books.author_id").
		Where(`LOWER(books.title) LIKE ? ESCAPE '\' OR LOWER(books.summary) LIKE ? ESCAPE '\' OR LOWER(authors.first_name) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern).
		Preload("Author").Preload("Genres").
		Order("books.id").
		Find(&books).Error
	return books, err
}
