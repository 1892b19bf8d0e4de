package repository

import (
	"context"
	"errors"

	"library-backend/internal/database"
	"library-backend/internal/models"

	"gorm.io/gorm"
)

type AuthorRepository interface {
	Create(ctx context.Context, author *models.Author) error
	FindByID(ctx context.Context, id uint) (*models.Author, error)
	FindPage(ctx context.Context, offset, limit int) ([]models.Author, error)
	Count(ctx context.Context) (int64, error)
}

type authorRepository struct {
	scope
}

func NewAuthorRepository(db *database.Database) AuthorRepository {
	return &authorRepository{scope: newScope(db)}
}

func (r *authorRepository) Create(ctx context.Context, author *models.Author) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(author).Error
}

func (r *authorRepository) FindByID(ctx context.Context, id uint) (*models.Author, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var author models.Author
	err := r.db.WithContext(ctx).
		Preload("Books", func(db *gorm.DB) *gorm.DB { return db.Order("books.title") }).
		Preload("Books.Genres").
		First(&author, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &author, nil
}

func (r *authorRepository) FindPage(ctx context.Context, offset, limit int) ([]models.Author, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var authors []models.Author
	err := r.db.WithContext(ctx).
		Preload("Books", func(db *gorm.DB) *gorm.DB { return db.Order("books.id") }).
		Order("last_name, first_name, id").
		Offset(offset).Limit(limit).
		Find(&authors).Error
	return authors, err
}

func (r *authorRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var total int64
	err := r.db.WithContext(ctx).Model(&models.Author{}).Count(&total).Error
	return total, err
}
