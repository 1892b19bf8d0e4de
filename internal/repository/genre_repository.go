package repository

import (
	"context"

	"library-backend/internal/database"
	"library-backend/internal/models"
)

type GenreRepository interface {
	Create(ctx context.Context, genre *models.Genre) error
	FindAll(ctx context.Context) ([]models.Genre, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Genre, error)
}

type genreRepository struct {
	scope
}

func NewGenreRepository(db *database.Database) GenreRepository {
	return &genreRepository{scope: newScope(db)}
}

func (r *genreRepository) Create(ctx context.Context, genre *models.Genre) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(genre).Error
}

func (r *genreRepository) FindAll(ctx context.Context) ([]models.Genre, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var genres []models.Genre
	err := r.db.WithContext(ctx).Order("name").Find(&genres).Error
	return genres, err
}

func (r *genreRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Genre, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var genres []models.Genre
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&genres).Error
	return genres, err
}
