package repository

import (
	"context"

	"library-backend/internal/database"
	"library-backend/internal/models"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.BookReview) error
}

type reviewRepository struct {
	scope
}

func NewReviewRepository(db *database.Database) ReviewRepository {
	return &reviewRepository{scope: newScope(db)}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.BookReview) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Omit("Book", "Reviewer").Create(review).Error
}

