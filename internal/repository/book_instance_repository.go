package repository

import (
	"context"
	"errors"

	"library-backend/internal/database"
	"library-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookInstanceRepository interface {
	Create(ctx context.Context, instance *models.BookInstance) error
	Update(ctx context.Context, instance *models.BookInstance) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.BookInstance, error)
	FindLoanedByReader(ctx context.Context, readerID uint, offset, limit int) ([]models.BookInstance, error)
	CountLoanedByReader(ctx context.Context, readerID uint) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.LoanStatus) (int64, error)
}

type bookInstanceRepository struct {
	scope
}

func NewBookInstanceRepository(db *database.Database) BookInstanceRepository {
	return &bookInstanceRepository{scope: newScope(db)}
}

func (r *bookInstanceRepository) Create(ctx context.Context, instance *models.BookInstance) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Omit("Book", "Reader").Create(instance).Error
}

func (r *bookInstanceRepository) Update(ctx context.Context, instance *models.BookInstance) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Omit("Book", "Reader").Save(instance).Error
}

func (r *bookInstanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.BookInstance, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var instance models.BookInstance
	err := r.db.WithContext(ctx).
		Preload("Book.Author").
		Preload("Reader").
		Where("id = ?", id).
		First(&instance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &instance, nil
}

func (r *bookInstanceRepository) loanedByReader(db *gorm.DB, readerID uint) *gorm.DB {
	return db.Model(&models.BookInstance{}).
		Where("reader_id = ?", readerID).
		Where("status = ?", models.LoanStatusTaken)
}

// FindLoanedByReader returns the reader's taken copies, earliest due date first.
func (r *bookInstanceRepository) FindLoanedByReader(ctx context.Context, readerID uint, offset, limit int) ([]models.BookInstance, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var instances []models.BookInstance
	err := r.loanedByReader(r.db.WithContext(ctx), readerID).
		Preload("Book.Author").
		Order("due_back").Order("id").
		Offset(offset).Limit(limit).
		Find(&instances).Error
	return instances, err
}

func (r *bookInstanceRepository) CountLoanedByReader(ctx context.Context, readerID uint) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var total int64
	err := r.loanedByReader(r.db.WithContext(ctx), readerID).Count(&total).Error
	return total, err
}

func (r *bookInstanceRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var total int64
	err := r.db.WithContext(ctx).Model(&models.BookInstance{}).Count(&total).Error
	return total, err
}

func (r *bookInstanceRepository) CountByStatus(ctx context.Context, status models.LoanStatus) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var total int64
	err := r.db.WithContext(ctx).Model(&models.BookInstance{}).Where("status = ?", status).Count(&total).Error
	return total, err
}
