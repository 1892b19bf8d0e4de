package services

import (
	"context"
	"fmt"

	"library-backend/internal/config"
	"library-backend/internal/forms"
	"library-backend/internal/models"
	"library-backend/internal/repository"
	"library-backend/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type LoanService interface {
	ListLoanedBooks(ctx context.Context, reader *models.User, rawPage string) ([]models.BookInstance, utils.Page, error)
	GetLoanedBook(ctx context.Context, viewer *models.User, id uuid.UUID) (*models.BookInstance, error)
	CreateBookInstance(ctx context.Context, form forms.BookInstanceForm) (*models.BookInstance, error)
	UpdateBookInstance(ctx context.Context, id uuid.UUID, form forms.BookInstanceForm) (*models.BookInstance, error)
}

type loanService struct {
	instances repository.BookInstanceRepository
	books     repository.BookRepository
	users     repository.UserRepository
	config    config.LibraryConfig
	logger    *logrus.Logger
}

func NewLoanService(
	instances repository.BookInstanceRepository,
	books repository.BookRepository,
	users repository.UserRepository,
	cfg config.LibraryConfig,
	logger *logrus.Logger,
) LoanService {
	return &loanService{
		instances: instances,
		books:     books,
		users:     users,
		config:    cfg,
		logger:    logger,
	}
}

func (s *loanService) ListLoanedBooks(ctx context.Context, reader *models.User, rawPage string) ([]models.BookInstance, utils.Page, error) {
	total, err := s.instances.CountLoanedByReader(ctx, reader.ID)
	if err != nil {
		return nil, utils.Page{}, fmt.Errorf("failed to count loaned books: %w", err)
	}

	page := utils.ResolvePage(rawPage, total, s.config.LoansPerPage)
	instances, err := s.instances.FindLoanedByReader(ctx, reader.ID, page.Offset(), page.Size)
	if err != nil {
		return nil, utils.Page{}, fmt.Errorf("failed to list loaned books: %w", err)
	}
	return instances, page, nil
}

// GetLoanedBook returns a copy loaned to viewer. Staff allowed to add
// instances may look at any copy.
func (s *loanService) GetLoanedBook(ctx context.Context, viewer *models.User, id uuid.UUID) (*models.BookInstance, error) {
	instance, err := s.instances.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "book instance %s", id)
	}

	if viewer.Can(models.PermAddBookInstance) {
		return instance, nil
	}
	if instance.ReaderID == nil || *instance.ReaderID != viewer.ID {
		return nil, fmt.Errorf("book instance %s: %w", id, ErrNotFound)
	}
	return instance, nil
}

func (s *loanService) CreateBookInstance(ctx context.Context, form forms.BookInstanceForm) (*models.BookInstance, error) {
	instance := &models.BookInstance{}
	if err := s.apply(ctx, instance, form); err != nil {
		return nil, err
	}

	if err := s.instances.Create(ctx, instance); err != nil {
		return nil, fmt.Errorf("failed to create book instance: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"instance_id": instance.ID,
		"book_id":     *instance.BookID,
		"status":      instance.Status,
	}).Info("Book instance created")
	return instance, nil
}

func (s *loanService) UpdateBookInstance(ctx context.Context, id uuid.UUID, form forms.BookInstanceForm) (*models.BookInstance, error) {
	instance, err := s.instances.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "book instance %s", id)
	}

	if err := s.apply(ctx, instance, form); err != nil {
		return nil, err
	}
	instance.Book = nil
	instance.Reader = nil

	if err := s.instances.Update(ctx, instance); err != nil {
		return nil, fmt.Errorf("failed to update book instance: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"instance_id": instance.ID,
		"status":      instance.Status,
	}).Info("Book instance updated")
	return instance, nil
}

// apply validates the form, checks its references and copies it onto instance.
func (s *loanService) apply(ctx context.Context, instance *models.BookInstance, form forms.BookInstanceForm) error {
	if err := forms.Validate(form); err != nil {
		return err
	}

	fieldErrors := forms.FieldErrors{}

	exists, err := s.books.Exists(ctx, *form.BookID)
	if err != nil {
		return fmt.Errorf("failed to load book: %w", err)
	}
	if !exists {
		fieldErrors["book_id"] = "Select a valid choice."
	}

	if form.ReaderID != nil {
		exists, err := s.users.Exists(ctx, *form.ReaderID)
		if err != nil {
			return fmt.Errorf("failed to load reader: %w", err)
		}
		if !exists {
			fieldErrors["reader_id"] = "Select a valid choice."
		}
	}

	if len(fieldErrors) > 0 {
		return fieldErrors
	}

	instance.BookID = form.BookID
	instance.Status = form.LoanStatus()
	instance.DueBack = form.DueDate()
	instance.ReaderID = form.ReaderID
	return nil
}
