package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"library-backend/internal/config"
	"library-backend/internal/forms"
	"library-backend/internal/models"
	"library-backend/internal/repository"
	"library-backend/internal/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PhotoUpload is a profile photo received from a multipart form.
type PhotoUpload struct {
	Filename string
	Reader   io.Reader
}

// Session is the result of a successful login.
type Session struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

type AccountService interface {
	Register(ctx context.Context, form forms.RegistrationForm) (*models.User, error)
	Login(ctx context.Context, form forms.LoginForm) (*Session, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
	GetProfile(ctx context.Context, userID uint) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User, form forms.UserUpdateForm, photo *PhotoUpload) (*models.User, error)
}

type accountService struct {
	users   repository.UserRepository
	tokens  *TokenService
	storage ObjectStorage
	config  config.LibraryConfig
	logger  *logrus.Logger
}

func NewAccountService(users repository.UserRepository, tokens *TokenService, storage ObjectStorage, cfg config.LibraryConfig, logger *logrus.Logger) AccountService {
	return &accountService{
		users:   users,
		tokens:  tokens,
		storage: storage,
		config:  cfg,
		logger:  logger,
	}
}

// Register creates a reader account and its profile. Password mismatch is
// checked first, then username and email uniqueness.
func (s *accountService) Register(ctx context.Context, form forms.RegistrationForm) (*models.User, error) {
	if form.Password != form.Password2 {
		return nil, ErrPasswordMismatch
	}

	form.Normalize()
	if err := forms.Validate(form); err != nil {
		return nil, err
	}

	taken, err := s.users.UsernameTaken(ctx, form.Username, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	taken, err = s.users.EmailTaken(ctx, form.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := utils.HashPassword(form.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     form.Username,
		Email:        form.Email,
		PasswordHash: hash,
		Role:         models.RoleReader,
	}
	profile := &models.Profile{Photo: models.DefaultProfilePhoto}

	if err := s.users.CreateWithProfile(ctx, user, profile); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("User registered")
	return user, nil
}

func (s *accountService) Login(ctx context.Context, form forms.LoginForm) (*Session, error) {
	if err := forms.Validate(form); err != nil {
		return nil, err
	}

	user, err := s.users.FindByUsername(ctx, form.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidLogin
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := utils.VerifyPassword(user.PasswordHash, form.Password); err != nil {
		return nil, ErrInvalidLogin
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	return &Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Authenticate resolves a bearer token to the current state of its user.
func (s *accountService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

func (s *accountService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user %d", userID)
	}
	if user.Profile == nil {
		user.Profile = &models.Profile{UserID: user.ID, Photo: models.DefaultProfilePhoto}
	}
	return user, nil
}

// UpdateProfile saves the username, email and optionally a new photo. The
// photo is shrunk to fit the configured bound before it is stored, and the
// previous uploaded photo is removed once the new one is saved.
func (s *accountService) UpdateProfile(ctx context.Context, user *models.User, form forms.UserUpdateForm, photo *PhotoUpload) (*models.User, error) {
	form.Normalize()
	if err := forms.Validate(form); err != nil {
		return nil, err
	}

	taken, err := s.users.UsernameTaken(ctx, form.Username, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, forms.FieldErrors{"username": "A user with that username already exists."}
	}

	current, err := s.GetProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	profile := current.Profile
	oldPhoto := profile.Photo
	replaceable := !profile.HasDefaultPhoto() && s.storage != nil && s.storage.Owns(oldPhoto)

	var uploaded string
	if photo != nil {
		uploaded, err = s.storePhoto(ctx, user.ID, photo)
		if err != nil {
			return nil, err
		}
		profile.Photo = uploaded
	}

	current.Username = form.Username
	current.Email = form.Email

	if err := s.users.UpdateAccount(ctx, current, profile); err != nil {
		if uploaded != "" {
			if delErr := s.storage.DeleteFile(ctx, uploaded); delErr != nil {
				s.logger.WithError(delErr).Warn("Failed to clean up uploaded photo")
			}
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, forms.FieldErrors{"username": "A user with that username already exists."}
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if uploaded != "" && replaceable {
		if err := s.storage.DeleteFile(ctx, oldPhoto); err != nil {
			s.logger.WithError(err).WithField("photo", oldPhoto).Warn("Failed to delete old profile photo")
		}
	}

	s.logger.WithField("user_id", current.ID).Info("Profile updated")
	return current, nil
}

func (s *accountService) storePhoto(ctx context.Context, userID uint, photo *PhotoUpload) (string, error) {
	if s.storage == nil {
		return "", ErrStorageDisabled
	}

	thumb, err := MakeThumbnail(photo.Reader, ThumbnailLimits{
		Bound:     s.config.PhotoMaxSize,
		MaxPixels: s.config.PhotoMaxPixels,
		MaxBytes:  s.config.PhotoMaxBytes,
	})
	if err != nil {
		if errors.Is(err, ErrUnsupportedImage) || errors.Is(err, ErrImageTooLarge) {
			return "", forms.FieldErrors{"photo": "Upload a valid image. The file you uploaded was either not an image or a corrupted image."}
		}
		return "", err
	}

	objectPath := UniqueObjectPath(s.config.PhotoPrefix, fmt.Sprintf("user%d%s", userID, thumb.Extension))
	url, err := s.storage.Upload(ctx, objectPath, thumb.Data, thumb.ContentType)
	if err != nil {
		return "", err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"width":   thumb.Width,
		"height":  thumb.Height,
	}).Debug("Profile photo stored")
	return url, nil
}
