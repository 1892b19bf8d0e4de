package services

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrUsernameTaken    = errors.New("username is already taken")
	ErrEmailTaken       = errors.New("email is already registered")
	ErrInvalidLogin     = errors.New("invalid username or password")
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrUnsupportedImage = errors.New("unsupported image format")
	ErrImageTooLarge    = errors.New("image is too large")
	ErrStorageDisabled  = errors.New("object storage is not configured")
)
