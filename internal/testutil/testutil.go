// Package testutil provides a migrated SQLite database and in-memory fakes
// for tests that exercise repositories, services and handlers together.
package testutil

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"library-backend/internal/config"
	"library-backend/internal/database"
	"library-backend/internal/models"
	"library-backend/internal/utils"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

// NewDB opens a fresh SQLite file under t.TempDir and migrates the schema.
func NewDB(t *testing.T) *database.Database {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "library.db") + "?_foreign_keys=1"
	db, err := database.Open(sqlite.Open(dsn), config.DatabaseConfig{QueryTimeout: 5 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func LibraryConfig() config.LibraryConfig {
	return config.LibraryConfig{
		AuthorsPerPage:  2,
		BooksPerPage:    2,
		LoansPerPage:    10,
		PhotoMaxSize:    300,
		PhotoMaxPixels:  40_000_000,
		PhotoMaxBytes:   5 * 1024 * 1024,
		PhotoPrefix:     "profile_pics",
		CoverPrefix:     "covers",
		PresignedExpiry: 15 * time.Minute,
	}
}

func AuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
		Issuer:    "library-test",
	}
}

// CreateUser inserts a user with a default profile and the given password.
func CreateUser(t *testing.T, db *database.Database, username, password string, role models.Role) *models.User {
	t.Helper()

	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         role,
		Profile:      &models.Profile{Photo: models.DefaultProfilePhoto},
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateAuthor(t *testing.T, db *database.Database, first, last string) *models.Author {
	t.Helper()

	author := &models.Author{FirstName: first, LastName: last, Description: first + " " + last}
	require.NoError(t, db.Create(author).Error)
	return author
}

func CreateBook(t *testing.T, db *database.Database, title string, author *models.Author, genres ...models.Genre) *models.Book {
	t.Helper()

	book := &models.Book{
		Title:   title,
		Summary: "Summary of " + title,
		ISBN:    "9780000000000",
		Genres:  genres,
	}
	if author != nil {
		book.AuthorID = &author.ID
	}
	require.NoError(t, db.Create(book).Error)
	return book
}

func CreateGenre(t *testing.T, db *database.Database, name string) models.Genre {
	t.Helper()

	genre := models.Genre{Name: name}
	require.NoError(t, db.Create(&genre).Error)
	return genre
}

func CreateInstance(t *testing.T, db *database.Database, book *models.Book, status models.LoanStatus, reader *models.User, due *time.Time) *models.BookInstance {
	t.Helper()

	instance := &models.BookInstance{BookID: &book.ID, Status: status, DueBack: due}
	if reader != nil {
		instance.ReaderID = &reader.ID
	}
	require.NoError(t, db.Create(instance).Error)
	return instance
}

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

// Object is a file held by MemoryStorage.
type Object struct {
	Data        []byte
	ContentType string
}

// MemoryStorage keeps uploaded objects in a map keyed by object path.
type MemoryStorage struct {
	BaseURL string

	mu      sync.Mutex
	Objects map[string]Object
	Deleted []string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		BaseURL: "http://storage.test/library",
		Objects: map[string]Object{},
	}
}

func (s *MemoryStorage) Upload(_ context.Context, objectPath string, data []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Objects[objectPath] = Object{Data: data, ContentType: contentType}
	return s.BaseURL + "/" + objectPath, nil
}

func (s *MemoryStorage) DeleteFile(_ context.Context, objectURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	objectPath := strings.TrimPrefix(objectURL, s.BaseURL+"/")
	if _, ok := s.Objects[objectPath]; !ok {
		return fmt.Errorf("object %s does not exist", objectPath)
	}
	delete(s.Objects, objectPath)
	s.Deleted = append(s.Deleted, objectURL)
	return nil
}

func (s *MemoryStorage) GeneratePresignedURL(_ context.Context, prefix, filename string, expiry time.Duration) (string, string, error) {
	objectPath := prefix + "/" + filename
	publicURL := s.BaseURL + "/" + objectPath
	return fmt.Sprintf("%s?X-Amz-Expires=%d", publicURL, int(expiry.Seconds())), publicURL, nil
}

func (s *MemoryStorage) Owns(objectURL string) bool {
	return strings.HasPrefix(objectURL, s.BaseURL+"/")
}

// Get returns the object stored at objectURL.
func (s *MemoryStorage) Get(objectURL string) (Object, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.Objects[strings.TrimPrefix(objectURL, s.BaseURL+"/")]
	return obj, ok
}
