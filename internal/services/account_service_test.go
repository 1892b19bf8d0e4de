package services

import (
	"bytes"
	"context"
	"image"
	"strings"
	"testing"

	"library-backend/internal/database"
	"library-backend/internal/forms"
	"library-backend/internal/models"
	"library-backend/internal/repository"
	"library-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccountService(t *testing.T) (AccountService, *database.Database, *testutil.MemoryStorage) {
	t.Helper()

	db := testutil.NewDB(t)
	storage := testutil.NewMemoryStorage()
	svc := NewAccountService(
		repository.NewUserRepository(db),
		NewTokenService(testutil.AuthConfig()),
		storage,
		testutil.LibraryConfig(),
		testutil.NewLogger(),
	)
	return svc, db, storage
}

func registration(username, email string) forms.RegistrationForm {
	return forms.RegistrationForm{
		Username:  username,
		Email:     email,
		Password:  "correct-horse",
		Password2: "correct-horse",
	}
}

func countUsers(t *testing.T, db *database.Database) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.User{}).Count(&n).Error)
	return n
}

func TestRegisterCreatesUserAndProfile(t *testing.T) {
	svc, db, _ := newAccountService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registration("reader1", "reader1@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "reader1", user.Username)
	assert.Equal(t, models.RoleReader, user.Role)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)

	assert.Equal(t, int64(1), countUsers(t, db))

	var profile models.Profile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, models.DefaultProfilePhoto, profile.Photo)
}

func TestRegisterRejections(t *testing.T) {
	svc, db, _ := newAccountService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registration("taken", "taken@example.com"))
	require.NoError(t, err)

	mismatch := registration("newbie", "newbie@example.com")
	mismatch.Password2 = "something-else"
	_, err = svc.Register(ctx, mismatch)
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	// mismatch wins over a taken username
	mismatch.Username = "taken"
	_, err = svc.Register(ctx, mismatch)
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	// and over field validation
	mismatch.Username = ""
	mismatch.Email = "not-an-email"
	_, err = svc.Register(ctx, mismatch)
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	_, err = svc.Register(ctx, registration("taken", "other@example.com"))
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.Register(ctx, registration("other", "taken@example.com"))
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Register(ctx, registration("bad name", "bad@example.com"))
	var fe forms.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "username")

	assert.Equal(t, int64(1), countUsers(t, db))
}

func TestLoginAndAuthenticate(t *testing.T) {
	svc, _, _ := newAccountService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, registration("reader1", "reader1@example.com"))
	require.NoError(t, err)

	_, err = svc.Login(ctx, forms.LoginForm{Username: "reader1", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidLogin)

	_, err = svc.Login(ctx, forms.LoginForm{Username: "nobody", Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrInvalidLogin)

	session, err := svc.Login(ctx, forms.LoginForm{Username: "reader1", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)

	user, err := svc.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	require.NotNil(t, user.Profile)

	_, err = svc.Authenticate(ctx, session.Token+"x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUpdateProfileStoresThumbnail(t *testing.T) {
	svc, db, storage := newAccountService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registration("reader1", "reader1@example.com"))
	require.NoError(t, err)

	photo := &PhotoUpload{Filename: "me.png", Reader: bytes.NewReader(encodePNG(t, 900, 450))}
	updated, err := svc.UpdateProfile(ctx, user, forms.UserUpdateForm{Username: "reader_one", Email: "one@example.com"}, photo)
	require.NoError(t, err)

	assert.Equal(t, "reader_one", updated.Username)
	assert.Equal(t, "one@example.com", updated.Email)
	require.True(t, strings.HasPrefix(updated.Profile.Photo, storage.BaseURL+"/profile_pics/"), updated.Profile.Photo)

	obj, ok := storage.Get(updated.Profile.Photo)
	require.True(t, ok)
	assert.Equal(t, "image/png", obj.ContentType)
	cfg, _, err := image.DecodeConfig(bytes.NewReader(obj.Data))
	require.NoError(t, err)
	assert.LessOrEqual(t, cfg.Width, 300)
	assert.LessOrEqual(t, cfg.Height, 300)

	var saved models.User
	require.NoError(t, db.Preload("Profile").First(&saved, user.ID).Error)
	assert.Equal(t, "reader_one", saved.Username)
	assert.Equal(t, updated.Profile.Photo, saved.Profile.Photo)
	assert.Empty(t, storage.Deleted, "the default photo is never deleted")

	// a second upload replaces and removes the previous file
	firstPhoto := saved.Profile.Photo
	photo = &PhotoUpload{Filename: "again.png", Reader: bytes.NewReader(encodePNG(t, 50, 50))}
	again, err := svc.UpdateProfile(ctx, &saved, forms.UserUpdateForm{Username: "reader_one", Email: "one@example.com"}, photo)
	require.NoError(t, err)
	assert.NotEqual(t, firstPhoto, again.Profile.Photo)
	assert.Equal(t, []string{firstPhoto}, storage.Deleted)
}

func TestUpdateProfileValidation(t *testing.T) {
	svc, _, storage := newAccountService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registration("someone", "someone@example.com"))
	require.NoError(t, err)
	user, err := svc.Register(ctx, registration("reader1", "reader1@example.com"))
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, user, forms.UserUpdateForm{Username: "someone", Email: "x@example.com"}, nil)
	var fe forms.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "A user with that username already exists.", fe["username"])

	_, err = svc.UpdateProfile(ctx, user, forms.UserUpdateForm{Username: "reader1", Email: "nope"}, nil)
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "email")

	photo := &PhotoUpload{Filename: "notes.txt", Reader: strings.NewReader("plain text")}
	_, err = svc.UpdateProfile(ctx, user, forms.UserUpdateForm{Username: "reader1", Email: "reader1@example.com"}, photo)
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "photo")
	assert.Empty(t, storage.Objects)

	huge := &PhotoUpload{Filename: "huge.png", Reader: bytes.NewReader(pngHeader(30000, 30000))}
	_, err = svc.UpdateProfile(ctx, user, forms.UserUpdateForm{Username: "reader1", Email: "reader1@example.com"}, huge)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Upload a valid image. The file you uploaded was either not an image or a corrupted image.", fe["photo"])
	assert.Empty(t, storage.Objects)

	// keeping the own username is allowed
	updated, err := svc.UpdateProfile(ctx, user, forms.UserUpdateForm{Username: "reader1", Email: "new@example.com"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, models.DefaultProfilePhoto, updated.Profile.Photo)
}

func TestUpdateProfileWithoutStorage(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAccountService(
		repository.NewUserRepository(db),
		NewTokenService(testutil.AuthConfig()),
		nil,
		testutil.LibraryConfig(),
		testutil.NewLogger(),
	)

	user := testutil.CreateUser(t, db, "reader1", "pw", models.RoleReader)
	photo := &PhotoUpload{Filename: "me.png", Reader: bytes.NewReader(encodePNG(t, 10, 10))}
	_, err := svc.UpdateProfile(context.Background(), user, forms.UserUpdateForm{Username: "reader1", Email: "r@example.com"}, photo)
	assert.ErrorIs(t, err, ErrStorageDisabled)
}
