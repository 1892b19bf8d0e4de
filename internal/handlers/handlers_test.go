package handlers_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"library-backend/internal/config"
	"library-backend/internal/database"
	"library-backend/internal/handlers"
	"library-backend/internal/middleware"
	"library-backend/internal/models"
	"library-backend/internal/repository"
	"library-backend/internal/routes"
	"library-backend/internal/services"
	"library-backend/internal/testutil"
	"library-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	app     *fiber.App
	db      *database.Database
	tokens  *services.TokenService
	storage *testutil.MemoryStorage
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := testutil.NewDB(t)
	log := testutil.NewLogger()
	cfg := testutil.LibraryConfig()
	storage := testutil.NewMemoryStorage()

	users := repository.NewUserRepository(db)
	books := repository.NewBookRepository(db)
	instances := repository.NewBookInstanceRepository(db)
	tokens := services.NewTokenService(testutil.AuthConfig())

	catalog := services.NewCatalogService(repository.NewAuthorRepository(db), books, repository.NewGenreRepository(db), instances, repository.NewReviewRepository(db), cfg, log)
	loans := services.NewLoanService(instances, books, users, cfg, log)
	accounts := services.NewAccountService(users, tokens, storage, cfg, log)

	app := fiber.New()
	routes.Setup(app, routes.Handlers{
		Catalog: handlers.NewCatalogHandler(catalog, middleware.NewSessionStore(config.RedisConfig{SessionTTL: time.Hour}, nil), log),
		Loan:    handlers.NewLoanHandler(loans, log),
		Account: handlers.NewAccountHandler(accounts, log),
		Upload:  handlers.NewUploadHandler(storage, cfg.CoverPrefix, cfg.PresignedExpiry, log),
	}, accounts, log)

	return &testServer{app: app, db: db, tokens: tokens, storage: storage}
}

func (s *testServer) token(t *testing.T, user *models.User) string {
	t.Helper()
	signed, _, err := s.tokens.Issue(user)
	require.NoError(t, err)
	return signed
}

type envelope struct {
	Status  string               `json:"status"`
	Code    int                  `json:"code"`
	Message string               `json:"message"`
	Data    json.RawMessage      `json:"data"`
	Meta    utils.PaginationMeta `json:"meta"`
}

type call struct {
	method      string
	path        string
	token       string
	body        io.Reader
	contentType string
	cookies     []*http.Cookie
}

func (s *testServer) do(t *testing.T, c call) (*http.Response, envelope) {
	t.Helper()

	req := httptest.NewRequest(c.method, c.path, c.body)
	if c.contentType != "" {
		req.Header.Set(fiber.HeaderContentType, c.contentType)
	}
	if c.token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+c.token)
	}
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func (s *testServer) get(t *testing.T, path, token string) (*http.Response, envelope) {
	return s.do(t, call{method: fiber.MethodGet, path: path, token: token})
}

func (s *testServer) sendJSON(t *testing.T, method, path, token string, payload interface{}) (*http.Response, envelope) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return s.do(t, call{method: method, path: path, token: token, body: bytes.NewReader(body), contentType: fiber.MIMEApplicationJSON})
}

func decode(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v))
}

func TestIndexCountsVisitsPerSession(t *testing.T) {
	s := newTestServer(t)
	book := testutil.CreateBook(t, s.db, "Emma", testutil.CreateAuthor(t, s.db, "Jane", "Austen"))
	testutil.CreateInstance(t, s.db, book, models.LoanStatusAvailable, nil, nil)
	testutil.CreateInstance(t, s.db, book, models.LoanStatusTaken, nil, nil)

	resp, env := s.get(t, "/api/v1/", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stats models.LibraryStats
	decode(t, env, &stats)
	assert.Equal(t, int64(1), stats.NumBooks)
	assert.Equal(t, int64(2), stats.NumInstances)
	assert.Equal(t, int64(1), stats.NumInstancesAvailable)
	assert.Equal(t, int64(1), stats.NumAuthors)
	assert.Equal(t, 1, stats.NumVisits)

	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)

	for want := 2; want <= 3; want++ {
		_, env = s.do(t, call{method: fiber.MethodGet, path: "/api/v1/", cookies: cookies})
		decode(t, env, &stats)
		assert.Equal(t, want, stats.NumVisits)
	}

	// a new visitor starts over
	_, env = s.get(t, "/api/v1/", "")
	decode(t, env, &stats)
	assert.Equal(t, 1, stats.NumVisits)
}

func TestAuthorEndpoints(t *testing.T) {
	s := newTestServer(t)
	austen := testutil.CreateAuthor(t, s.db, "Jane", "Austen")
	testutil.CreateAuthor(t, s.db, "Charles", "Dickens")
	testutil.CreateAuthor(t, s.db, "Leo", "Tolstoy")
	testutil.CreateBook(t, s.db, "Emma", austen)

	resp, env := s.get(t, "/api/v1/authors", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var authors []handlers.AuthorSummary
	decode(t, env, &authors)
	require.Len(t, authors, 2)
	assert.Equal(t, "Emma", authors[0].DisplayBooks)
	assert.Equal(t, 2, env.Meta.TotalPages)
	assert.True(t, env.Meta.HasNext)

	_, env = s.get(t, "/api/v1/authors?page=99", "")
	decode(t, env, &authors)
	require.Len(t, authors, 1)
	assert.Equal(t, "Tolstoy", authors[0].LastName)
	assert.Equal(t, 2, env.Meta.Page)

	resp, env = s.get(t, "/api/v1/authors/"+itoa(austen.ID), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var detail handlers.AuthorDetail
	decode(t, env, &detail)
	require.Len(t, detail.Books, 1)
	assert.Equal(t, "Emma", detail.Books[0].Title)

	resp, _ = s.get(t, "/api/v1/authors/999", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp, _ = s.get(t, "/api/v1/authors/abc", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestBookEndpointsAndReviews(t *testing.T) {
	s := newTestServer(t)
	reader := testutil.CreateUser(t, s.db, "reader1", "pw", models.RoleReader)
	genre := testutil.CreateGenre(t, s.db, "Detective")
	doyle := testutil.CreateAuthor(t, s.db, "Arthur", "Doyle")
	hound := testutil.CreateBook(t, s.db, "The Hound of the Baskervilles", doyle, genre)
	testutil.CreateBook(t, s.db, "Emma", nil)
	testutil.CreateBook(t, s.db, "Persuasion", nil)

	resp, env := s.get(t, "/api/v1/books", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var books []handlers.BookSummary
	decode(t, env, &books)
	require.Len(t, books, 2)
	assert.Equal(t, "Detective", books[0].DisplayGenre)
	require.NotNil(t, books[0].Author)
	assert.Equal(t, int64(3), env.Meta.Total)

	path := "/api/v1/books/" + itoa(hound.ID) + "/reviews"
	resp, _ = s.sendJSON(t, fiber.MethodPost, path, "", map[string]string{"content": "Great"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, env = s.sendJSON(t, fiber.MethodPost, path, s.token(t, reader), map[string]string{"content": strings.Repeat("a", 2001)})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	var fieldErrors map[string]string
	decode(t, env, &fieldErrors)
	assert.Contains(t, fieldErrors, "content")

	resp, _ = s.sendJSON(t, fiber.MethodPost, path, s.token(t, reader), map[string]string{"content": "Great"})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, _ = s.sendJSON(t, fiber.MethodPost, "/api/v1/books/999/reviews", s.token(t, reader), map[string]string{"content": "Great"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, env = s.get(t, "/api/v1/books/"+itoa(hound.ID), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var detail handlers.BookDetail
	decode(t, env, &detail)
	require.Len(t, detail.Reviews, 1)
	assert.Equal(t, "reader1", detail.Reviews[0].Reviewer)
	assert.Equal(t, "Great", detail.Reviews[0].Content)
}

func TestSearch(t *testing.T) {
	s := newTestServer(t)
	testutil.CreateBook(t, s.db, "The Hound of the Baskervilles", testutil.CreateAuthor(t, s.db, "Arthur", "Doyle"))
	testutil.CreateBook(t, s.db, "Emma", nil)

	var result handlers.SearchResponse

	_, env := s.get(t, "/api/v1/search?query=hOuNd", "")
	decode(t, env, &result)
	assert.Equal(t, "hOuNd", result.Query)
	require.Len(t, result.Books, 1)
	assert.Equal(t, "The Hound of the Baskervilles", result.Books[0].Title)

	_, env = s.get(t, "/api/v1/search?query=nothing-like-this", "")
	decode(t, env, &result)
	assert.Empty(t, result.Books)

	_, env = s.get(t, "/api/v1/search", "")
	decode(t, env, &result)
	assert.Len(t, result.Books, 2)
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t)

	form := map[string]string{
		"username":  "reader1",
		"email":     "reader1@example.com",
		"password":  "correct-horse",
		"password2": "correct-horse",
	}

	resp, env := s.sendJSON(t, fiber.MethodPost, "/api/v1/register", "", form)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Account with the name reader1 has been successfully registered!", env.Message)

	resp, env = s.sendJSON(t, fiber.MethodPost, "/api/v1/register", "", form)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Username reader1 is already taken!", env.Message)

	form["username"] = "reader2"
	resp, env = s.sendJSON(t, fiber.MethodPost, "/api/v1/register", "", form)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "User with email reader1@example.com is already registered!", env.Message)

	form["password2"] = "different"
	resp, env = s.sendJSON(t, fiber.MethodPost, "/api/v1/register", "", form)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Passwords do not match!", env.Message)

	resp, _ = s.sendJSON(t, fiber.MethodPost, "/api/v1/register", "", map[string]string{"username": "x"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var users int64
	require.NoError(t, s.db.Model(&models.User{}).Count(&users).Error)
	assert.Equal(t, int64(1), users)

	resp, _ = s.sendJSON(t, fiber.MethodPost, "/api/v1/login", "", map[string]string{"username": "reader1", "password": "nope"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, env = s.sendJSON(t, fiber.MethodPost, "/api/v1/login", "", map[string]string{"username": "reader1", "password": "correct-horse"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var login handlers.LoginResponse
	decode(t, env, &login)
	assert.Equal(t, "reader1", login.User.Username)
	assert.Equal(t, models.DefaultProfilePhoto, login.User.Photo)

	resp, env = s.get(t, "/api/v1/profile", login.Token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var profile handlers.UserResponse
	decode(t, env, &profile)
	assert.Equal(t, "reader1@example.com", profile.Email)

	resp, _ = s.get(t, "/api/v1/profile", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestUpdateProfileWithPhoto(t *testing.T) {
	s := newTestServer(t)
	reader := testutil.CreateUser(t, s.db, "reader1", "pw", models.RoleReader)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("username", "reader_renamed"))
	require.NoError(t, writer.WriteField("email", "renamed@example.com"))
	part, err := writer.CreateFormFile("photo", "me.png")
	require.NoError(t, err)
	require.NoError(t, png.Encode(part, image.NewRGBA(image.Rect(0, 0, 640, 480))))
	require.NoError(t, writer.Close())

	resp, env := s.do(t, call{
		method:      fiber.MethodPut,
		path:        "/api/v1/profile",
		token:       s.token(t, reader),
		body:        &body,
		contentType: writer.FormDataContentType(),
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Message)
	assert.Equal(t, "Profile updated!", env.Message)

	var profile handlers.UserResponse
	decode(t, env, &profile)
	assert.Equal(t, "reader_renamed", profile.Username)

	obj, ok := s.storage.Get(profile.Photo)
	require.True(t, ok, profile.Photo)
	cfg, err := png.DecodeConfig(bytes.NewReader(obj.Data))
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Width)
	assert.Equal(t, 225, cfg.Height)

	// taken username reports a field error
	testutil.CreateUser(t, s.db, "someone", "pw", models.RoleReader)
	resp, env = s.sendJSON(t, fiber.MethodPut, "/api/v1/profile", s.token(t, reader), map[string]string{
		"username": "someone",
		"email":    "renamed@example.com",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	var fieldErrors map[string]string
	decode(t, env, &fieldErrors)
	assert.Contains(t, fieldErrors, "username")
}

func TestMyBooks(t *testing.T) {
	s := newTestServer(t)
	reader := testutil.CreateUser(t, s.db, "reader1", "pw", models.RoleReader)
	other := testutil.CreateUser(t, s.db, "reader2", "pw", models.RoleReader)
	book := testutil.CreateBook(t, s.db, "Emma", nil)

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	nextWeek := time.Now().UTC().AddDate(0, 0, 7)
	overdue := testutil.CreateInstance(t, s.db, book, models.LoanStatusTaken, reader, &yesterday)
	testutil.CreateInstance(t, s.db, book, models.LoanStatusTaken, reader, &nextWeek)
	foreign := testutil.CreateInstance(t, s.db, book, models.LoanStatusTaken, other, &nextWeek)

	resp, _ := s.get(t, "/api/v1/mybooks", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, env := s.get(t, "/api/v1/mybooks", s.token(t, reader))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var loans []handlers.BookInstanceResponse
	decode(t, env, &loans)
	require.Len(t, loans, 2)
	assert.Equal(t, overdue.ID, loans[0].ID)
	assert.True(t, loans[0].IsOverdue)
	assert.False(t, loans[1].IsOverdue)
	assert.Equal(t, "Taken", loans[0].StatusDisplay)

	resp, _ = s.get(t, "/api/v1/mybooks/"+overdue.ID.String(), s.token(t, reader))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = s.get(t, "/api/v1/mybooks/"+foreign.ID.String(), s.token(t, reader))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = s.get(t, "/api/v1/mybooks/not-a-uuid", s.token(t, reader))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestBookInstanceAdministration(t *testing.T) {
	s := newTestServer(t)
	reader := testutil.CreateUser(t, s.db, "reader1", "pw", models.RoleReader)
	librarian := testutil.CreateUser(t, s.db, "librarian", "pw", models.RoleLibrarian)
	book := testutil.CreateBook(t, s.db, "Emma", nil)

	resp, _ := s.get(t, "/api/v1/book-instances/new", s.token(t, reader))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, env := s.get(t, "/api/v1/book-instances/new", s.token(t, librarian))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var choices struct {
		StatusChoices []struct {
			Value string `json:"value"`
			Label string `json:"label"`
		} `json:"status_choices"`
	}
	decode(t, env, &choices)
	assert.Len(t, choices.StatusChoices, 4)

	payload := map[string]interface{}{"book_id": book.ID, "status": "p", "due_back": "2026-12-01", "reader_id": reader.ID}
	resp, env = s.sendJSON(t, fiber.MethodPost, "/api/v1/book-instances", s.token(t, reader), payload)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, env = s.sendJSON(t, fiber.MethodPost, "/api/v1/book-instances", s.token(t, librarian), payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Message)
	var created handlers.BookInstanceResponse
	decode(t, env, &created)
	assert.Equal(t, "p", created.Status)
	require.NotNil(t, created.DueBack)
	assert.Equal(t, "2026-12-01", *created.DueBack)

	resp, env = s.sendJSON(t, fiber.MethodPost, "/api/v1/book-instances", s.token(t, librarian), map[string]interface{}{"book_id": 999, "status": "z"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	var fieldErrors map[string]string
	decode(t, env, &fieldErrors)
	assert.Contains(t, fieldErrors, "status")

	resp, env = s.sendJSON(t, fiber.MethodPut, "/api/v1/book-instances/"+created.ID.String(), s.token(t, librarian), map[string]interface{}{"book_id": book.ID, "status": "g"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Message)
	var updated handlers.BookInstanceResponse
	decode(t, env, &updated)
	assert.Equal(t, "Can be taken", updated.StatusDisplay)
	assert.Nil(t, updated.DueBack)
}

func TestStaffCatalogEndpoints(t *testing.T) {
	s := newTestServer(t)
	reader := testutil.CreateUser(t, s.db, "reader1", "pw", models.RoleReader)
	librarian := testutil.CreateUser(t, s.db, "librarian", "pw", models.RoleLibrarian)

	resp, _ := s.sendJSON(t, fiber.MethodPost, "/api/v1/genres", s.token(t, reader), map[string]string{"name": "Poetry"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, env := s.sendJSON(t, fiber.MethodPost, "/api/v1/genres", s.token(t, librarian), map[string]string{"name": "Poetry"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var genre models.Genre
	decode(t, env, &genre)

	resp, env = s.sendJSON(t, fiber.MethodPost, "/api/v1/authors", s.token(t, librarian), map[string]string{
		"first_name":  "Emily",
		"last_name":   "Dickinson",
		"description": "Poet",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var author handlers.AuthorSummary
	decode(t, env, &author)

	resp, env = s.sendJSON(t, fiber.MethodPost, "/api/v1/books", s.token(t, librarian), map[string]interface{}{
		"title":     "Poems",
		"author_id": author.ID,
		"summary":   "Collected poems.",
		"isbn":      "9780316184137",
		"genre_ids": []uint{genre.ID},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Message)
	var book handlers.BookSummary
	decode(t, env, &book)
	assert.Equal(t, "Poetry", book.DisplayGenre)

	resp, env = s.get(t, "/api/v1/genres", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var genres []models.Genre
	decode(t, env, &genres)
	assert.Len(t, genres, 1)

	resp, _ = s.get(t, "/api/v1/upload/presign?filename=cover.jpg", s.token(t, reader))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = s.get(t, "/api/v1/upload/presign", s.token(t, librarian))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, env = s.get(t, "/api/v1/upload/presign?filename=cover.jpg", s.token(t, librarian))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var presign map[string]interface{}
	decode(t, env, &presign)
	assert.Equal(t, s.storage.BaseURL+"/covers/cover.jpg", presign["public_url"])
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
