package routes

import (
	"library-backend/internal/handlers"
	"library-backend/internal/middleware"
	"library-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type Handlers struct {
	Catalog *handlers.CatalogHandler
	Loan    *handlers.LoanHandler
	Account *handlers.AccountHandler
	Upload  *handlers.UploadHandler
}

func Setup(app *fiber.App, h Handlers, auth middleware.Authenticator, log *logrus.Logger) {
	// API versioning
	api := app.Group("/api")
	v1 := api.Group("/v1", middleware.Authenticate(auth, log))

	staff := middleware.RequirePermission(models.PermChangeCatalog)

	// Catalog routes - public browsing, staff edits
	v1.Get("/", h.Catalog.Index)
	v1.Get("/search", h.Catalog.Search)

	genres := v1.Group("/genres")
	{
		genres.Get("/", h.Catalog.GetGenres)
		genres.Post("/", staff, h.Catalog.CreateGenre)
	}

	authors := v1.Group("/authors")
	{
		authors.Get("/", h.Catalog.GetAuthors)
		authors.Get("/:id", h.Catalog.GetAuthor)
		authors.Post("/", staff, h.Catalog.CreateAuthor)
	}

	books := v1.Group("/books")
	{
		books.Get("/", h.Catalog.GetBooks)
		books.Get("/:id", h.Catalog.GetBook)
		books.Post("/", staff, h.Catalog.CreateBook)
		books.Post("/:id/reviews", middleware.RequireLogin(), h.Catalog.CreateReview)
	}

	// Loan routes
	mybooks := v1.Group("/mybooks", middleware.RequirePermission(models.PermViewBookInstance))
	{
		mybooks.Get("/", h.Loan.GetMyBooks)
		mybooks.Get("/:id", h.Loan.GetMyBook)
	}

	instances := v1.Group("/book-instances", middleware.RequirePermission(models.PermAddBookInstance))
	{
		instances.Get("/new", h.Loan.NewBookInstanceForm)
		instances.Post("/", h.Loan.CreateBookInstance)
		instances.Put("/:id", h.Loan.UpdateBookInstance)
	}

	// Account routes
	v1.Post("/register", h.Account.Register)
	v1.Post("/login", h.Account.Login)

	profile := v1.Group("/profile", middleware.RequireLogin())
	{
		profile.Get("/", h.Account.GetProfile)
		profile.Put("/", h.Account.UpdateProfile)
	}

	upload := v1.Group("/upload", staff)
	{
		upload.Get("/presign", h.Upload.GetPresignedURL)
	}
}
