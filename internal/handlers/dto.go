package handlers

import (
	"time"

	"library-backend/internal/models"

	"github.com/google/uuid"
)

type AuthorSummary struct {
	ID           uint   `json:"id" example:"1"`
	FirstName    string `json:"first_name" example:"Arthur"`
	LastName     string `json:"last_name" example:"Doyle"`
	DisplayBooks string `json:"display_books" example:"A Study in Scarlet, The Sign of the Four"`
}

type AuthorDetail struct {
	AuthorSummary
	Description string        `json:"description"`
	Books       []BookSummary `json:"books"`
}

type BookSummary struct {
	ID           uint           `json:"id" example:"1"`
	Title        string         `json:"title" example:"The Hound of the Baskervilles"`
	Summary      string         `json:"summary"`
	ISBN         string         `json:"isbn" example:"9780140437867"`
	Cover        *string        `json:"cover"`
	Author       *AuthorSummary `json:"author,omitempty"`
	Genres       []models.Genre `json:"genres"`
	DisplayGenre string         `json:"display_genre" example:"Detective, Classic"`
}

type BookDetail struct {
	BookSummary
	Reviews []ReviewResponse `json:"reviews"`
}

type ReviewResponse struct {
	ID          uint      `json:"id" example:"1"`
	BookID      *uint     `json:"book_id" example:"1"`
	Reviewer    string    `json:"reviewer" example:"reader1"`
	Content     string    `json:"content" example:"Gripping from start to finish."`
	DateCreated time.Time `json:"date_created"`
}

type BookInstanceResponse struct {
	ID            uuid.UUID    `json:"id"`
	Book          *BookSummary `json:"book,omitempty"`
	BookID        *uint        `json:"book_id"`
	DueBack       *string      `json:"due_back" example:"2026-11-01"`
	Status        string       `json:"status" example:"p"`
	StatusDisplay string       `json:"status_display" example:"Taken"`
	ReaderID      *uint        `json:"reader_id"`
	Reader        string       `json:"reader,omitempty" example:"reader1"`
	IsOverdue     bool         `json:"is_overdue"`
}

type UserResponse struct {
	ID       uint   `json:"id" example:"1"`
	Username string `json:"username" example:"reader1"`
	Email    string `json:"email" example:"reader1@example.com"`
	Role     string `json:"role" example:"reader"`
	Photo    string `json:"photo" example:"profile_pics/default.png"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

type SearchResponse struct {
	Query string        `json:"query" example:"hound"`
	Books []BookSummary `json:"books"`
}

func newAuthorSummary(a *models.Author) *AuthorSummary {
	if a == nil {
		return nil
	}
	return &AuthorSummary{
		ID:           a.ID,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		DisplayBooks: a.DisplayBooks(),
	}
}

func newAuthorSummaries(authors []models.Author) []AuthorSummary {
	out := make([]AuthorSummary, 0, len(authors))
	for i := range authors {
		out = append(out, *newAuthorSummary(&authors[i]))
	}
	return out
}

func newAuthorDetail(a *models.Author) AuthorDetail {
	books := make([]BookSummary, 0, len(a.Books))
	for i := range a.Books {
		book := a.Books[i]
		book.Author = nil
		books = append(books, newBookSummary(&book))
	}
	return AuthorDetail{
		AuthorSummary: *newAuthorSummary(a),
		Description:   a.Description,
		Books:         books,
	}
}

func newBookSummary(b *models.Book) BookSummary {
	genres := b.Genres
	if genres == nil {
		genres = []models.Genre{}
	}
	return BookSummary{
		ID:           b.ID,
		Title:        b.Title,
		Summary:      b.Summary,
		ISBN:         b.ISBN,
		Cover:        b.Cover,
		Author:       newAuthorSummary(b.Author),
		Genres:       genres,
		DisplayGenre: b.DisplayGenre(),
	}
}

func newBookSummaries(books []models.Book) []BookSummary {
	out := make([]BookSummary, 0, len(books))
	for i := range books {
		out = append(out, newBookSummary(&books[i]))
	}
	return out
}

func newBookDetail(b *models.Book) BookDetail {
	reviews := make([]ReviewResponse, 0, len(b.Reviews))
	for i := range b.Reviews {
		reviews = append(reviews, newReviewResponse(&b.Reviews[i]))
	}
	return BookDetail{
		BookSummary: newBookSummary(b),
		Reviews:     reviews,
	}
}

func newReviewResponse(r *models.BookReview) ReviewResponse {
	resp := ReviewResponse{
		ID:          r.ID,
		BookID:      r.BookID,
		Content:     r.Content,
		DateCreated: r.DateCreated,
	}
	if r.Reviewer != nil {
		resp.Reviewer = r.Reviewer.Username
	}
	return resp
}

func newBookInstanceResponse(bi *models.BookInstance, now time.Time) BookInstanceResponse {
	resp := BookInstanceResponse{
		ID:            bi.ID,
		BookID:        bi.BookID,
		Status:        string(bi.Status),
		StatusDisplay: bi.Status.Label(),
		ReaderID:      bi.ReaderID,
		IsOverdue:     bi.IsOverdue(now),
	}
	if bi.Book != nil {
		book := newBookSummary(bi.Book)
		resp.Book = &book
	}
	if bi.DueBack != nil {
		due := bi.DueBack.UTC().Format("2006-01-02")
		resp.DueBack = &due
	}
	if bi.Reader != nil {
		resp.Reader = bi.Reader.Username
	}
	return resp
}

func newBookInstanceResponses(instances []models.BookInstance, now time.Time) []BookInstanceResponse {
	out := make([]BookInstanceResponse, 0, len(instances))
	for i := range instances {
		out = append(out, newBookInstanceResponse(&instances[i], now))
	}
	return out
}

func newUserResponse(u *models.User) UserResponse {
	resp := UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     string(u.Role),
		Photo:    models.DefaultProfilePhoto,
	}
	if u.Profile != nil && u.Profile.Photo != "" {
		resp.Photo = u.Profile.Photo
	}
	return resp
}
