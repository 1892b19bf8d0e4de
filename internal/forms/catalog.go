package forms

import "strings"

type BookReviewForm struct {
	Content string `json:"content" form:"content" validate:"required,max=2000"`
}

func (f *BookReviewForm) Normalize() {
	f.Content = strings.TrimSpace(f.Content)
}

type GenreForm struct {
	Name string `json:"name" form:"name" validate:"required,max=200"`
}

type AuthorForm struct {
	FirstName   string `json:"first_name" form:"first_name" validate:"required,max=100"`
	LastName    string `json:"last_name" form:"last_name" validate:"required,max=100"`
	Description string `json:"description" form:"description" validate:"required"`
}

type BookForm struct {
	Title    string  `json:"title" form:"title" validate:"required,max=200"`
	AuthorID *uint   `json:"author_id" form:"author_id" validate:"omitempty,gt=0"`
	Summary  string  `json:"summary" form:"summary" validate:"required,max=1000"`
	ISBN     string  `json:"isbn" form:"isbn" validate:"required,max=13"`
	Cover    *string `json:"cover" form:"cover" validate:"omitempty,url"`
	GenreIDs []uint  `json:"genre_ids" form:"genre_ids" validate:"required,min=1,dive,gt=0"`
}
