package models

import (
	"strings"
	"time"
)

type Book struct {
	ID        uint         `gorm:"primaryKey" json:"id" example:"1"`
	Title     string       `gorm:"not null;size:200;index" json:"title" example:"The Hound of the Baskervilles"`
	AuthorID  *uint        `gorm:"index" json:"author_id"`
	Author    *Author      `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL" json:"author,omitempty"`
	Summary   string       `gorm:"type:text;not null" json:"summary"`
	Cover     *string      `json:"cover"`
	ISBN      string       `gorm:"column:isbn;size:13" json:"isbn" example:"9780140437867"`
	Genres    []Genre      `gorm:"many2many:book_genres;" json:"genres,omitempty"`
	Reviews   []BookReview `gorm:"foreignKey:BookID" json:"reviews,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

// DisplayGenre lists the names of the first three loaded genres.
func (b Book) DisplayGenre() string {
	names := make([]string, 0, 3)
	for i, genre := range b.Genres {
		if i == 3 {
			break
		}
		names = append(names, genre.Name)
	}
	return strings.Join(names, ", ")
}
