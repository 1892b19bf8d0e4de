package models

import "time"

type Genre struct {
	ID        uint      `gorm:"primaryKey" json:"id" example:"1"`
	Name      string    `gorm:"not null;size:200;index" json:"name" example:"Detective"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Genre) TableName() string {
	return "genres"
}

// BookGenre is the join table behind Book.Genres.
type BookGenre struct {
	BookID  uint `gorm:"primaryKey" json:"book_id"`
	GenreID uint `gorm:"primaryKey" json:"genre_id"`
}

func (BookGenre) TableName() string {
	return "book_genres"
}
