package models

import (
	"strings"
	"time"
)

type Author struct {
	ID          uint      `gorm:"primaryKey" json:"id" example:"1"`
	FirstName   string    `gorm:"not null;size:100;index" json:"first_name" example:"Arthur"`
	LastName    string    `gorm:"not null;size:100;index" json:"last_name" example:"Doyle"`
	Description string    `gorm:"type:text" json:"description"`
	Books       []Book    `gorm:"foreignKey:AuthorID" json:"books,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Author) TableName() string {
	return "authors"
}

func (a Author) String() string {
	return a.LastName + " " + a.FirstName
}

// DisplayBooks lists the titles of the first three loaded books.
func (a Author) DisplayBooks() string {
	titles := make([]string, 0, 3)
	for i, book := range a.Books {
		if i == 3 {
			break
		}
		titles = append(titles, book.Title)
	}
	return strings.Join(titles, ", ")
}
