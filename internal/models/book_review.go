package models

import "time"

type BookReview struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BookID      *uint     `gorm:"index" json:"book_id"`
	Book        *Book     `gorm:"foreignKey:BookID;constraint:OnDelete:SET NULL" json:"-"`
	ReviewerID  *uint     `gorm:"index" json:"reviewer_id"`
	Reviewer    *User     `gorm:"foreignKey:ReviewerID;constraint:OnDelete:SET NULL" json:"reviewer,omitempty"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	DateCreated time.Time `gorm:"autoCreateTime" json:"date_created"`
}

func (BookReview) TableName() string {
	return "book_reviews"
}
