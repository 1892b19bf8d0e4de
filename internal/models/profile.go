package models

import "time"

const DefaultProfilePhoto = "profile_pics/default.png"

type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Photo     string    `gorm:"not null;default:profile_pics/default.png" json:"photo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p Profile) HasDefaultPhoto() bool {
	return p.Photo == "" || p.Photo == DefaultProfilePhoto
}
