package models

import "time"

type Role string

const (
	RoleReader    Role = "reader"
	RoleLibrarian Role = "librarian"
	RoleAdmin     Role = "admin"
)

type Permission string

const (
	PermViewBookInstance Permission = "view_bookinstance"
	PermAddBookInstance  Permission = "add_bookinstance"
	PermChangeCatalog    Permission = "change_catalog"
)

var rolePermissions = map[Role][]Permission{
	RoleReader:    {PermViewBookInstance},
	RoleLibrarian: {PermViewBookInstance, PermAddBookInstance, PermChangeCatalog},
	RoleAdmin:     {PermViewBookInstance, PermAddBookInstance, PermChangeCatalog},
}

func (r Role) Can(p Permission) bool {
	for _, granted := range rolePermissions[r] {
		if granted == p {
			return true
		}
	}
	return false
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null;size:150" json:"username" example:"reader1"`
	Email        string    `gorm:"index;size:254" json:"email,omitempty" example:"reader1@example.com"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"size:20;not null;default:reader" json:"role,omitempty"`
	Profile      *Profile  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u User) Can(p Permission) bool {
	return u.Role.Can(p)
}
