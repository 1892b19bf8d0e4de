package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LoanStatus string

const (
	LoanStatusAdministered LoanStatus = "a"
	LoanStatusTaken        LoanStatus = "p"
	LoanStatusAvailable    LoanStatus = "g"
	LoanStatusReserved     LoanStatus = "r"
)

// LoanStatuses keeps the display order used by forms.
var LoanStatuses = []LoanStatus{
	LoanStatusAdministered,
	LoanStatusTaken,
	LoanStatusAvailable,
	LoanStatusReserved,
}

var loanStatusLabels = map[LoanStatus]string{
	LoanStatusAdministered: "Administered",
	LoanStatusTaken:        "Taken",
	LoanStatusAvailable:    "Can be taken",
	LoanStatusReserved:     "Reserved",
}

func (s LoanStatus) Valid() bool {
	_, ok := loanStatusLabels[s]
	return ok
}

func (s LoanStatus) Label() string {
	if label, ok := loanStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// BookInstance is a loanable copy of a Book.
type BookInstance struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id" example:"8b1f3c9e-2a0d-4c55-9f7e-0c6f1b2a3d4e"`
	BookID    *uint      `gorm:"index" json:"book_id"`
	Book      *Book      `gorm:"foreignKey:BookID;constraint:OnDelete:SET NULL" json:"book,omitempty"`
	DueBack   *time.Time `gorm:"type:date;index" json:"due_back"`
	Status    LoanStatus `gorm:"size:1;not null;default:a;index" json:"status" example:"p"`
	ReaderID  *uint      `gorm:"index" json:"reader_id"`
	Reader    *User      `gorm:"foreignKey:ReaderID;constraint:OnDelete:SET NULL" json:"reader,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (BookInstance) TableName() string {
	return "book_instances"
}

func (bi *BookInstance) BeforeCreate(tx *gorm.DB) error {
	if bi.ID == uuid.Nil {
		bi.ID = uuid.New()
	}
	if bi.Status == "" {
		bi.Status = LoanStatusAdministered
	}
	return nil
}

// IsOverdue reports whether the due date is set and falls on a day before now.
func (bi BookInstance) IsOverdue(now time.Time) bool {
	if bi.DueBack == nil {
		return false
	}
	dy, dm, dd := bi.DueBack.UTC().Date()
	ny, nm, nd := now.Date()
	due := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return due.Before(today)
}
