package forms

import (
	"time"

	"library-backend/internal/models"
)

const DateLayout = "2006-01-02"

// BookInstanceForm creates or edits a loanable copy. An empty status
// falls back to the administered state.
type BookInstanceForm struct {
	BookID   *uint  `json:"book_id" form:"book_id" validate:"required,gt=0"`
	Status   string `json:"status" form:"status" validate:"omitempty,oneof=a p g r"`
	DueBack  string `json:"due_back" form:"due_back" validate:"omitempty,datetime=2006-01-02"`
	ReaderID *uint  `json:"reader_id" form:"reader_id" validate:"omitempty,gt=0"`
}

func (f BookInstanceForm) LoanStatus() models.LoanStatus {
	if f.Status == "" {
		return models.LoanStatusAdministered
	}
	return models.LoanStatus(f.Status)
}

// DueDate parses DueBack; call it only after Validate succeeded.
func (f BookInstanceForm) DueDate() *time.Time {
	if f.DueBack == "" {
		return nil
	}
	due, err := time.Parse(DateLayout, f.DueBack)
	if err != nil {
		return nil
	}
	return &due
}

// StatusChoice describes one option of the status field.
type StatusChoice struct {
	Value string `json:"value" example:"g"`
	Label string `json:"label" example:"Can be taken"`
}

func StatusChoices() []StatusChoice {
	choices := make([]StatusChoice, 0, len(models.LoanStatuses))
	for _, status := range models.LoanStatuses {
		choices = append(choices, StatusChoice{Value: string(status), Label: status.Label()})
	}
	return choices
}
