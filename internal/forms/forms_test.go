package forms

import (
	"strings"
	"testing"
	"time"

	"library-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) FieldErrors {
	t.Helper()
	require.Error(t, err)
	fe, ok := err.(FieldErrors)
	require.True(t, ok, "expected FieldErrors, got %T", err)
	return fe
}

func TestRegistrationFormValidation(t *testing.T) {
	valid := RegistrationForm{
		Username:  "reader.one",
		Email:     "reader@example.com",
		Password:  "pass",
		Password2: "pass",
	}
	require.NoError(t, Validate(valid))

	fe := fieldErrors(t, Validate(RegistrationForm{}))
	assert.Equal(t, "This field is required.", fe["username"])
	assert.Equal(t, "This field is required.", fe["email"])
	assert.Equal(t, "This field is required.", fe["password"])
	assert.Equal(t, "This field is required.", fe["password2"])

	bad := valid
	bad.Username = "has space"
	bad.Email = "not-an-email"
	fe = fieldErrors(t, Validate(bad))
	assert.Contains(t, fe["username"], "Enter a valid username")
	assert.Equal(t, "Enter a valid email address.", fe["email"])
}

func TestRegistrationFormNormalize(t *testing.T) {
	form := RegistrationForm{Username: "  reader ", Email: " r@example.com\n"}
	form.Normalize()
	assert.Equal(t, "reader", form.Username)
	assert.Equal(t, "r@example.com", form.Email)
}

func TestBookReviewFormLength(t *testing.T) {
	require.NoError(t, Validate(BookReviewForm{Content: strings.Repeat("a", 2000)}))

	fe := fieldErrors(t, Validate(BookReviewForm{Content: strings.Repeat("a", 2001)}))
	assert.Equal(t, "Ensure this value has at most 2000 characters.", fe["content"])

	form := BookReviewForm{Content: "   "}
	form.Normalize()
	fe = fieldErrors(t, Validate(form))
	assert.Equal(t, "This field is required.", fe["content"])
}

func TestBookFormGenres(t *testing.T) {
	form := BookForm{Title: "Emma", Summary: "Matchmaking.", ISBN: "9780141439587"}
	fe := fieldErrors(t, Validate(form))
	assert.Contains(t, fe, "genre_ids")

	form.GenreIDs = []uint{1}
	require.NoError(t, Validate(form))

	cover := "not a url"
	form.Cover = &cover
	fe = fieldErrors(t, Validate(form))
	assert.Equal(t, "Enter a valid URL.", fe["cover"])
}

func TestBookInstanceForm(t *testing.T) {
	fe := fieldErrors(t, Validate(BookInstanceForm{}))
	assert.Equal(t, "This field is required.", fe["book_id"])

	bookID := uint(3)
	form := BookInstanceForm{BookID: &bookID}
	require.NoError(t, Validate(form))
	assert.Equal(t, models.LoanStatusAdministered, form.LoanStatus())
	assert.Nil(t, form.DueDate())

	form.Status = "p"
	form.DueBack = "2026-11-01"
	require.NoError(t, Validate(form))
	assert.Equal(t, models.LoanStatusTaken, form.LoanStatus())
	require.NotNil(t, form.DueDate())
	assert.Equal(t, time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), *form.DueDate())

	form.Status = "x"
	form.DueBack = "01/11/2026"
	fe = fieldErrors(t, Validate(form))
	assert.Equal(t, "Select a valid choice.", fe["status"])
	assert.Equal(t, "Enter a valid date.", fe["due_back"])
}

func TestStatusChoices(t *testing.T) {
	choices := StatusChoices()
	require.Len(t, choices, 4)
	assert.Equal(t, StatusChoice{Value: "a", Label: "Administered"}, choices[0])
}

func TestFieldErrorsMessage(t *testing.T) {
	err := FieldErrors{"b": "second", "a": "first"}
	assert.Equal(t, "invalid form: a: first; b: second", err.Error())
}
