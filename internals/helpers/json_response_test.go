package helper

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationFieldErrorsGroupsByField(t *testing.T) {
	type form struct {
		Email string `validate:"required,email"`
		Name  string `validate:"required,min=3"`
	}

	err := validator.New().Struct(form{Email: "not-an-email", Name: ""})
	require.Error(t, err)

	fields := ValidationFieldErrors(err)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields["name"], "is required")
}

func TestValidationFieldErrorsHandlesPlainErrors(t *testing.T) {
	fields := ValidationFieldErrors(errors.New("boom"))
	require.Contains(t, fields, "_")
	assert.Equal(t, []string{"boom"}, fields["_"])
}

func TestResolvePagingAndPagination(t *testing.T) {
	p := BuildPaginationFromPage(45, 2, 20)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)
}
