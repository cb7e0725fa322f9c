package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string `json:"name" validate:"required"`
	Seats int    `json:"num_seats" validate:"min=1,max=500"`
	Role  string `json:"role" validate:"omitempty,oneof=admin user"`
}

func TestValidateStruct(t *testing.T) {
	errs := ValidateStruct(sample{Seats: 501, Role: "root"})

	assert.Equal(t, "This field is required", errs["name"])
	assert.Equal(t, "Maximum is 500", errs["num_seats"])
	assert.Equal(t, "Must be one of: admin, user", errs["role"])

	assert.Nil(t, ValidateStruct(sample{Name: "x", Seats: 10}))
}

func TestFormatValidationErrors(t *testing.T) {
	got := FormatValidationErrors(map[string]string{"b": "two", "a": "one"})
	assert.Equal(t, []string{"a: one", "b: two"}, got)
}
