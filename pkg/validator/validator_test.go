package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name       string `json:"name" validate:"required,min=3"`
	Email      string `json:"email" validate:"required,email"`
	Speciality string `json:"speciality" validate:"required,speciality"`
	District   string `json:"district" validate:"omitempty,district"`
	Age        int    `json:"age" validate:"gte=18,lte=100"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	errs := v.Validate(sample{
		Name:       "Dr. Priya",
		Email:      "priya@example.com",
		Speciality: "Cardiologist",
		District:   "Chennai",
		Age:        40,
	})
	assert.Nil(t, errs)
}

func TestValidate_CollectsEveryField(t *testing.T) {
	v := New()
	errs := v.Validate(sample{
		Name:       "Dr",
		Email:      "nope",
		Speciality: "Wizard",
		District:   "Atlantis",
		Age:        7,
	})
	require.Len(t, errs, 5)

	byField := map[string]FieldError{}
	for _, e := range errs {
		byField[e.Field] = e
	}
	assert.Equal(t, "min", byField["name"].Tag)
	assert.Equal(t, "email must be a valid email address", byField["email"].Message)
	assert.Equal(t, "speciality is not a known speciality", byField["speciality"].Message)
	assert.Equal(t, "district", byField["district"].Tag)
	assert.Equal(t, "age must be 18 or more", byField["age"].Message)
}
