package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email string   `json:"email" validate:"required,email"`
	Price *float64 `json:"price" validate:"required,gte=0"`
	Role  string   `json:"role"  validate:"omitempty,oneof=admin user"`
	Name  string   `json:"-"     validate:"max=3"`
}

func TestDescribe(t *testing.T) {
	t.Parallel()
	v := New()

	neg := -1.0
	err := v.Struct(sample{Email: "nope", Price: &neg, Role: "root", Name: "long"})
	require.Error(t, err)
	assert.Equal(t,
		"email must be a valid email; price must be at least 0; role must be one of [admin user]; Name must be at most 3 characters",
		Describe(err))

	err = v.Struct(sample{})
	assert.Equal(t, "email is required; price is required", Describe(err))

	assert.Equal(t, "plain", Describe(errors.New("plain")))
}
