package common

import (
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

type sampleForm struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required,phone10"`
	Email string `json:"email" validate:"omitempty,email"`
}

func TestFieldErrorsUsesJSONNames(t *testing.T) {
	v := NewValidator()
	err := v.Struct(sampleForm{Phone: "12345", Email: "nope"})
	require.Error(t, err)

	fields := FieldErrors(err, map[string]string{"name.required": "Name is required"})
	require.Equal(t, "Name is required", fields["name"])
	require.Equal(t, "Please enter a valid 10-digit phone number", fields["phone"])
	require.Equal(t, "Please enter a valid email address", fields["email"])
}

func TestPhone10RejectsSigns(t *testing.T) {
	v := NewValidator()
	require.NoError(t, v.Struct(sampleForm{Name: "A", Phone: "9876543210"}))
	require.Error(t, v.Struct(sampleForm{Name: "A", Phone: "-987654321"}))
	require.Error(t, v.Struct(sampleForm{Name: "A", Phone: "98765 4321"}))
}

func TestValidationErrorShape(t *testing.T) {
	appErr := ValidationError(map[string]string{"name": "Name is required"})
	require.Equal(t, http.StatusUnprocessableEntity, appErr.HTTPStatus)
	require.True(t, IsAppError(appErr))
	require.Nil(t, FieldErrors(appErr, nil))
}

func TestNewValidatorRegistersPhone10(t *testing.T) {
	var v *validator.Validate
	require.NotPanics(t, func() { v = NewValidator() })
	// An unregistered tag makes the validator panic, so this also proves the registration took.
	require.NotPanics(t, func() { require.NoError(t, v.Var("9876543210", "phone10")) })
	require.Error(t, v.Var("98765", "phone10"))
}
