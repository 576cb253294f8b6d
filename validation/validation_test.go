package validation

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/require"
)

type registerForm struct {
	Name     string `json:"name" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,userrole"`
}

type checkoutForm struct {
	PaymentMethod string `json:"paymentMethod" binding:"required,paymentmethod"`
	Status        string `json:"status" binding:"omitempty,orderstatus"`
}

func TestRegisterRules(t *testing.T) {
	Register()

	err := binding.Validator.ValidateStruct(&registerForm{
		Name: "Al", Email: "nope", Password: "123", Role: "admin",
	})
	require.Error(t, err)

	fields := FieldErrors(err)
	require.Equal(t, "must be at least 3 characters", fields["name"])
	require.Equal(t, "must be a valid email address", fields["email"])
	require.Equal(t, "must be at least 6 characters", fields["password"])
	require.Equal(t, "must be one of: customer, owner", fields["role"])

	require.NoError(t, binding.Validator.ValidateStruct(&registerForm{
		Name: "Alice", Email: "alice@example.com", Password: "secret1", Role: "owner",
	}))
}

func TestCustomTags(t *testing.T) {
	Register()

	require.NoError(t, binding.Validator.ValidateStruct(&checkoutForm{PaymentMethod: "card", Status: "preparing"}))

	err := binding.Validator.ValidateStruct(&checkoutForm{PaymentMethod: "bitcoin", Status: "lost"})
	fields := FieldErrors(err)
	require.Contains(t, fields, "paymentMethod")
	require.Contains(t, fields, "status")
}

func TestFieldErrors_NonValidationError(t *testing.T) {
	require.Nil(t, FieldErrors(errors.New("boom")))
	require.Nil(t, FieldErrors(nil))
}
