package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"food-ordering-api/models"
	"food-ordering-api/statemachine"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var once sync.Once

// Register installs the custom tags on gin's validator. Safe to call repeatedly.
func Register() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(fieldName)
		_ = v.RegisterValidation("userrole", validUserRole)
		_ = v.RegisterValidation("paymentmethod", validPaymentMethod)
		_ = v.RegisterValidation("orderstatus", validOrderStatus)
		_ = v.RegisterValidation("userstatus", validUserStatus)
	})
}

// fieldName reports errors under the name the client sent
func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

func validUserRole(fl validator.FieldLevel) bool {
	role := models.UserRole(fl.Field().String())
	for _, r := range models.SelfRegisterRoles {
		if role == r {
			return true
		}
	}
	return false
}

func validPaymentMethod(fl validator.FieldLevel) bool {
	pm := models.PaymentMethod(fl.Field().String())
	for _, m := range models.AllPaymentMethods {
		if pm == m {
			return true
		}
	}
	return false
}

func validOrderStatus(fl validator.FieldLevel) bool {
	return statemachine.IsKnown(models.OrderStatus(fl.Field().String()))
}

func validUserStatus(fl validator.FieldLevel) bool {
	s := models.UserStatus(fl.Field().String())
	return s == models.UserActive || s == models.UserSuspended
}

// FieldErrors maps each failing field to a readable rule message.
// It returns nil when err is not a validation error.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s entries", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be %s or more", fe.Param())
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "userrole":
		return "must be one of: " + joinRoles(models.SelfRegisterRoles)
	case "paymentmethod":
		return "must be one of: cash, card, online"
	case "orderstatus":
		return "is not a known order status"
	case "userstatus":
		return "must be one of: active, suspended"
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}

func joinRoles(roles []models.UserRole) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}
