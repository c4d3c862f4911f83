package auth

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// LoginRequest is the sign-in form for both the shop and the backoffice.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.Errors{
		"email": validation.Validate(r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("email is not valid"),
		),
		"password": validation.Validate(r.Password,
			validation.Required.Error("password is required"),
			validation.Length(6, 128).Error("password must be between 6 and 128 characters"),
		),
	}.Filter()
}
