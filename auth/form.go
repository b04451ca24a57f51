package auth

import (
	"strings"

	"github.com/domonda/go-types/email"
)

// MinPasswordLength is the minimum length of a registered password.
const MinPasswordLength = 8

// FieldErrors maps form field names to user facing messages.
type FieldErrors map[string]string

// Add sets the message for field if it has none yet.
func (e FieldErrors) Add(field, message string) {
	if _, ok := e[field]; !ok {
		e[field] = message
	}
}

// LoginForm holds the values of the login form.
type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate returns the field errors of the form or nil.
func (f *LoginForm) Validate() FieldErrors {
	errs := make(FieldErrors)
	validateEmail(errs, f.Email)
	if f.Password == "" {
		errs.Add("password", "Password is required")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// RegisterForm holds the values of the registration form.
type RegisterForm struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
}

// Validate returns the field errors of the form or nil.
func (f *RegisterForm) Validate() FieldErrors {
	errs := make(FieldErrors)
	if strings.TrimSpace(f.Name) == "" {
		errs.Add("name", "Name is required")
	}
	validateEmail(errs, f.Email)
	switch {
	case f.Password == "":
		errs.Add("password", "Password is required")
	case len(f.Password) < MinPasswordLength:
		errs.Add("password", "Password must be at least 8 characters")
	}
	if f.ConfirmPassword != f.Password {
		errs.Add("confirm_password", "Passwords do not match")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateEmail(errs FieldErrors, addr string) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		errs.Add("email", "Email is required")
		return
	}
	if email.Address(addr).Validate() != nil {
		errs.Add("email", "Email is invalid")
	}
}
