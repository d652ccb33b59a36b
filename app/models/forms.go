package models

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// PostForm carries the user-submitted post fields. The author and publish
// time are never taken from the form; the service stamps them.
type PostForm struct {
	Title   string            `validate:"required,min=3,max=200"`
	Content string            `validate:"required"`
	Errors  map[string]string `validate:"-"`
}

// Validate checks the form and fills Errors with per-field messages.
func (f *PostForm) Validate() error {
	err := validate.Struct(f)
	f.Errors = fieldErrors(err)
	return err
}

// CommentForm carries the user-submitted comment fields. Approval is not
// user-settable.
type CommentForm struct {
	Author  string            `validate:"required,min=2,max=50"`
	Content string            `validate:"required,min=1,max=500"`
	Errors  map[string]string `validate:"-"`
}

// Validate checks the form and fills Errors with per-field messages.
func (f *CommentForm) Validate() error {
	err := validate.Struct(f)
	f.Errors = fieldErrors(err)
	return err
}

// RegisterForm carries the fields for creating an account.
type RegisterForm struct {
	Username string            `validate:"required,min=3,max=30"`
	Email    string            `validate:"required,email"`
	Password string            `validate:"required,min=6"`
	Errors   map[string]string `validate:"-"`
}

// Validate checks the form and fills Errors with per-field messages.
func (f *RegisterForm) Validate() error {
	err := validate.Struct(f)
	f.Errors = fieldErrors(err)
	return err
}

// LoginForm carries the login credentials.
type LoginForm struct {
	Username string            `validate:"required"`
	Password string            `validate:"required"`
	Errors   map[string]string `validate:"-"`
}

// Validate checks the form and fills Errors with per-field messages.
func (f *LoginForm) Validate() error {
	err := validate.Struct(f)
	f.Errors = fieldErrors(err)
	return err
}

// fieldErrors converts a validator error into a field -> message map
// suitable for re-rendering a form.
func fieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	out := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out[fe.Field()] = messageFor(fe)
		}
		return out
	}
	out["Form"] = err.Error()
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "is too short (minimum " + fe.Param() + " characters)"
	case "max":
		return "is too long (maximum " + fe.Param() + " characters)"
	case "email":
		return "must be a valid email address"
	default:
		return "is invalid"
	}
}
