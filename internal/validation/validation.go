// Package validation performs field-level input validation for the API.
// Each validator returns a map of field name to message; an empty map
// means the input is valid.
package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Errors maps a field name to its validation message.
type Errors map[string]string

func isEmpty(value string) bool {
	return strings.TrimSpace(value) == ""
}

func isEmail(value string) bool {
	return validate.Var(value, "required,email") == nil
}

// Register validates registration input.
func Register(name, email, password string) Errors {
	errs := Errors{}

	if !isEmpty(name) && (len(name) < 2 || len(name) > 30) {
		errs["name"] = "Name must be between 2 and 30 characters"
	}
	if isEmpty(name) {
		errs["name"] = "Name field is required"
	}

	if !isEmpty(email) && !isEmail(email) {
		errs["email"] = "Email is invalid"
	}
	if isEmpty(email) {
		errs["email"] = "Email field is required"
	}

	if !isEmpty(password) && (len(password) < 6 || len(password) > 30) {
		errs["password"] = "Password must be between 6 and 30 characters"
	}
	if isEmpty(password) {
		errs["password"] = "Password field is required"
	}

	return errs
}

// Login validates login input.
func Login(email, password string) Errors {
	errs := Errors{}

	if !isEmpty(email) && !isEmail(email) {
		errs["email"] = "Email is invalid"
	}
	if isEmpty(email) {
		errs["email"] = "Email field is required"
	}

	if isEmpty(password) {
		errs["password"] = "Password field is required"
	}

	return errs
}

// PostInput validates the body of a new post or comment.
func PostInput(text, name, avatar string) Errors {
	errs := Errors{}

	if !isEmpty(text) && (len(text) < 10 || len(text) > 300) {
		errs["text"] = "Post must be between 10 and 300 characters"
	}
	if isEmpty(text) {
		errs["text"] = "Text field is required"
	}

	if isEmpty(name) {
		errs["name"] = "Name field is required"
	}
	if isEmpty(avatar) {
		errs["avatar"] = "Avatar field is required"
	}

	return errs
}
