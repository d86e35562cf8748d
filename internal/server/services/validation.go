package services

import (
	"strings"

	"github.com/dmitrijs2005/accountkeeper/internal/server/models"
)

const (
	fieldUsername = "username"
	fieldPassword = "password"
	fieldMethod   = "method"
)

type violations []models.ValidationError

func (v *violations) add(field, message string) {
	*v = append(*v, models.ValidationError{Field: field, Message: message})
}

func (v violations) err() error {
	if len(v) == 0 {
		return nil
	}
	return &BadRequestError{Violations: v}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// validateCredentials checks both fields and reports every empty one.
func validateCredentials(username, password string) error {
	var v violations
	if blank(username) {
		v.add(fieldUsername, "username is required")
	}
	if blank(password) {
		v.add(fieldPassword, "password is required")
	}
	return v.err()
}

// validateLogin checks a login request. A missing method ends validation:
// whether a password is needed depends on it.
func validateLogin(username, password string, method models.AuthMethod) error {
	var v violations
	if blank(username) {
		v.add(fieldUsername, "username is required")
	}

	switch {
	case method == models.AuthMethodNone:
		v.add(fieldMethod, "method is required")
		return v.err()
	case !method.Valid():
		v.add(fieldMethod, "unsupported method "+string(method))
		return v.err()
	}

	if method == models.AuthMethodCredentials && blank(password) {
		v.add(fieldPassword, "password is required")
	}
	return v.err()
}
