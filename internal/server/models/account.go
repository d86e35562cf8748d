package models

import "strings"

// Account is the stored account record. Records are never physically
// removed: deletion only flips IsDeleted.
type Account struct {
	Username     string
	PasswordHash string
	IsDeleted    bool
}

// AccountView is one row of the account listing. Password is the stored
// password hash when the server runs with hash exposure enabled, and empty
// otherwise.
type AccountView struct {
	Username  string
	Password  string
	IsDeleted bool
}

// AuthMethod selects how Authenticate answers a login.
type AuthMethod string

const (
	// AuthMethodNone means the caller sent no method.
	AuthMethodNone        AuthMethod = ""
	AuthMethodCredentials AuthMethod = "credentials"
	AuthMethodJWT         AuthMethod = "jwt"
)

// ParseAuthMethod normalizes a wire value. Unknown values are returned
// as-is so validation can report them.
func ParseAuthMethod(s string) AuthMethod {
	return AuthMethod(strings.ToLower(strings.TrimSpace(s)))
}

// Valid reports whether m is one of the supported methods.
func (m AuthMethod) Valid() bool {
	return m == AuthMethodCredentials || m == AuthMethodJWT
}

// ValidationError describes one rejected input field.
type ValidationError struct {
	Field   string
	Message string
}
