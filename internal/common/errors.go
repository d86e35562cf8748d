// Package common defines shared constants and sentinel errors used across
// the accountkeeper server, store and CLI. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Generic lookups.
	ErrorNotFound = errors.New("not found")
	ErrorInternal = errors.New("internal error")

	// Store-level kinds. Every error returned by the account store matches
	// exactly one of these.
	ErrStorageIO   = errors.New("storage io error")
	ErrEncode      = errors.New("record encode error")
	ErrDecode      = errors.New("record decode error")
	ErrKeyEncoding = errors.New("stored key is not valid utf-8")

	// Service-level kinds.
	ErrRepository         = errors.New("repository error")
	ErrHashing            = errors.New("password hashing error")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotActive      = errors.New("user is not active or deleted")
	ErrBadRequest         = errors.New("bad request")
	ErrToken              = errors.New("token error")

	// Token lifecycle and key material.
	ErrSigningKey   = errors.New("signing key is empty")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
