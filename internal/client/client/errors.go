package client

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// FieldViolation is one rejected request field reported by the server.
type FieldViolation struct {
	Field       string
	Description string
}

// BadRequestError is returned for InvalidArgument responses. It matches
// common.ErrBadRequest.
type BadRequestError struct {
	Message    string
	Violations []FieldViolation
}

func (e *BadRequestError) Error() string {
	if len(e.Violations) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Description)
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

// Is lets errors.Is(err, common.ErrBadRequest) match.
func (e *BadRequestError) Is(target error) bool {
	return target == common.ErrBadRequest
}
