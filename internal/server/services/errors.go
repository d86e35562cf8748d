package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
	"github.com/dmitrijs2005/accountkeeper/internal/server/models"
	"github.com/dmitrijs2005/accountkeeper/internal/server/repositories/accounts"
)

// BadRequestError carries every rejected field of a request. It matches
// common.ErrBadRequest under errors.Is.
type BadRequestError struct {
	Violations []models.ValidationError
}

func (e *BadRequestError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return fmt.Sprintf("%v: %s", common.ErrBadRequest, strings.Join(parts, "; "))
}

func (e *BadRequestError) Unwrap() error {
	return common.ErrBadRequest
}

// Fields lists the violated field names in order.
func (e *BadRequestError) Fields() []string {
	out := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		out = append(out, v.Field)
	}
	return out
}

// mapRepositoryError lifts a store error into the service layer as
// common.ErrRepository. The store kind stays matchable; a cause that does
// not carry one is reported as common.ErrStorageIO. Context errors pass
// through untouched.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if accounts.KindOf(err) == nil {
		return fmt.Errorf("%w: %w: %w", common.ErrRepository, common.ErrStorageIO, err)
	}
	return fmt.Errorf("%w: %w", common.ErrRepository, err)
}
