package accounts

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
)

// StoreError is returned by every failing store operation. Kind is one of
// common.ErrStorageIO, common.ErrEncode, common.ErrDecode or
// common.ErrKeyEncoding; errors.Is matches both Kind and the cause.
type StoreError struct {
	Kind error
	Op   string
	Key  string
	Err  error
}

func (e *StoreError) Error() string {
	cause := fmt.Sprintf("%v: %v", e.Kind, e.Err)
	if errors.Is(e.Err, e.Kind) {
		cause = e.Err.Error()
	}
	if e.Key == "" {
		return e.Op + ": " + cause
	}
	return fmt.Sprintf("%s %q: %s", e.Op, e.Key, cause)
}

func (e *StoreError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

var storeKinds = []error{
	common.ErrStorageIO,
	common.ErrEncode,
	common.ErrDecode,
	common.ErrKeyEncoding,
}

// KindOf returns the store kind carried by err, or nil if err did not come
// from the store.
func KindOf(err error) error {
	var se *StoreError
	if !errors.As(err, &se) {
		return nil
	}
	for _, k := range storeKinds {
		if se.Kind == k {
			return k
		}
	}
	return nil
}

var errInvalidUTF8 = errors.New("key bytes are not valid utf-8")
