package accounts

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
	"github.com/dmitrijs2005/accountkeeper/internal/server/models"
)

// record is the on-disk shape of an account: a three element CBOR array
// [username, passwordHash, isDeleted]. There is no version tag, so any change
// here breaks every stored value.
type record struct {
	_            struct{} `cbor:",toarray"`
	Username     string
	PasswordHash string
	IsDeleted    bool
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	// Core Deterministic Encoding: identical accounts always encode to
	// identical bytes.
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("accounts: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	}.DecMode()
	if err != nil {
		panic("accounts: CBOR decoder initialization failed: " + err.Error())
	}
}

// Key returns the store key of username. The username is not escaped.
func Key(username string) []byte {
	return []byte(common.AccountKeyPrefix + username)
}

// Encode serializes an account record.
func Encode(a models.Account) ([]byte, error) {
	b, err := encMode.Marshal(record{
		Username:     a.Username,
		PasswordHash: a.PasswordHash,
		IsDeleted:    a.IsDeleted,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrEncode, err)
	}
	return b, nil
}

// Decode parses a value written by Encode. Truncated input, trailing bytes
// and values of the wrong shape fail with common.ErrDecode. Field contents
// are not validated.
func Decode(b []byte) (models.Account, error) {
	var r record
	if err := decMode.Unmarshal(b, &r); err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", common.ErrDecode, err)
	}
	return models.Account{
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		IsDeleted:    r.IsDeleted,
	}, nil
}
