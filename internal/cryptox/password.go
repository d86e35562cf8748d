// Package cryptox implements credential hashing for stored accounts.
//
// Passwords are hashed with argon2id using a fresh random salt per password
// and stored as a PHC string:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<base64 salt>$<base64 key>
//
// The parameters travel with the hash, so older hashes keep verifying after
// the configured parameters change.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

const algorithmID = "argon2id"

var (
	ErrInvalidHash         = errors.New("invalid password hash format")
	ErrIncompatibleVersion = errors.New("incompatible argon2 version")
	ErrInvalidParams       = errors.New("invalid argon2 parameters")
)

// PasswordParams are the argon2id cost settings used for new hashes.
type PasswordParams struct {
	MemoryKB    uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultPasswordParams returns 64 MiB, one pass, four lanes, a 16 byte salt
// and a 32 byte key.
func DefaultPasswordParams() PasswordParams {
	return PasswordParams{
		MemoryKB:    64 * 1024,
		Iterations:  1,
		Parallelism: 4,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func (p PasswordParams) validate() error {
	switch {
	case p.Parallelism < 1:
		return fmt.Errorf("%w: parallelism must be >= 1", ErrInvalidParams)
	case p.MemoryKB < 8*uint32(p.Parallelism):
		return fmt.Errorf("%w: memory must be >= 8 KiB per lane", ErrInvalidParams)
	case p.Iterations < 1:
		return fmt.Errorf("%w: iterations must be >= 1", ErrInvalidParams)
	case p.SaltLength < 8:
		return fmt.Errorf("%w: salt length must be >= 8", ErrInvalidParams)
	case p.KeyLength < 16:
		return fmt.Errorf("%w: key length must be >= 16", ErrInvalidParams)
	}
	return nil
}

// PasswordHasher hashes and verifies account passwords. It is safe for
// concurrent use.
type PasswordHasher struct {
	params PasswordParams
	rand   io.Reader
}

func NewPasswordHasher(params PasswordParams) (*PasswordHasher, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	return &PasswordHasher{params: params, rand: rand.Reader}, nil
}

// Hash derives an argon2id key from password and a new random salt.
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := io.ReadFull(h.rand, salt); err != nil {
		return "", fmt.Errorf("read salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt,
		h.params.Iterations, h.params.MemoryKB, h.params.Parallelism, h.params.KeyLength)

	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algorithmID,
		argon2.Version,
		h.params.MemoryKB,
		h.params.Iterations,
		h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify recomputes the key for password with the salt and parameters
// stored in encoded and compares the two in constant time. A malformed
// encoded hash is an error, a mismatch is (false, nil).
func (h *PasswordHasher) Verify(password, encoded string) (bool, error) {
	stored, err := decodeHash(encoded)
	if err != nil {
		return false, err
	}

	candidate := argon2.IDKey([]byte(password), stored.salt,
		stored.params.Iterations, stored.params.MemoryKB, stored.params.Parallelism, uint32(len(stored.key)))

	return subtle.ConstantTimeCompare(candidate, stored.key) == 1, nil
}

type decodedHash struct {
	params PasswordParams
	salt   []byte
	key    []byte
}

func decodeHash(encoded string) (*decodedHash, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != algorithmID {
		return nil, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, ErrInvalidHash
	}
	if version != argon2.Version {
		return nil, ErrIncompatibleVersion
	}

	var (
		d           decodedHash
		parallelism uint32
	)
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &d.params.MemoryKB, &d.params.Iterations, &parallelism); err != nil {
		return nil, ErrInvalidHash
	}
	if parallelism < 1 || parallelism > 255 {
		return nil, ErrInvalidParams
	}
	d.params.Parallelism = uint8(parallelism)

	var err error
	if d.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, ErrInvalidHash
	}
	if d.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, ErrInvalidHash
	}
	d.params.SaltLength = uint32(len(d.salt))
	d.params.KeyLength = uint32(len(d.key))

	if err := d.params.validate(); err != nil {
		return nil, err
	}
	return &d, nil
}
