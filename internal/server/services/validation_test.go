package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
	"github.com/dmitrijs2005/accountkeeper/internal/server/models"
	"github.com/dmitrijs2005/accountkeeper/internal/server/repositories/accounts"
)

func TestValidateLogin_Messages(t *testing.T) {
	t.Parallel()

	err := validateLogin("", "", models.AuthMethod("kerberos"))
	var br *BadRequestError
	require.ErrorAs(t, err, &br)
	assert.Equal(t, []models.ValidationError{
		{Field: "username", Message: "username is required"},
		{Field: "method", Message: "unsupported method kerberos"},
	}, br.Violations)
	assert.Equal(t, "bad request: username: username is required; method: unsupported method kerberos", err.Error())
}

func TestValidate_OK(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validateCredentials("alice", "pw"))
	assert.NoError(t, validateLogin("alice", "pw", models.AuthMethodCredentials))
	assert.NoError(t, validateLogin("alice", "", models.AuthMethodJWT))
}

func TestMapRepositoryError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, mapRepositoryError(nil))

	storeErr := &accounts.StoreError{Kind: common.ErrEncode, Op: "create", Key: "users:a", Err: errors.New("too big")}
	err := mapRepositoryError(storeErr)
	assert.ErrorIs(t, err, common.ErrRepository)
	assert.Equal(t, common.ErrEncode, accounts.KindOf(err))
	assert.Equal(t, `repository error: create "users:a": record encode error: too big`, err.Error())

	err = mapRepositoryError(errors.New("disk gone"))
	assert.ErrorIs(t, err, common.ErrRepository)
	assert.ErrorIs(t, err, common.ErrStorageIO)
	assert.Equal(t, "repository error: storage io error: disk gone", err.Error())

	assert.Same(t, context.Canceled, mapRepositoryError(context.Canceled))
	assert.Equal(t, context.DeadlineExceeded, mapRepositoryError(context.DeadlineExceeded))
}
