package rpc

import "google.golang.org/protobuf/encoding/protowire"

type CreateAccountRequest struct{}

func (m *CreateAccountRequest) appendWire(b []byte) []byte { return b }

func (m *CreateAccountRequest) readField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	return skipField(num, typ, b)
}

// CreateAccountResponse carries the only copy of the plaintext password.
type CreateAccountResponse struct {
	Username string
	Password string
}

func (m *CreateAccountResponse) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.Username)
	return appendString(b, 2, m.Password)
}

func (m *CreateAccountResponse) readField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		return readString(typ, b, &m.Username)
	case 2:
		return readString(typ, b, &m.Password)
	}
	return skipField(num, typ, b)
}

type ListAccountsRequest struct{}

func (m *ListAccountsRequest) appendWire(b []byte) []byte { return b }

func (m *ListAccountsRequest) readField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	return skipField(num, typ, b)
}

// Account is one listing row. Password is the stored hash, present only
// when the server exposes hashes.
type Account struct {
	Username  string
	Password  string
	IsDeleted bool
}

func (m *Account) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.Username)
	b = appendString(b, 2, m.Password)
	return appendBool(b, 3, m.IsDeleted)
}

func (m *Account) readField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		return readString(typ, b, &m.Username)
	case 2:
		return readString(typ, b, &m.Password)
	case 3:
		return readBool(typ, b, &m.IsDeleted)
	}
	return skipField(num, typ, b)
}

type ListAccountsResponse struct {
	Accounts []Account
}

func (m *ListAccountsResponse) appendWire(b []byte) []byte {
	for i := range m.Accounts {
		b = appendMessage(b, 1, &m.Accounts[i])
	}
	return b
}

func (m *ListAccountsResponse) readField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	if num != 1 {
		return skipField(num, typ, b)
	}
	var a Account
	n, err := readMessage(typ, b, &a)
	if err != nil {
		return 0, err
	}
	m.Accounts = append(m.Accounts, a)
	return n, nil
}

type CheckCredentialsRequest struct {
	Username string
	Password string
}

func (m *CheckCredentialsRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.Username)
	return appendString(b, 2, m.Password)
}

func (m *CheckCredentialsRequest) readField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		return readString(typ, b, &m.Username)
	case 2:
		return readString(typ, b, &m.Password)
	}
	return skipField(num, typ, b)
}

type CheckCredentialsResponse struct {
	Success bool
}

func (m *CheckCredentialsResponse) appendWire(b []byte) []byte {
	return appendBool(b, 1, m.Success)
}

func (m *CheckCredentialsResponse) readField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	if num == 1 {
		return readBool(typ, b, &m.Success)
	}
	return skipField(num, typ, b)
}

// LoginRequest.Method is "credentials" or "jwt".
type LoginRequest struct {
	Username string
	Password string
	Method   string
}

func (m *LoginRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.Username)
	b = appendString(b, 2, m.Password)
	return appendString(b, 3, m.Method)
}

func (m *LoginRequest) readField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		return readString(typ, b, &m.Username)
	case 2:
		return readString(typ, b, &m.Password)
	case 3:
		return readString(typ, b, &m.Method)
	}
	return skipField(num, typ, b)
}

type LoginResponse struct {
	Success bool
	Token   string
}

func (m *LoginResponse) appendWire(b []byte) []byte {
	b = appendBool(b, 1, m.Success)
	return appendString(b, 2, m.Token)
}

func (m *LoginResponse) readField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		return readBool(typ, b, &m.Success)
	case 2:
		return readString(typ, b, &m.Token)
	}
	return skipField(num, typ, b)
}

type DeleteAccountRequest struct {
	Username string
}

func (m *DeleteAccountRequest) appendWire(b []byte) []byte {
	return appendString(b, 1, m.Username)
}

func (m *DeleteAccountRequest) readField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	if num == 1 {
		return readString(typ, b, &m.Username)
	}
	return skipField(num, typ, b)
}

type DeleteAccountResponse struct{}

func (m *DeleteAccountResponse) appendWire(b []byte) []byte { return b }

func (m *DeleteAccountResponse) readField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	return skipField(num, typ, b)
}
