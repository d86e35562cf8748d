// Package common contains shared constants and sentinel errors used across
// accountkeeper components.
package common

import "time"

// APIKeyHeaderName is the gRPC metadata key that carries the service API key.
const APIKeyHeaderName = "x-api-key"

// SessionTokenSubject is the fixed "sub" claim of every issued session token.
const SessionTokenSubject = "IoTNet"

// SessionTokenTTL is the lifetime of an issued session token.
const SessionTokenTTL = time.Hour

// AccountKeyPrefix namespaces account records inside the store keyspace.
const AccountKeyPrefix = "users:"
