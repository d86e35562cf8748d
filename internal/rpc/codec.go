// Package rpc defines the AccountService wire contract shared by the gRPC
// server and the CLI: message types, the service descriptor and a client.
// Messages are encoded in protobuf binary form as described by
// account.proto, through a gRPC codec registered under CodecName.
package rpc

import (
	"fmt"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content-subtype of AccountService calls
// (application/grpc+protowire).
const CodecName = "protowire"

type wireCodec struct{}

func (wireCodec) Marshal(v any) ([]byte, error) {
	m, ok := v.(wireMessage)
	if !ok {
		return nil, fmt.Errorf("rpc: cannot marshal %T", v)
	}
	return m.appendWire([]byte{}), nil
}

func (wireCodec) Unmarshal(data []byte, v any) error {
	m, ok := v.(wireMessage)
	if !ok {
		return fmt.Errorf("rpc: cannot unmarshal into %T", v)
	}
	return unmarshalWire(data, m)
}

func (wireCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(wireCodec{})
}
