// Package rpc defines the wire schema of the document/RPC-style binding:
// method names, request/response documents, and the grpc service
// descriptors both servers and clients are built from. Documents travel as
// msgpack payloads through a custom grpc codec, so no generated code is
// involved.
package rpc

import (
	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/grpc/encoding"
)

// CodecName is the grpc content-subtype carrying msgpack documents.
// Clients must dial with grpc.CallContentSubtype(CodecName).
const CodecName = "msgpack"

type msgpackCodec struct{}

func (msgpackCodec) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (msgpackCodec) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

func (msgpackCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(msgpackCodec{})
}
