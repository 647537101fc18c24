package api

import (
	"fmt"

	proto "github.com/gogo/protobuf/proto"
)

// Codec is the grpc codec used for the CoreApi service. Messages are
// marshalled with gogo/protobuf from their struct tags.
type Codec struct{}

// Marshal implements encoding.Codec.
func (Codec) Marshal(v interface{}) ([]byte, error) {
	m, ok := v.(proto.Message)
	if !ok {
		return nil, fmt.Errorf("api: cannot marshal %T, not a proto.Message", v)
	}
	return proto.Marshal(m)
}

// Unmarshal implements encoding.Codec.
func (Codec) Unmarshal(data []byte, v interface{}) error {
	m, ok := v.(proto.Message)
	if !ok {
		return fmt.Errorf("api: cannot unmarshal into %T, not a proto.Message", v)
	}
	return proto.Unmarshal(data, m)
}

// Name implements encoding.Codec.
func (Codec) Name() string {
	return "proto"
}
