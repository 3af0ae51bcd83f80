// Package serde provides JSON marshalling helpers shared by the CLI tools
// and event payload consumers.
package serde

import (
	"sync"

	"github.com/ugorji/go/codec"
)

// resolver holds a reusable encoder and decoder pair.
type resolver struct {
	handle codec.JsonHandle

	encoder *codec.Encoder
	decoder *codec.Decoder

	data []byte

	mu sync.Mutex
}

var (
	gencoder     resolver
	indentHandle codec.JsonHandle
)

func init() {
	gencoder.handle.TypeInfos = codec.NewTypeInfos([]string{"json"})
	gencoder.data = make([]byte, 0, 4096)
	gencoder.encoder = codec.NewEncoderBytes(&gencoder.data, &gencoder.handle)
	gencoder.decoder = codec.NewDecoderBytes(nil, &gencoder.handle)

	indentHandle.TypeInfos = codec.NewTypeInfos([]string{"json"})
	indentHandle.Indent = 2
}

// MarshalJson encodes a value as JSON.
func MarshalJson[T any](v T) ([]byte, error) {
	gencoder.mu.Lock()
	defer gencoder.mu.Unlock()

	gencoder.encoder.ResetBytes(&gencoder.data)
	if err := gencoder.encoder.Encode(v); err != nil {
		return nil, err
	}

	out := make([]byte, len(gencoder.data))
	copy(out, gencoder.data)

	return out, nil
}

// MarshalJsonIndent encodes a value as indented JSON for display.
func MarshalJsonIndent[T any](v T) ([]byte, error) {
	var out []byte
	if err := codec.NewEncoderBytes(&out, &indentHandle).Encode(v); err != nil {
		return nil, err
	}

	return out, nil
}

// UnmarshalJson decodes JSON data into the given value.
func UnmarshalJson[T any](data []byte, marshalTo T) error {
	gencoder.mu.Lock()
	defer gencoder.mu.Unlock()

	gencoder.decoder.ResetBytes(data)

	return gencoder.decoder.Decode(marshalTo)
}
