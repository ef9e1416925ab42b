package query

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// EncodeMsgpack serializes descriptors into the compact binary form used by --export
func EncodeMsgpack(descriptors []Descriptor) ([]byte, error) {
	data, err := msgpack.Marshal(descriptors)
	if err != nil {
		return nil, fmt.Errorf("failed to encode descriptors: %w", err)
	}
	return data, nil
}

// DecodeMsgpack deserializes descriptors written by EncodeMsgpack
func DecodeMsgpack(data []byte) ([]Descriptor, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty MessagePack data")
	}

	var descriptors []Descriptor
	if err := msgpack.Unmarshal(data, &descriptors); err != nil {
		return nil, fmt.Errorf("failed to decode descriptors: %w", err)
	}
	return descriptors, nil
}
