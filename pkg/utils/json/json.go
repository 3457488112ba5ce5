// Package json centralizes JSON codec selection. All lectern code marshals
// through this package so the implementation can be swapped in one place.
package json

import (
	"github.com/bytedance/sonic"
)

var (
	// Marshal serializes a value to JSON bytes.
	Marshal = sonic.Marshal
	// Unmarshal deserializes JSON bytes into a value.
	Unmarshal = sonic.Unmarshal
	// MarshalString serializes a value to a JSON string.
	MarshalString = sonic.MarshalString
	// UnmarshalString deserializes a JSON string into a value.
	UnmarshalString = sonic.UnmarshalString
)

// MarshalIndent serializes a value with the given prefix and indent.
func MarshalIndent(v interface{}, prefix, indent string) ([]byte, error) {
	return sonic.ConfigDefault.MarshalIndent(v, prefix, indent)
}
