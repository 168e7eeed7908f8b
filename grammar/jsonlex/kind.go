// SPDX-License-Identifier: MIT
package jsonlex

import (
	"errors"
	"fmt"
)

// Kind identifies JSON tokens.
type Kind int

// ErrUnknownKind reports an unknown Kind name.
var ErrUnknownKind = errors.New("unknown token kind")

// JSON token kinds.
const (
	Invalid Kind = iota
	String
	Int
	Double
	True
	False
	Null
	LBrace
	RBrace
	LBracket
	RBracket
	Colon
	Comma
	Identifier
)

var kindNames = [...]string{
	Invalid:    "Invalid",
	String:     "String",
	Int:        "Int",
	Double:     "Double",
	True:       "True",
	False:      "False",
	Null:       "Null",
	LBrace:     "LBrace",
	RBrace:     "RBrace",
	LBracket:   "LBracket",
	RBracket:   "RBracket",
	Colon:      "Colon",
	Comma:      "Comma",
	Identifier: "Identifier",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// MarshalText encodes the Kind by name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes a Kind from its name.
func (k *Kind) UnmarshalText(text []byte) error {
	for index, name := range kindNames {
		if name == string(text) {
			*k = Kind(index)
			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrUnknownKind, text)
}
