// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package acct

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// IDLength is the byte length of an identity.
const IDLength = 32

// ID is the 32 byte identity of an account, asset, pool or stake record.
type ID [IDLength]byte

var (
	_ json.Marshaler   = (*ID)(nil)
	_ json.Unmarshaler = (*ID)(nil)
)

// String returns the base58 form.
func (id ID) String() string {
	return base58.Encode(id[:])
}

// AbbrevString returns abbrev string presentation.
func (id ID) AbbrevString() string {
	s := id.String()
	if len(s) <= 10 {
		return s
	}
	return fmt.Sprintf("%s…%s", s[:4], s[len(s)-4:])
}

// Bytes returns byte slice form of ID.
func (id ID) Bytes() []byte {
	return id[:]
}

// IsZero returns if ID has all zero bytes.
func (id ID) IsZero() bool {
	return id == ID{}
}

// MarshalJSON implements json.Marshaler.
func (id *ID) MarshalJSON() ([]byte, error) {
	if id == nil {
		return json.Marshal(nil)
	}
	return json.Marshal(id.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler, used by yaml fixtures.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := ParseID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseID converts the base58 presentation into ID.
func ParseID(s string) (ID, error) {
	if s == "" {
		return ID{}, errors.New("empty string")
	}
	b, err := base58.Decode(s)
	if err != nil {
		return ID{}, err
	}
	if len(b) != IDLength {
		return ID{}, errors.New("invalid length")
	}
	var id ID
	copy(id[:], b)
	return id, nil
}

// MustParseID converts the base58 presentation into ID, panic on error.
func MustParseID(s string) ID {
	id, err := ParseID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// BytesToID converts bytes slice into ID.
// If b is larger than ID length, b will be cropped (from the left).
// If b is smaller than ID length, b will be extended (from the left).
func BytesToID(b []byte) (id ID) {
	if len(b) > IDLength {
		b = b[len(b)-IDLength:]
	}
	copy(id[IDLength-len(b):], b)
	return
}
