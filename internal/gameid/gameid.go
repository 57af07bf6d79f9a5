// Package gameid generates sortable identifiers for recorded Kozel games:
// a UUIDv7 rendered as 26 characters of Crockford base32, the TypeID suffix
// format.
package gameid

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded ID
const Length = 26

// Generator produces game IDs, optionally from a deterministic byte source
type Generator struct {
	rand io.Reader
}

// NewGenerator creates a generator. A nil reader uses crypto randomness.
func NewGenerator(rand io.Reader) *Generator {
	return &Generator{rand: rand}
}

// Generate creates a new game ID from crypto randomness
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new game ID
func (g *Generator) Generate() string {
	var (
		id  uuid.UUID
		err error
	)
	if g.rand != nil {
		id, err = uuid.NewV7FromReader(g.rand)
	} else {
		id, err = uuid.NewV7()
	}
	if err != nil {
		panic("failed to generate game id: " + err.Error())
	}
	return Encode(id)
}

// Encode renders a UUID as 26 base32 characters. The 128 bits are prefixed
// with two zero bits so the first character is always 0-7.
func Encode(id uuid.UUID) string {
	var sb strings.Builder
	sb.Grow(Length)
	for i := range Length {
		var v byte
		for b := i * 5; b < i*5+5; b++ {
			v = v<<1 | bit(id, b-2)
		}
		sb.WriteByte(alphabet[v])
	}
	return sb.String()
}

func bit(id uuid.UUID, n int) byte {
	if n < 0 {
		return 0
	}
	return (id[n/8] >> (7 - n%8)) & 1
}

// Decode parses an encoded ID back into its UUID
func Decode(s string) (uuid.UUID, error) {
	var id uuid.UUID
	if err := Validate(s); err != nil {
		return id, err
	}
	for i := range Length {
		v := byte(strings.IndexByte(alphabet, s[i]))
		for k := 0; k < 5; k++ {
			n := i*5 + k - 2
			if n < 0 {
				continue
			}
			if v&(1<<(4-k)) != 0 {
				id[n/8] |= 1 << (7 - n%8)
			}
		}
	}
	return id, nil
}

// Validate checks if a game ID is valid (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}
	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}
