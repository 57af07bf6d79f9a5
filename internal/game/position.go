package game

import "fmt"

// Position identifies a seat at the table as seen from the assisted player,
// who always sits at Bottom.
type Position int

const (
	Bottom Position = iota
	Left
	Top
	Right
)

// Positions lists seats in play order
var Positions = [...]Position{Bottom, Left, Top, Right}

// String returns the seat name
func (p Position) String() string {
	switch p {
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	case Top:
		return "top"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Valid reports whether p is one of the four seats
func (p Position) Valid() bool {
	return p >= Bottom && p <= Right
}

// Next returns the seat that plays after p
func (p Position) Next() Position {
	return (p + 1) % 4
}

// Partner returns the seat across the table
func (p Position) Partner() Position {
	return (p + 2) % 4
}

// Team returns the partnership p belongs to
func (p Position) Team() Team {
	if p == Bottom || p == Top {
		return BottomTop
	}
	return LeftRight
}

// MarshalText encodes the seat by name
func (p Position) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid position %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText decodes a seat name
func (p *Position) UnmarshalText(text []byte) error {
	parsed, err := ParsePosition(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePosition resolves a seat name
func ParsePosition(s string) (Position, error) {
	for _, p := range Positions {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown position %q", s)
}

// Team is a fixed partnership: bottom with top, left with right
type Team int

const (
	BottomTop Team = iota
	LeftRight
)

// String returns the team name
func (t Team) String() string {
	switch t {
	case BottomTop:
		return "bottom-top"
	case LeftRight:
		return "left-right"
	default:
		return "unknown"
	}
}

// Other returns the opposing team
func (t Team) Other() Team {
	return 1 - t
}

// MarshalText encodes the team by name
func (t Team) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a team name
func (t *Team) UnmarshalText(text []byte) error {
	switch string(text) {
	case "bottom-top":
		*t = BottomTop
	case "left-right":
		*t = LeftRight
	default:
		return fmt.Errorf("unknown team %q", string(text))
	}
	return nil
}
