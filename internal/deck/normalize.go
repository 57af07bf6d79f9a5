package deck

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

var rankAliases = map[string]Rank{
	"7": Seven, "seven": Seven,
	"8": Eight, "eight": Eight,
	"9": Nine, "nine": Nine,
	"10": Ten, "t": Ten, "ten": Ten,
	"j": Jack, "jack": Jack, "в": Jack, "валет": Jack,
	"q": Queen, "queen": Queen, "д": Queen, "дама": Queen,
	"k": King, "king": King, "к": King, "король": King,
	"a": Ace, "ace": Ace, "т": Ace, "туз": Ace,
}

var suitAliases = map[string]Suit{
	"clubs": Clubs, "club": Clubs, "c": Clubs, "трефы": Clubs, "трефа": Clubs, "♣": Clubs, "♧": Clubs,
	"spades": Spades, "spade": Spades, "s": Spades, "пики": Spades, "пика": Spades, "♠": Spades, "♤": Spades,
	"hearts": Hearts, "heart": Hearts, "h": Hearts, "черви": Hearts, "червы": Hearts, "♥": Hearts, "♡": Hearts,
	"diamonds": Diamonds, "diamond": Diamonds, "d": Diamonds, "бубны": Diamonds, "буби": Diamonds, "♦": Diamonds, "♢": Diamonds,
}

func cleanToken(s string) string {
	s = strings.TrimSpace(s)
	// Emoji suit glyphs often carry a variation selector.
	s = strings.ReplaceAll(s, "\ufe0f", "")
	return strings.ToLower(s)
}

func lookupRank(s string) (Rank, bool) {
	r, ok := rankAliases[cleanToken(s)]
	return r, ok
}

func lookupSuit(s string) (Suit, bool) {
	suit, ok := suitAliases[cleanToken(s)]
	return suit, ok
}

// RawCard is a card as scraped from a table before validation. After
// Normalize, recognised fields hold canonical labels ("Q", "clubs") and
// unrecognised fields keep their original text.
type RawCard struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

// Normalize maps loose rank and suit encodings to canonical labels.
// Unknown input passes through unchanged; call Card to validate.
func Normalize(rawRank, rawSuit string) RawCard {
	out := RawCard{Rank: rawRank, Suit: rawSuit}
	if r, ok := lookupRank(rawRank); ok {
		out.Rank = r.String()
	}
	if s, ok := lookupSuit(rawSuit); ok {
		out.Suit = s.Name()
	}
	return out
}

// Card converts the raw pair into a Card; ok is false when either field is unrecognised
func (rc RawCard) Card() (Card, bool) {
	r, rok := lookupRank(rc.Rank)
	s, sok := lookupSuit(rc.Suit)
	if !rok || !sok {
		return Card{}, false
	}
	return Card{Rank: r, Suit: s}, true
}

// NormalizeAll converts raw cards, dropping any that cannot be recognised.
// The second return value counts dropped entries.
func NormalizeAll(raw []RawCard) ([]Card, int) {
	cards := make([]Card, 0, len(raw))
	dropped := 0
	for _, rc := range raw {
		c, ok := Normalize(rc.Rank, rc.Suit).Card()
		if !ok {
			dropped++
			continue
		}
		cards = append(cards, c)
	}
	return cards, dropped
}

// ParseCard parses compact notation such as "Q♣", "10h", "Qc" or "7 clubs"
func ParseCard(s string) (Card, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "\ufe0f", "")
	if s == "" {
		return Card{}, fmt.Errorf("empty card")
	}

	if fields := strings.Fields(s); len(fields) == 2 {
		if c, ok := Normalize(fields[0], fields[1]).Card(); ok {
			return c, nil
		}
		return Card{}, fmt.Errorf("invalid card %q", s)
	}

	last, size := utf8.DecodeLastRuneInString(s)
	if last == utf8.RuneError || size == len(s) {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}
	rankPart, suitPart := s[:len(s)-size], string(last)

	c, ok := Normalize(rankPart, suitPart).Card()
	if !ok {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}
	return c, nil
}

// ParseCards parses a list of cards separated by spaces or commas
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error; intended for tests
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}
