package deck

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allLeads() []Lead {
	leads := []Lead{TrumpLead}
	for _, s := range Suits {
		leads = append(leads, SuitLead(s))
	}
	return leads
}

func TestTrumpMembership(t *testing.T) {
	trumps := 0
	for _, c := range FullDeck() {
		suit, plain := c.SimpleSuit()
		if c.IsTrump() {
			trumps++
			assert.False(t, plain, "%s is a trump and must have no simple suit", c)
			assert.GreaterOrEqual(t, c.TrumpOrder(), 0, "%s", c)
			continue
		}
		assert.True(t, plain, "%s", c)
		assert.Equal(t, c.Suit, suit)
		assert.Equal(t, -1, c.TrumpOrder(), "%s", c)
		assert.NotEqual(t, Jack, c.Rank)
		assert.NotEqual(t, Queen, c.Rank)
		assert.NotEqual(t, Clubs, c.Suit)
	}
	assert.Equal(t, 14, trumps)
}

func TestStandardTrumpOrder(t *testing.T) {
	want := MustParseCards("8c 9c Kc 10c Ac Jd Jh Js Jc Qd Qh Qs Qc 7c")
	for i, c := range want {
		assert.Equal(t, i, c.TrumpOrder(), "trump order of %s", c)
	}
	for i := range want {
		for j := range want {
			got := want[i].CompareInTrick(want[j], TrumpLead)
			switch {
			case i > j:
				assert.Equal(t, 1, got, "%s should beat %s", want[i], want[j])
			case i < j:
				assert.Equal(t, -1, got, "%s should lose to %s", want[i], want[j])
			default:
				assert.Equal(t, 0, got)
			}
		}
	}
}

func TestReversedPolicyInvertsStandard(t *testing.T) {
	std, rev := StandardPolicy(), ReversedPolicy()
	for _, c := range std.Trumps() {
		assert.Equal(t, 13-std.TrumpOrder(c), rev.TrumpOrder(c), "%s", c)
	}
	assert.Equal(t, 13, rev.TrumpOrder(NewCard(Eight, Clubs)))
	assert.Equal(t, 0, rev.TrumpOrder(Catcher))
}

func TestCompareInTrickAntisymmetric(t *testing.T) {
	for _, policy := range []Policy{StandardPolicy(), ReversedPolicy()} {
		for _, a := range FullDeck() {
			for _, b := range FullDeck() {
				for _, lead := range allLeads() {
					require.Equal(t, -policy.Compare(b, a, lead), policy.Compare(a, b, lead),
						"%s policy: %s vs %s lead %s", policy.Name(), a, b, lead)
				}
			}
		}
	}
}

func TestCompareInTrick(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		lead Lead
		want int
	}{
		{"trump beats plain ace", "8c", "Ah", SuitLead(Hearts), 1},
		{"plain loses to trump", "Ah", "Jd", SuitLead(Hearts), -1},
		{"lead suit ranks ten over king", "10h", "Kh", SuitLead(Hearts), 1},
		{"seven lowest of suit", "7s", "9s", SuitLead(Spades), -1},
		{"only follower wins", "7h", "As", SuitLead(Hearts), 1},
		{"off-suit pair incomparable", "As", "Ad", SuitLead(Hearts), 0},
		{"plain cards under trump lead incomparable", "Ah", "7s", TrumpLead, 0},
		{"seven of clubs tops queen of clubs", "7c", "Qc", TrumpLead, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := ParseCard(tt.a)
			require.NoError(t, err)
			b, err := ParseCard(tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.CompareInTrick(b, tt.lead))
		})
	}
}

func TestPoints(t *testing.T) {
	tests := map[string][2]int{
		"7h": {0, 0}, "8s": {0, 0}, "9d": {0, 0},
		"Jh": {2, 0}, "Qs": {3, 0}, "Kd": {4, 4},
		"10h": {10, 10}, "Ac": {11, 11},
	}
	classic := StandardPolicy().WithPoints(ClassicPoints)
	for code, want := range tests {
		c, err := ParseCard(code)
		require.NoError(t, err)
		assert.Equal(t, want[0], c.Points(), "full points for %s", c)
		assert.Equal(t, want[1], classic.Points(c), "classic points for %s", c)
	}

	total := 0
	for _, c := range FullDeck() {
		total += c.Points()
	}
	assert.Equal(t, 120, total)
}

func TestNewPolicyValidates(t *testing.T) {
	_, err := NewPolicy("short", MustParseCards("7c Qc"), FullPoints)
	assert.Error(t, err)

	withPlain := StandardPolicy().Trumps()
	withPlain[0] = NewCard(Ace, Hearts)
	_, err = NewPolicy("plain", withPlain, FullPoints)
	assert.Error(t, err)

	dup := StandardPolicy().Trumps()
	dup[1] = dup[0]
	_, err = NewPolicy("dup", dup, FullPoints)
	assert.Error(t, err)

	_, err = PolicyByName("mystery")
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		rank, suit string
		want       Card
	}{
		{"JACK", "hearts", NewCard(Jack, Hearts)},
		{"queen", "c", NewCard(Queen, Clubs)},
		{"Д", "трефы", NewCard(Queen, Clubs)},
		{"В", "пики", NewCard(Jack, Spades)},
		{"К", "черви", NewCard(King, Hearts)},
		{"Т", "бубны", NewCard(Ace, Diamonds)},
		{"10", "♦", NewCard(Ten, Diamonds)},
		{"A", "♠️", NewCard(Ace, Spades)},
		{"7", "CLUBS", NewCard(Seven, Clubs)},
	}
	for _, tt := range tests {
		t.Run(tt.rank+"/"+tt.suit, func(t *testing.T) {
			raw := Normalize(tt.rank, tt.suit)
			c, ok := raw.Card()
			require.True(t, ok, "normalized %+v", raw)
			assert.Equal(t, tt.want, c)
			assert.Equal(t, tt.want.Rank.String(), raw.Rank)
			assert.Equal(t, tt.want.Suit.Name(), raw.Suit)
		})
	}
}

func TestNormalizePassesThroughUnknown(t *testing.T) {
	raw := Normalize("6", "stars")
	assert.Equal(t, RawCard{Rank: "6", Suit: "stars"}, raw)
	_, ok := raw.Card()
	assert.False(t, ok)

	raw = Normalize("K", "stars")
	assert.Equal(t, RawCard{Rank: "K", Suit: "stars"}, raw)

	cards, dropped := NormalizeAll([]RawCard{{"K", "hearts"}, {"6", "hearts"}, {"Д", "♣"}})
	assert.Equal(t, 1, dropped)
	assert.Equal(t, []Card{NewCard(King, Hearts), NewCard(Queen, Clubs)}, cards)
}

func TestParseCards(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []Card
		wantErr bool
	}{
		{"glyphs", "7♠ A♥ Q♣", []Card{NewCard(Seven, Spades), NewCard(Ace, Hearts), NewCard(Queen, Clubs)}, false},
		{"ascii with commas", "10h,Kd, 9s", []Card{NewCard(Ten, Hearts), NewCard(King, Diamonds), NewCard(Nine, Spades)}, false},
		{"empty", "", []Card{}, false},
		{"six is not in the deck", "6h", nil, true},
		{"bad suit", "Ax", nil, true},
		{"suit only", "h", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCardJSON(t *testing.T) {
	c := NewCard(Ten, Hearts)
	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"rank":"10","suit":"hearts"}`, string(data))

	var back Card
	require.NoError(t, json.Unmarshal([]byte(`{"rank":"queen","suit":"♣"}`), &back))
	assert.Equal(t, Target, back)

	assert.Error(t, json.Unmarshal([]byte(`{"rank":"6","suit":"clubs"}`), &back))
}

func TestCardJSONRequiresRankAndSuit(t *testing.T) {
	for _, input := range []string{`{"rank":"Q"}`, `{"suit":"hearts"}`, `{}`, `{"rank":null,"suit":"clubs"}`} {
		t.Run(input, func(t *testing.T) {
			var c Card
			assert.Error(t, json.Unmarshal([]byte(input), &c))
		})
	}

	var hand []Card
	assert.Error(t, json.Unmarshal([]byte(`[{"rank":"7","suit":"clubs"},{"rank":"Q"}]`), &hand))

	var played struct {
		Recommended *Card `json:"recommended"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"recommended":null}`), &played))
	assert.Nil(t, played.Recommended)
	require.NoError(t, json.Unmarshal([]byte(`{"recommended":{"rank":"7","suit":"clubs"}}`), &played))
	assert.Equal(t, &Catcher, played.Recommended)
}

func TestLeadOf(t *testing.T) {
	assert.Equal(t, TrumpLead, LeadOf(NewCard(Jack, Hearts)))
	assert.Equal(t, TrumpLead, LeadOf(NewCard(Ace, Clubs)))
	assert.Equal(t, SuitLead(Hearts), LeadOf(NewCard(Ten, Hearts)))
	assert.True(t, SuitLead(Hearts).Follows(NewCard(Seven, Hearts)))
	assert.False(t, SuitLead(Hearts).Follows(NewCard(Queen, Hearts)))
	assert.False(t, TrumpLead.Follows(NewCard(Seven, Hearts)))
}
