package deck

import (
	rand "math/rand/v2"
)

// DeckSize is the number of cards in a Kozel deck (7 through ace in four suits)
const DeckSize = 32

// HandSize is the number of cards each of the four players is dealt
const HandSize = DeckSize / 4

// Deck represents a shuffled Kozel deck
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// FullDeck returns all 32 cards in suit-then-rank order
func FullDeck() []Card {
	cards := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// NewDeck creates a full deck that shuffles with rng
func NewDeck(rng *rand.Rand) *Deck {
	return &Deck{cards: FullDeck(), rng: rng}
}

// Shuffle randomizes the order of cards in the deck
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// DealN removes and returns up to n cards from the top of the deck
func (d *Deck) DealN(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	cards := make([]Card, n)
	copy(cards, d.cards[:n])
	d.cards = d.cards[n:]
	return cards
}

// DealHands shuffles and deals four hands of HandSize cards
func (d *Deck) DealHands() [4][]Card {
	d.Shuffle()
	var hands [4][]Card
	for i := range hands {
		hands[i] = d.DealN(HandSize)
	}
	return hands
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}
