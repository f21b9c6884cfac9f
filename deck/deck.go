package deck

// Size is the number of cards in a full deck
const Size = 140

// Deck represents a stack of cards. The top of the stack is the last element.
type Deck []Card

// Distribution returns the number of copies of each value in a full deck:
// five each of -2 and 12, ten of every other value.
func Distribution() map[int]int {
	dist := map[int]int{}
	for v := MinValue; v <= MaxValue; v++ {
		if v == MinValue || v == MaxValue {
			dist[v] = 5
			continue
		}
		dist[v] = 10
	}
	return dist
}

// New creates a full deck of face-down cards in ascending order
func New() Deck {
	dist := Distribution()
	cards := make(Deck, 0, Size)
	for v := MinValue; v <= MaxValue; v++ {
		for i := 0; i < dist[v]; i++ {
			cards = append(cards, NewCard(v))
		}
	}
	return cards
}

// Shuffle randomises the order of the deck in place
func (d Deck) Shuffle(r Intner) {
	Shuffle(d, r)
}

// Shuffle is a Fisher-Yates shuffle over any slice of cards
func Shuffle(cards []Card, r Intner) {
	for i := len(cards) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Draw removes and returns the top card
func (d *Deck) Draw() (Card, bool) {
	n := len(*d)
	if n == 0 {
		return Card{}, false
	}
	c := (*d)[n-1]
	*d = (*d)[:n-1]
	return c, true
}

// Deal deals n cards from the top of the deck, until it is empty.
// The card dealt first is at index 0.
func (d *Deck) Deal(n int) []Card {
	if n < 0 || n > len(*d) {
		return []Card{}
	}
	dealt := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		c, _ := d.Draw()
		dealt = append(dealt, c)
	}
	return dealt
}

// Push places cards on top of the deck, in order
func (d *Deck) Push(cards ...Card) {
	*d = append(*d, cards...)
}

// Top returns the top card without removing it
func (d Deck) Top() (Card, bool) {
	if len(d) == 0 {
		return Card{}, false
	}
	return d[len(d)-1], true
}

// Counts tallies card values across any number of card groups
func Counts(groups ...[]Card) map[int]int {
	counts := map[int]int{}
	for _, g := range groups {
		for _, c := range g {
			counts[c.Value]++
		}
	}
	return counts
}
