package piece

import "math/rand/v2"

// SeedSize is the length of a generator seed in bytes.
const SeedSize = 32

// Generator produces the sequence of pieces a game draws from.
type Generator interface {
	Next() Piece
}

// Seed turns an arbitrary byte string into a fixed-size seed. Shorter
// inputs are zero padded and longer ones truncated.
func Seed(b []byte) [SeedSize]byte {
	var seed [SeedSize]byte
	copy(seed[:], b)
	return seed
}

// Chooser deals catalog indices in shuffled bags: every index appears once
// per bag, and the bag order comes from a seeded stream so that a game can
// be reproduced from its seed.
type Chooser struct {
	catalog *Catalog
	rng     *rand.Rand
	bag     []int
}

// NewChooser returns a chooser over c seeded with the zero seed.
func NewChooser(c *Catalog) *Chooser {
	ch := &Chooser{catalog: c}
	ch.Seed(nil)
	return ch
}

// Seed restarts the chooser from seed and empties the current bag.
func (ch *Chooser) Seed(seed []byte) {
	ch.rng = rand.New(rand.NewChaCha8(Seed(seed)))
	ch.bag = ch.bag[:0]
}

// Catalog returns the catalog the chooser deals from.
func (ch *Chooser) Catalog() *Catalog {
	return ch.catalog
}

// Rand exposes the seeded stream so that generators layered on the chooser
// draw their extra randomness from the same reproducible source.
func (ch *Chooser) Rand() *rand.Rand {
	return ch.rng
}

// Choose returns the next catalog index.
func (ch *Chooser) Choose() int {
	if len(ch.bag) == 0 {
		for i := range ch.catalog.Len() {
			ch.bag = append(ch.bag, i)
		}
		ch.rng.Shuffle(len(ch.bag), func(i, j int) {
			ch.bag[i], ch.bag[j] = ch.bag[j], ch.bag[i]
		})
	}

	index := ch.bag[len(ch.bag)-1]
	ch.bag = ch.bag[:len(ch.bag)-1]
	return index
}

// BagGenerator yields catalog pieces in bag order with their default values.
type BagGenerator struct {
	*Chooser
}

// NewBagGenerator returns a bag generator over c seeded with seed.
func NewBagGenerator(c *Catalog, seed []byte) *BagGenerator {
	g := &BagGenerator{Chooser: NewChooser(c)}
	g.Seed(seed)
	return g
}

func (g *BagGenerator) Next() Piece {
	return g.catalog.Piece(g.Choose())
}

// SequenceGenerator cycles through a fixed list of catalog indices. It is
// useful for scripted boards and tests.
type SequenceGenerator struct {
	catalog *Catalog
	indices []int
	next    int
}

// NewSequenceGenerator returns a generator repeating indices forever.
func NewSequenceGenerator(c *Catalog, indices ...int) *SequenceGenerator {
	return &SequenceGenerator{catalog: c, indices: indices}
}

func (g *SequenceGenerator) Next() Piece {
	index := g.indices[g.next%len(g.indices)]
	g.next++
	return g.catalog.Piece(index)
}
