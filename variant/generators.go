package variant

import (
	"github.com/plus3/blockfall/piece"
)

// CascadeGenerator tags every piece with its own value, so no two placed
// pieces ever join into one shape.
type CascadeGenerator struct {
	chooser *piece.Chooser
	dealt   int
}

func NewCascadeGenerator(c *piece.Chooser) *CascadeGenerator {
	return &CascadeGenerator{chooser: c}
}

func (g *CascadeGenerator) Next() piece.Piece {
	index := g.chooser.Choose()
	p := g.chooser.Catalog().Piece(index)
	value := uint32(index + g.dealt*g.chooser.Catalog().Len())
	for i := range p.Values {
		p.Values[i] = value
	}
	g.dealt++
	return p
}

// StickyGenerator deals standard pieces, but half of them get two cells
// recoloured to the next type's value so that they split apart under
// sticky physics. The coin flips come from the chooser's seeded stream.
type StickyGenerator struct {
	chooser *piece.Chooser
}

func NewStickyGenerator(c *piece.Chooser) *StickyGenerator {
	return &StickyGenerator{chooser: c}
}

func (g *StickyGenerator) Next() piece.Piece {
	index := g.chooser.Choose()
	catalog := g.chooser.Catalog()
	p := catalog.Piece(index)

	rng := g.chooser.Rand()
	if rng.IntN(2) == 0 {
		value := uint32((index + 1) % catalog.Len())
		n := len(p.Values)
		p.Values[rng.IntN(n)] = value
		p.Values[rng.IntN(n)] = value
	}
	return p
}
