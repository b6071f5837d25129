package piece

// Catalog is an ordered, immutable registry of piece types. A type's
// position in the catalog is its index, which doubles as the default cell
// value of its pieces.
type Catalog struct {
	types []*Type
}

// NewCatalog builds a catalog holding types in the given order.
func NewCatalog(types ...*Type) *Catalog {
	return &Catalog{types: append([]*Type(nil), types...)}
}

// With returns a new catalog with extra types appended after the existing ones.
func (c *Catalog) With(extra ...*Type) *Catalog {
	types := make([]*Type, 0, len(c.types)+len(extra))
	types = append(types, c.types...)
	types = append(types, extra...)
	return &Catalog{types: types}
}

// Len returns the number of types.
func (c *Catalog) Len() int {
	return len(c.types)
}

// Type returns the type at index i.
func (c *Catalog) Type(i int) *Type {
	return c.types[i]
}

// Index returns the index of t, or -1 if t is not in the catalog.
func (c *Catalog) Index(t *Type) int {
	for i, candidate := range c.types {
		if candidate == t {
			return i
		}
	}
	return -1
}

// Piece returns a piece of the type at index i with every cell set to i.
func (c *Catalog) Piece(i int) Piece {
	t := c.types[i]
	values := make([]uint32, t.CellCount())
	for j := range values {
		values[j] = uint32(i)
	}
	return Piece{Type: t, Index: i, Values: values}
}

// Piece is a type paired with the values its cells will write to the board.
type Piece struct {
	Type   *Type
	Index  int
	Values []uint32
}

// WithValues returns a copy of the piece carrying values instead.
func (p Piece) WithValues(values []uint32) Piece {
	p.Values = values
	return p
}
