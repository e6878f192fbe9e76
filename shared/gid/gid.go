// Package gid decodes the packed 32-bit tile references stored in map data.
// The top four bits carry flip/rotation flags and the low 28 bits carry the
// tile index inside the map's combined tileset address space.
package gid

// Raw flag bits as they appear in map data.
const (
	flippedHorizontally uint32 = 0x80000000
	flippedVertically   uint32 = 0x40000000
	flippedDiagonally   uint32 = 0x20000000
	rotatedHexagonal120 uint32 = 0x10000000

	flagBits  = flippedHorizontally | flippedVertically | flippedDiagonally | rotatedHexagonal120
	IndexMask = ^flagBits

	// MaxIndex is the largest tile index that survives an encode/decode round trip.
	MaxIndex = IndexMask
)

// FlipFlags is the decoded flag set of a tile reference.
type FlipFlags uint8

const (
	None       FlipFlags = 0
	Diagonal   FlipFlags = 1 << 0
	Vertical   FlipFlags = 1 << 1
	Horizontal FlipFlags = 1 << 2
	// Rotate120 is only meaningful on hexagonal maps.
	Rotate120 FlipFlags = 1 << 3
)

// Has reports whether every bit of which is set.
func (f FlipFlags) Has(which FlipFlags) bool {
	return f&which == which
}

// IsFlagSet is the free-function form of Has.
func IsFlagSet(flags, which FlipFlags) bool {
	return flags.Has(which)
}

func (f FlipFlags) String() string {
	if f == None {
		return "none"
	}
	s := ""
	add := func(name string) {
		if s != "" {
			s += "|"
		}
		s += name
	}
	if f.Has(Horizontal) {
		add("h")
	}
	if f.Has(Vertical) {
		add("v")
	}
	if f.Has(Diagonal) {
		add("d")
	}
	if f.Has(Rotate120) {
		add("r120")
	}
	return s
}

// Decode splits a raw tile reference into its index and flags.
// Index 0 means "no tile".
func Decode(raw uint32) (uint32, FlipFlags) {
	var flags FlipFlags
	if raw&flippedHorizontally != 0 {
		flags |= Horizontal
	}
	if raw&flippedVertically != 0 {
		flags |= Vertical
	}
	if raw&flippedDiagonally != 0 {
		flags |= Diagonal
	}
	if raw&rotatedHexagonal120 != 0 {
		flags |= Rotate120
	}
	return raw & IndexMask, flags
}

// Encode packs an index and flags into a raw tile reference. Index bits that
// collide with the flag bits are discarded.
func Encode(index uint32, flags FlipFlags) uint32 {
	raw := index & IndexMask
	if flags.Has(Horizontal) {
		raw |= flippedHorizontally
	}
	if flags.Has(Vertical) {
		raw |= flippedVertically
	}
	if flags.Has(Diagonal) {
		raw |= flippedDiagonally
	}
	if flags.Has(Rotate120) {
		raw |= rotatedHexagonal120
	}
	return raw
}

// GID is a raw tile reference as read from map data.
type GID uint32

func (g GID) Index() uint32 {
	i, _ := Decode(uint32(g))
	return i
}

func (g GID) Flags() FlipFlags {
	_, f := Decode(uint32(g))
	return f
}

// IsEmpty reports whether the reference points at no tile.
func (g GID) IsEmpty() bool {
	return g.Index() == 0
}
