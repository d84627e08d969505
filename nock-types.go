package nock

import (
	"math"
	"math/big"
	"math/bits"
	"strconv"
	"strings"
)

// Loobeans: in this calculus 0 means yes and 1 means no.
var (
	Yes = A(0)
	No  = A(1)
)

// Noun is either an `Atom` or a `*Cell`. Nouns never change once built.
type Noun interface {
	String() string
	isNoun()
}

// Atom is an unsigned integer of unbounded magnitude. Values that fit in
// 64 bits live in `small`; `big` is only ever set for larger ones, so
// each value has exactly one representation.
type Atom struct {
	small uint64
	big   *big.Int
}

// Cell is an ordered pair of nouns.
type Cell struct {
	L Noun
	R Noun
}

// Kind tags a noun as atom or cell.
type Kind uint8

const (
	KindAtom Kind = iota
	KindCell
)

func (me Kind) String() string {
	if me == KindCell {
		return "cell"
	}
	return "atom"
}

func (Atom) isNoun()  {}
func (*Cell) isNoun() {}

// A returns the atom `v`.
func A(v uint64) Atom { return Atom{small: v} }

// C returns the cell `[l r]`.
func C(l Noun, r Noun) *Cell { return &Cell{L: l, R: r} }

// AtomFromBig returns a copy of `v` as an atom.
func AtomFromBig(v *big.Int) (Atom, error) {
	if v.Sign() < 0 {
		return Atom{}, ErrNegativeAtom
	}
	return atomOfBig(new(big.Int).Set(v)), nil
}

// AtomFromBytes reads `b` as a little-endian number, which is how text
// ("cords") is conventionally stored in atoms.
func AtomFromBytes(b []byte) Atom {
	be := make([]byte, len(b))
	for i := range b {
		be[len(b)-1-i] = b[i]
	}
	return atomOfBig(new(big.Int).SetBytes(be))
}

// atomOfBig takes ownership of `v`, which must be non-negative.
func atomOfBig(v *big.Int) Atom {
	if v.IsUint64() {
		return Atom{small: v.Uint64()}
	}
	return Atom{big: v}
}

// Uint64 reports the atom's value and whether it fits in 64 bits.
func (me Atom) Uint64() (uint64, bool) { return me.small, me.big == nil }

// Big returns the value as a fresh `*big.Int` owned by the caller.
func (me Atom) Big() *big.Int {
	if me.big != nil {
		return new(big.Int).Set(me.big)
	}
	return new(big.Int).SetUint64(me.small)
}

// Bytes is the inverse of `AtomFromBytes`: little-endian, no trailing zeros.
func (me Atom) Bytes() []byte {
	b := me.Big().Bytes()
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b
}

func (me Atom) IsZero() bool { return me.big == nil && me.small == 0 }

// Cmp returns -1, 0 or +1 as `me` is less than, equal to or greater than `other`.
func (me Atom) Cmp(other Atom) int {
	switch {
	case me.big == nil && other.big == nil:
		if me.small < other.small {
			return -1
		} else if me.small > other.small {
			return 1
		}
		return 0
	case me.big == nil:
		return -1
	case other.big == nil:
		return 1
	}
	return me.big.Cmp(other.big)
}

// Inc returns `me + 1`.
func (me Atom) Inc() Atom {
	if me.big == nil {
		if me.small < math.MaxUint64 {
			return Atom{small: me.small + 1}
		}
		return Atom{big: new(big.Int).Add(new(big.Int).SetUint64(me.small), big.NewInt(1))}
	}
	return Atom{big: new(big.Int).Add(me.big, big.NewInt(1))}
}

func (me Atom) bitLen() int {
	if me.big != nil {
		return me.big.BitLen()
	}
	return bits.Len64(me.small)
}

func (me Atom) bit(i int) uint {
	if me.big != nil {
		return me.big.Bit(i)
	}
	return uint(me.small>>uint(i)) & 1
}

func (me Atom) String() string {
	if me.big != nil {
		return me.big.String()
	}
	return strconv.FormatUint(me.small, 10)
}

// String renders right-nested cells flat: `[1 [2 3]]` prints as `[1 2 3]`.
func (me *Cell) String() string {
	var buf strings.Builder
	me.writeTo(&buf)
	return buf.String()
}

func (me *Cell) writeTo(buf *strings.Builder) {
	buf.WriteByte('[')
	for cur := me; ; {
		writeNoun(buf, cur.L)
		buf.WriteByte(' ')
		next, ok := cur.R.(*Cell)
		if !ok {
			writeNoun(buf, cur.R)
			break
		}
		cur = next
	}
	buf.WriteByte(']')
}

func writeNoun(buf *strings.Builder, n Noun) {
	if cell, ok := n.(*Cell); ok {
		cell.writeTo(buf)
	} else {
		buf.WriteString(n.String())
	}
}
