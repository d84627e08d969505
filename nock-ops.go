package nock

func Classify(n Noun) Kind {
	if _, ok := n.(*Cell); ok {
		return KindCell
	}
	return KindAtom
}

// CellTest is the product of opcode 3: `Yes` for a cell, `No` for an atom.
func CellTest(n Noun) Atom {
	if Classify(n) == KindCell {
		return Yes
	}
	return No
}

// Increment is the product of opcode 4.
func Increment(n Noun) (Noun, error) {
	if atom, ok := n.(Atom); ok {
		return atom.Inc(), nil
	}
	return nil, ErrNotAnAtom
}

// Equals is the product of opcode 5: `n` must be a cell `[a b]`, and the
// result is `Yes` exactly when `a` and `b` are structurally equal.
func Equals(n Noun) (Noun, error) {
	cell, ok := n.(*Cell)
	if !ok {
		return nil, ErrNotACell
	}
	if Equal(cell.L, cell.R) {
		return Yes, nil
	}
	return No, nil
}

// Equal reports deep structural equality: atoms by value, cells pairwise
// at every depth. Walks with an explicit stack so tree depth is unbounded.
func Equal(noun1 Noun, noun2 Noun) bool {
	todo := [][2]Noun{{noun1, noun2}}
	for len(todo) > 0 {
		pair := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		switch n1 := pair[0].(type) {
		case Atom:
			n2, ok := pair[1].(Atom)
			if !ok || n1.Cmp(n2) != 0 {
				return false
			}
		case *Cell:
			n2, ok := pair[1].(*Cell)
			if !ok {
				return false
			}
			if n1 == n2 { // same immutable subtree
				continue
			}
			todo = append(todo, [2]Noun{n1.R, n2.R}, [2]Noun{n1.L, n2.L})
		default:
			return false
		}
	}
	return true
}

// Resolve returns the subtree of `tree` at tree address `addr`: 1 is the
// root, and below the leading 1 bit of `addr` every further bit, most
// significant first, steps to the head (0) or the tail (1).
func Resolve(addr Noun, tree Noun) (Noun, error) {
	axis, ok := addr.(Atom)
	if !ok || axis.IsZero() {
		return nil, ErrInvalidAddress
	}
	cur := tree
	for i := axis.bitLen() - 2; i >= 0; i-- {
		cell, ok := cur.(*Cell)
		if !ok {
			return nil, ErrMissingChild
		}
		if axis.bit(i) == 0 {
			cur = cell.L
		} else {
			cur = cell.R
		}
	}
	return cur, nil
}
