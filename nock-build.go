package nock

import (
	"fmt"
	"math/big"
)

// Assoc folds `v` to the right into nested cells: `Assoc(a, b, c)` is
// `[a [b c]]`. A single element is returned as its noun. Elements may be
// nouns, Go integers, `*big.Int`, `string` or `[]byte` (as cords), or a
// nested `[]any` / `[]Noun`, which is itself associated into one noun.
func Assoc(v ...any) (Noun, error) {
	if len(v) == 0 {
		return nil, ErrEmptySequence
	}
	ret, err := asNoun(v[len(v)-1])
	if err != nil {
		return nil, err
	}
	for i := len(v) - 2; i >= 0; i-- {
		l, err := asNoun(v[i])
		if err != nil {
			return nil, err
		}
		ret = C(l, ret)
	}
	return ret, nil
}

// N is `Assoc` for literals known to be well-formed; it panics otherwise.
func N(v ...any) Noun {
	n, err := Assoc(v...)
	if err != nil {
		panic(err)
	}
	return n
}

func asNoun(v any) (Noun, error) {
	switch t := v.(type) {
	case Atom:
		return t, nil
	case *Cell:
		if t == nil {
			break
		}
		return t, nil
	case Cell:
		return &t, nil
	case []any:
		return Assoc(t...)
	case []Noun:
		elems := make([]any, len(t))
		for i := range t {
			elems[i] = t[i]
		}
		return Assoc(elems...)
	case *big.Int:
		return AtomFromBig(t)
	case string:
		return AtomFromBytes([]byte(t)), nil
	case []byte:
		return AtomFromBytes(t), nil
	case uint:
		return A(uint64(t)), nil
	case uint8:
		return A(uint64(t)), nil
	case uint16:
		return A(uint64(t)), nil
	case uint32:
		return A(uint64(t)), nil
	case uint64:
		return A(t), nil
	case int:
		return atomOfInt(int64(t))
	case int8:
		return atomOfInt(int64(t))
	case int16:
		return atomOfInt(int64(t))
	case int32:
		return atomOfInt(int64(t))
	case int64:
		return atomOfInt(t)
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
}

func atomOfInt(i int64) (Noun, error) {
	if i < 0 {
		return nil, ErrNegativeAtom
	}
	return A(uint64(i)), nil
}
