package nock

import (
	"errors"
	"math"
	"math/big"
	"testing"
)

func TestAtomInc(t *testing.T) {
	a := A(math.MaxUint64).Inc()
	if _, small := a.Uint64(); small {
		t.Fatalf("expected %s to spill into a big.Int", a)
	}
	if a.String() != "18446744073709551616" {
		t.Fatalf("expected 2^64, got %s", a)
	}
	if got := a.Inc().String(); got != "18446744073709551617" {
		t.Fatalf("expected 2^64+1, got %s", got)
	}
	if v, small := A(41).Inc().Uint64(); !small || v != 42 {
		t.Fatalf("expected 42, got %d", v)
	}
}

func TestAtomFromBig(t *testing.T) {
	small, err := AtomFromBig(big.NewInt(7))
	if err != nil {
		t.Fatal(err)
	}
	if small.Cmp(A(7)) != 0 {
		t.Fatalf("expected a small 7, got %s", small)
	}
	if _, err := AtomFromBig(big.NewInt(-1)); !errors.Is(err, ErrNegativeAtom) {
		t.Fatalf("expected ErrNegativeAtom, got %v", err)
	}

	huge := new(big.Int).Lsh(big.NewInt(1), 100)
	a, err := AtomFromBig(huge)
	if err != nil {
		t.Fatal(err)
	}
	huge.SetInt64(0) // the atom must not alias the caller's value
	if a.Big().BitLen() != 101 {
		t.Fatalf("atom changed with its source: %s", a)
	}
}

func TestAtomCmp(t *testing.T) {
	huge, _ := AtomFromBig(new(big.Int).Lsh(big.NewInt(1), 80))
	tests := []struct {
		a, b Atom
		want int
	}{
		{A(1), A(2), -1},
		{A(2), A(2), 0},
		{A(3), A(2), 1},
		{A(math.MaxUint64), huge, -1},
		{huge, A(0), 1},
		{huge, huge.Inc(), -1},
		{Atom{}, A(0), 0},
	}
	for _, tt := range tests {
		if got := tt.a.Cmp(tt.b); got != tt.want {
			t.Errorf("%s cmp %s: expected %d, got %d", tt.a, tt.b, tt.want, got)
		}
	}
}

func TestAtomBytes(t *testing.T) {
	cord := AtomFromBytes([]byte("abc"))
	// 'a' is the least significant byte
	if want := uint64('a') | uint64('b')<<8 | uint64('c')<<16; cord.Cmp(A(want)) != 0 {
		t.Fatalf("expected %d, got %s", want, cord)
	}
	if got := string(cord.Bytes()); got != "abc" {
		t.Fatalf("expected abc, got %q", got)
	}
	if len(A(0).Bytes()) != 0 {
		t.Fatal("expected no bytes for 0")
	}
	if AtomFromBytes([]byte{5, 0, 0}).Cmp(A(5)) != 0 {
		t.Fatal("trailing zero bytes must not change the value")
	}
}

func TestNounString(t *testing.T) {
	tests := []struct {
		noun Noun
		want string
	}{
		{A(42), "42"},
		{C(A(1), A(2)), "[1 2]"},
		{N(1, 2, 3), "[1 2 3]"},
		{N(N(1, 2), 3), "[[1 2] 3]"},
		{N(8, N(1, 0), N(4, 0, 1)), "[8 [1 0] 4 0 1]"},
	}
	for _, tt := range tests {
		if got := tt.noun.String(); got != tt.want {
			t.Errorf("expected %s, got %s", tt.want, got)
		}
	}
}
