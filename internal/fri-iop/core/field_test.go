package core

import (
	"bytes"
	"testing"

	"github.com/holiman/uint256"
)

func TestFieldArithmetic(t *testing.T) {
	f, err := NewField(uint256.NewInt(2013265921))
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}

	t.Run("add_sub_roundtrip", func(t *testing.T) {
		a := f.FromU64(17)
		b := f.FromU64(42)
		sum := a.Add(b)
		back := sum.Sub(b)
		if !back.Equals(a) {
			t.Fatalf("a+b-b = %s, want %s", back, a)
		}
	})

	t.Run("mul_inverse", func(t *testing.T) {
		a := f.FromU64(12345)
		inv, err := a.Inverse()
		if err != nil {
			t.Fatalf("Inverse: %v", err)
		}
		one := a.Mul(inv)
		if !one.Equals(f.One()) {
			t.Fatalf("a*a^-1 = %s, want 1", one)
		}
	})

	t.Run("inverse_of_zero_fails", func(t *testing.T) {
		if _, err := f.Zero().Inverse(); err == nil {
			t.Fatal("expected error inverting zero")
		}
	})

	t.Run("neg", func(t *testing.T) {
		a := f.FromU64(5)
		if !a.Add(a.Neg()).IsZero() {
			t.Fatal("a + (-a) != 0")
		}
	})

	t.Run("double_equals_add_self", func(t *testing.T) {
		a := f.FromU64(9)
		if !a.Double().Equals(a.Add(a)) {
			t.Fatal("double(a) != a+a")
		}
	})

	t.Run("to_be_bytes_round_trip", func(t *testing.T) {
		a := f.FromU64(123456789)
		encoded := a.ToBEBytes(f.ByteWidth())
		back := f.FromBEBytesModOrder(encoded)
		if !back.Equals(a) {
			t.Fatalf("round trip mismatch: got %s, want %s", back, a)
		}
	})

	t.Run("from_be_bytes_mod_order_reduces", func(t *testing.T) {
		wide := bytes.Repeat([]byte{0xff}, 40)
		e := f.FromBEBytesModOrder(wide)
		if e.field != f {
			t.Fatal("wrong field attached to reduced element")
		}
	})
}

func TestRootOfUnity(t *testing.T) {
	f, err := NewField(uint256.NewInt(2013265921))
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}

	t.Run("root_of_unity_4_squared_equals_root_of_unity_2", func(t *testing.T) {
		r4, err := f.RootOfUnity(4)
		if err != nil {
			t.Fatalf("RootOfUnity(4): %v", err)
		}
		r2, err := f.RootOfUnity(2)
		if err != nil {
			t.Fatalf("RootOfUnity(2): %v", err)
		}
		if !r4.Mul(r4).Equals(r2) {
			t.Fatalf("root_of_unity(4)^2 = %s, want root_of_unity(2) = %s", r4.Mul(r4), r2)
		}
	})

	t.Run("root_of_unity_n_has_order_n", func(t *testing.T) {
		r, err := f.RootOfUnity(8)
		if err != nil {
			t.Fatalf("RootOfUnity(8): %v", err)
		}
		cur := f.One()
		for i := 0; i < 7; i++ {
			cur = cur.Mul(r)
			if cur.Equals(f.One()) {
				t.Fatalf("root_of_unity(8) has order dividing %d, want exactly 8", i+1)
			}
		}
		if !cur.Mul(r).Equals(f.One()) {
			t.Fatal("root_of_unity(8)^8 != 1")
		}
	})

	t.Run("rejects_non_power_of_two", func(t *testing.T) {
		if _, err := f.RootOfUnity(3); err == nil {
			t.Fatal("expected error for n=3")
		}
	})

	t.Run("rejects_n_exceeding_two_adicity", func(t *testing.T) {
		huge := uint64(1) << 30
		if _, err := f.RootOfUnity(huge); err == nil {
			t.Fatal("expected error for n exceeding the 2-adic order")
		}
	})
}

func TestPrimeFieldIsBabyBear(t *testing.T) {
	if Prime.Modulus().Uint64() != BabyBearModulus {
		t.Fatalf("Prime.Modulus() = %s, want %d", Prime.Modulus(), BabyBearModulus)
	}
	if Prime.ByteWidth() != 4 {
		t.Fatalf("Prime.ByteWidth() = %d, want 4", Prime.ByteWidth())
	}
}
