package money_test

import (
	"testing"

	"github.com/amirasaad/opsledger/pkg/money"
)

// FuzzRoundTrip checks that every amount survives formatting and parsing unchanged.
func FuzzRoundTrip(f *testing.F) {
	f.Add(int64(0))
	f.Add(int64(1))
	f.Add(int64(-2500000))
	f.Add(int64(10000000))

	f.Fuzz(func(t *testing.T, n int64) {
		a := money.Amount(n)
		got, err := money.Parse(money.Format(a))
		if err != nil {
			t.Fatalf("Parse(Format(%d)) failed: %v", n, err)
		}
		if got != a {
			t.Errorf("round trip changed amount: got %d, want %d", got, a)
		}
	})
}

// FuzzParse checks that parsing never panics and that parsed values are stable.
func FuzzParse(f *testing.F) {
	f.Add("12345 ₸")
	f.Add("-0.5")
	f.Add("abc")

	f.Fuzz(func(t *testing.T, s string) {
		first, err := money.Parse(s)
		if err != nil {
			return
		}
		second, err := money.Parse(money.Format(first))
		if err != nil {
			t.Fatalf("re-parse of %q failed: %v", money.Format(first), err)
		}
		if first != second {
			t.Errorf("unstable parse for %q: %d then %d", s, first, second)
		}
	})
}
