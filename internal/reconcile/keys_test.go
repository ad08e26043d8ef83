package reconcile

import (
	"testing"
)

func TestBusinessKey_CanonicalDecimals(t *testing.T) {
	a := preMsg(1)
	a.Volume = dec("100.00")
	a.Price = dec("99.50")

	b := preMsg(2)
	b.Volume = dec("100")
	b.Price = dec("99.5")

	if businessKeyOf(a) != businessKeyOf(b) {
		t.Fatalf("decimal scale must not affect key equality:\n%+v\n%+v",
			businessKeyOf(a), businessKeyOf(b))
	}

	b.Price = dec("99.51")
	if businessKeyOf(a) == businessKeyOf(b) {
		t.Fatalf("different prices must produce different keys")
	}
}

func TestBusinessKey_ExecutionTimeMatters(t *testing.T) {
	a := preMsg(1)
	b := preMsg(2)
	b.ExecutionTime = clock(14, 30, 1)

	if businessKeyOf(a) == businessKeyOf(b) {
		t.Fatalf("execution time is part of the business key")
	}
	if groupKeyOf(a) != groupKeyOf(b) {
		t.Fatalf("execution time must not be part of the reversal group key")
	}
}
