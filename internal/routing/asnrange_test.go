package routing

import (
	"testing"

	"github.com/BourgeoisBear/rdap-gateway/internal/authority"
)

// S3 ASN range split.
func TestASNRangeSplit(t *testing.T) {
	store := authority.New()
	a, _ := store.CreateNamed("A")
	b, _ := store.CreateNamed("B")

	m := NewASNRangeMap()
	m.Insert(AsnRange{Low: 1000, High: 2000}, a)
	m.Insert(AsnRange{Low: 1500, High: 1800}, b)

	if got := m.LookupASN(1400); got != a {
		t.Errorf("1400: want A, got %v", got)
	}
	if got := m.LookupASN(1600); got != b {
		t.Errorf("1600: want B, got %v", got)
	}
	if got := m.LookupASN(1900); got != a {
		t.Errorf("1900: want A, got %v", got)
	}
}

func TestASNCoverageBoundaries(t *testing.T) {
	store := authority.New()
	a, _ := store.CreateNamed("A")

	m := NewASNRangeMap()
	m.Insert(AsnRange{Low: 100, High: 200}, a)

	for asn := uint32(100); asn <= 200; asn++ {
		if got := m.LookupASN(asn); got != a {
			t.Fatalf("asn %d: want A, got %v", asn, got)
		}
	}
	if got := m.LookupASN(99); got != nil {
		t.Errorf("99: want nil, got %v", got)
	}
	if got := m.LookupASN(201); got != nil {
		t.Errorf("201: want nil, got %v", got)
	}
}

func TestASNAdjacentCoalesce(t *testing.T) {
	store := authority.New()
	a, _ := store.CreateNamed("A")

	m := NewASNRangeMap()
	m.Insert(AsnRange{Low: 100, High: 199}, a)
	m.Insert(AsnRange{Low: 200, High: 299}, a)

	if len(m.entries) != 1 {
		t.Fatalf("expected coalesced single entry, got %d: %+v", len(m.entries), m.entries)
	}
	if got := m.LookupASN(150); got != a {
		t.Errorf("150: want A, got %v", got)
	}
	if got := m.LookupASN(250); got != a {
		t.Errorf("250: want A, got %v", got)
	}
}

func TestASNLookupRangeNotFullyCovered(t *testing.T) {
	store := authority.New()
	a, _ := store.CreateNamed("A")

	m := NewASNRangeMap()
	m.Insert(AsnRange{Low: 100, High: 150}, a)

	if got := m.Lookup(100, 200); got != nil {
		t.Errorf("partially covered range should return nil, got %v", got)
	}
}

func TestASNFullyContainedSplit(t *testing.T) {
	store := authority.New()
	a, _ := store.CreateNamed("A")
	b, _ := store.CreateNamed("B")

	m := NewASNRangeMap()
	m.Insert(AsnRange{Low: 1, High: 1000}, a)
	m.Insert(AsnRange{Low: 400, High: 410}, b)

	if got := m.LookupASN(399); got != a {
		t.Errorf("399: want A, got %v", got)
	}
	if got := m.LookupASN(405); got != b {
		t.Errorf("405: want B, got %v", got)
	}
	if got := m.LookupASN(411); got != a {
		t.Errorf("411: want A, got %v", got)
	}
}
