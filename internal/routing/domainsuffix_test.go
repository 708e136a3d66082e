package routing

import (
	"testing"

	"github.com/BourgeoisBear/rdap-gateway/internal/authority"
)

// S4 Domain suffix.
func TestDomainSuffixPrecedence(t *testing.T) {
	store := authority.New()
	a, _ := store.CreateNamed("A")
	b, _ := store.CreateNamed("B")

	m := NewDomainSuffixMap()
	m.Insert("uk", a)
	m.Insert("co.uk", b)

	if got := m.Lookup("example.co.uk"); got != b {
		t.Errorf("example.co.uk: want B, got %v", got)
	}
	if got := m.Lookup("example.uk"); got != a {
		t.Errorf("example.uk: want A, got %v", got)
	}
	if got := m.Lookup("example.com"); got != nil {
		t.Errorf("example.com: want nil, got %v", got)
	}
}

func TestDomainSuffixDeepOverride(t *testing.T) {
	store := authority.New()
	a, _ := store.CreateNamed("A")
	b, _ := store.CreateNamed("B")

	m := NewDomainSuffixMap()
	m.Insert("co.uk", a)
	m.Insert("bbc.co.uk", b)

	if got := m.Lookup("news.bbc.co.uk"); got != b {
		t.Errorf("news.bbc.co.uk: want B, got %v", got)
	}
	if got := m.Lookup("news.itv.co.uk"); got != a {
		t.Errorf("news.itv.co.uk: want A, got %v", got)
	}
}

func TestDomainSuffixCaseInsensitive(t *testing.T) {
	store := authority.New()
	a, _ := store.CreateNamed("A")

	m := NewDomainSuffixMap()
	m.Insert("CO.UK", a)

	if got := m.Lookup("Example.Co.Uk"); got != a {
		t.Errorf("want case-insensitive match, got %v", got)
	}
}
