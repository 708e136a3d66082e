package directory

import (
	"errors"
	"net/netip"
	"testing"

	"github.com/BourgeoisBear/rdap-gateway/internal/authority"
	"github.com/BourgeoisBear/rdap-gateway/internal/rerr"
	"github.com/BourgeoisBear/rdap-gateway/internal/routing"
	"github.com/BourgeoisBear/rdap-gateway/internal/store"
)

func TestIPAddrAuthorityNotFound(t *testing.T) {
	s := store.New()
	d := New(s)

	_, err := d.IPAddrAuthority(netip.MustParseAddr("192.0.2.1"))
	if !errors.Is(err, rerr.ResourceNotFound) {
		t.Fatalf("expected ResourceNotFound, got %v", err)
	}
}

func TestAutnumAuthorityFound(t *testing.T) {
	authStore := authority.New()
	a, _ := authStore.CreateNamed("A")

	s := store.New()
	b := s.Stage()
	b.ASNMap().Insert(routing.AsnRange{Low: 100, High: 200}, a)
	s.Commit(b)

	d := New(s)
	got, err := d.AutnumAuthority(150)
	if err != nil {
		t.Fatal(err)
	}
	if got != a {
		t.Fatalf("want A, got %v", got)
	}
}

func TestDomainAuthorityMalformed(t *testing.T) {
	s := store.New()
	d := New(s)

	_, err := d.DomainAuthority("bad..name")
	if !errors.Is(err, rerr.MalformedRequest) {
		t.Fatalf("expected MalformedRequest, got %v", err)
	}
}

func TestEntityAuthorityBySuffix(t *testing.T) {
	authStore := authority.New()
	a, _ := authStore.CreateNamed("ARIN")

	s := store.New()
	d := New(s)

	got, err := d.EntityAuthority("NET-ARIN", authStore)
	if err != nil {
		t.Fatal(err)
	}
	if got != a {
		t.Fatalf("want ARIN, got %v", got)
	}
}

func TestEntityAuthorityMalformed(t *testing.T) {
	authStore := authority.New()
	s := store.New()
	d := New(s)

	_, err := d.EntityAuthority("NOHYPHEN", authStore)
	if !errors.Is(err, rerr.MalformedRequest) {
		t.Fatalf("expected MalformedRequest, got %v", err)
	}
}

func TestParseHelpers(t *testing.T) {
	if _, err := ParseASN("not-a-number"); !errors.Is(err, rerr.MalformedRequest) {
		t.Errorf("ParseASN: expected MalformedRequest, got %v", err)
	}
	if _, err := ParsePrefix("not-a-cidr"); !errors.Is(err, rerr.MalformedRequest) {
		t.Errorf("ParsePrefix: expected MalformedRequest, got %v", err)
	}
	if _, err := ParseAddr("not-an-ip"); !errors.Is(err, rerr.MalformedRequest) {
		t.Errorf("ParseAddr: expected MalformedRequest, got %v", err)
	}
}

