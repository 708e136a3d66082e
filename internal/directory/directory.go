// Package directory implements Directory, the read-side query API
// described in spec §4.6. It is the only entry point the surrounding
// HTTP layer needs: parsing of raw request input happens here (or is
// assumed already done by the caller per resource kind), and lookups
// are dispatched to whichever of the three routing maps answers them.
package directory

import (
	"net/netip"
	"strconv"
	"strings"

	"github.com/BourgeoisBear/rdap-gateway/internal/authority"
	"github.com/BourgeoisBear/rdap-gateway/internal/rdapmodel"
	"github.com/BourgeoisBear/rdap-gateway/internal/rerr"
	"github.com/BourgeoisBear/rdap-gateway/internal/store"
)

// Directory dispatches parsed RDAP requests to the live ResourceStore
// generation. It holds no mutable state of its own beyond the handle
// to the store, which is safe for concurrent use (spec §5).
type Directory struct {
	store *store.ResourceStore
}

// New returns a Directory backed by s.
func New(s *store.ResourceStore) *Directory {
	return &Directory{store: s}
}

// Help answers the RDAP "help" request kind (spec §4.6 dispatch table
// entry; content per SPEC_FULL.md supplemented feature 2). Unlike the
// other Directory operations it never fails: help has no input to be
// malformed and no resource to be missing.
func (d *Directory) Help(gatewayVersion string) rdapmodel.HelpResponse {
	return rdapmodel.NewHelpResponse(gatewayVersion)
}

// AutnumAuthority looks up the authority responsible for asn. The
// caller is assumed to have already parsed the ASN (spec §4.6).
func (d *Directory) AutnumAuthority(asn uint32) (*authority.Authority, error) {
	gen := d.store.Snapshot()
	a := gen.ASNMap.LookupASN(asn)
	if a == nil {
		return nil, rerr.Wrapf(rerr.ResourceNotFound, "no authority for asn %d", asn)
	}
	return a, nil
}

// IPAuthority looks up the authority responsible for prefix.
func (d *Directory) IPAuthority(prefix netip.Prefix) (*authority.Authority, error) {
	gen := d.store.Snapshot()
	a := gen.IPTable.LookupPrefix(prefix)
	if a == nil {
		return nil, rerr.Wrapf(rerr.ResourceNotFound, "no authority for prefix %s", prefix)
	}
	return a, nil
}

// IPAddrAuthority looks up the authority responsible for a single
// address (the common case: an RDAP "ip/<addr>" query with no mask).
func (d *Directory) IPAddrAuthority(addr netip.Addr) (*authority.Authority, error) {
	gen := d.store.Snapshot()
	a := gen.IPTable.Lookup(addr)
	if a == nil {
		return nil, rerr.Wrapf(rerr.ResourceNotFound, "no authority for address %s", addr)
	}
	return a, nil
}

// DomainAuthority looks up the authority responsible for name by
// longest registered DNS suffix (spec §4.4, §4.6).
func (d *Directory) DomainAuthority(name string) (*authority.Authority, error) {
	if err := validateDomainName(name); err != nil {
		return nil, err
	}
	gen := d.store.Snapshot()
	a := gen.Domains.Lookup(name)
	if a == nil {
		return nil, rerr.Wrapf(rerr.ResourceNotFound, "no authority for domain %s", name)
	}
	return a, nil
}

// NameserverAuthority resolves via domain suffix, since a nameserver's
// authority is the one serving its own FQDN's zone (spec §4.6).
func (d *Directory) NameserverAuthority(fqdn string) (*authority.Authority, error) {
	return d.DomainAuthority(fqdn)
}

// EntityAuthority resolves an entity handle to its issuing authority.
// RIR-issued handles carry a trailing "-<REGISTRY>" suffix (e.g.
// "NET-ARIN" or "ORG-ARIN"); that suffix names the authority directly,
// per spec §4.6 ("entity handles carry a suffix indicating the issuing
// authority").
func (d *Directory) EntityAuthority(handle string, authStore *authority.Store) (*authority.Authority, error) {
	suffix, err := entityAuthoritySuffix(handle)
	if err != nil {
		return nil, err
	}
	a := authStore.FindByName(suffix)
	if a == nil {
		return nil, rerr.Wrapf(rerr.ResourceNotFound, "no authority for entity handle %s", handle)
	}
	return a, nil
}

func entityAuthoritySuffix(handle string) (string, error) {
	handle = strings.TrimSpace(handle)
	idx := strings.LastIndexByte(handle, '-')
	if idx <= 0 || idx == len(handle)-1 {
		return "", rerr.Wrapf(rerr.MalformedRequest, "entity handle %q has no registry suffix", handle)
	}
	return handle[idx+1:], nil
}

func validateDomainName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return rerr.Wrap(rerr.MalformedRequest, "empty domain name")
	}
	for _, label := range strings.Split(strings.TrimSuffix(name, "."), ".") {
		if label == "" {
			return rerr.Wrapf(rerr.MalformedRequest, "empty label in domain name %q", name)
		}
	}
	return nil
}

// ParseASN validates and parses a decimal ASN string, per spec §7
// MalformedRequest ("bad ASN").
func ParseASN(s string) (uint32, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, rerr.Wrapf(rerr.MalformedRequest, "invalid asn %q", s)
	}
	return uint32(n), nil
}

// ParsePrefix validates and parses a CIDR string, per spec §7
// MalformedRequest ("bad CIDR").
func ParsePrefix(s string) (netip.Prefix, error) {
	p, err := netip.ParsePrefix(strings.TrimSpace(s))
	if err != nil {
		return netip.Prefix{}, rerr.Wrapf(rerr.MalformedRequest, "invalid cidr %q", s)
	}
	return p, nil
}

// ParseAddr validates and parses a bare IP address string.
func ParseAddr(s string) (netip.Addr, error) {
	a, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return netip.Addr{}, rerr.Wrapf(rerr.MalformedRequest, "invalid ip address %q", s)
	}
	return a, nil
}
