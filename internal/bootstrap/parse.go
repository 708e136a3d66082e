package bootstrap

import (
	"net/netip"
	"strconv"
	"strings"

	"github.com/BourgeoisBear/rdap-gateway/internal/rerr"
	"github.com/BourgeoisBear/rdap-gateway/internal/routing"
)

// ParseASNResource parses "N" or "N-M" into an AsnRange, per spec §6
// ("for asn.json each resource is "N" or "N-M"").
func ParseASNResource(s string) (routing.AsnRange, error) {
	s = strings.TrimSpace(s)
	if lo, hi, ok := strings.Cut(s, "-"); ok {
		low, err := strconv.ParseUint(strings.TrimSpace(lo), 10, 32)
		if err != nil {
			return routing.AsnRange{}, rerr.Wrap(rerr.BootstrapFormatError, "invalid asn range low: "+s)
		}
		high, err := strconv.ParseUint(strings.TrimSpace(hi), 10, 32)
		if err != nil {
			return routing.AsnRange{}, rerr.Wrap(rerr.BootstrapFormatError, "invalid asn range high: "+s)
		}
		if low > high {
			return routing.AsnRange{}, rerr.Wrap(rerr.BootstrapFormatError, "asn range low > high: "+s)
		}
		return routing.AsnRange{Low: uint32(low), High: uint32(high)}, nil
	}

	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return routing.AsnRange{}, rerr.Wrap(rerr.BootstrapFormatError, "invalid asn: "+s)
	}
	return routing.AsnRange{Low: uint32(n), High: uint32(n)}, nil
}

// ParseIPPrefix parses a CIDR string into a netip.Prefix, per spec §6
// ("for ipv4.json / ipv6.json each is a CIDR string").
func ParseIPPrefix(s string) (netip.Prefix, error) {
	p, err := netip.ParsePrefix(strings.TrimSpace(s))
	if err != nil {
		return netip.Prefix{}, rerr.Wrap(rerr.BootstrapFormatError, "invalid cidr: "+s)
	}
	return p.Masked(), nil
}

// ParseTLD normalises a dns.json resource string to a lowercase
// suffix label.
func ParseTLD(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return "", rerr.Wrap(rerr.BootstrapFormatError, "empty tld resource")
	}
	return s, nil
}
