// Package routing holds the three lookup structures that make up the
// Resource Routing Core (spec §2): a longest-prefix IP trie, an ASN
// range map, and a domain suffix trie. Each insert takes an
// *authority.Authority handle; in Go, a pointer already is the
// GC-safe "weak handle" the spec's source language expresses with
// manual reference management, so nodes simply hold the pointer the
// Store vended them (spec §3 "Ownership").
package routing

import (
	"net/netip"

	"github.com/BourgeoisBear/rdap-gateway/internal/authority"
)

// ipTrieNode is one bit-trie node. children[0]/[1] follow the next
// address bit; authority is non-nil only at a node some prefix was
// inserted at.
type ipTrieNode struct {
	children  [2]*ipTrieNode
	authority *authority.Authority
}

// IPRoutingTable is a longest-prefix match structure over IPv4 and
// IPv6 prefixes, held as two independent bit tries (spec §4.2).
type IPRoutingTable struct {
	v4, v6 *ipTrieNode
}

// NewIPRoutingTable returns an empty routing table.
func NewIPRoutingTable() *IPRoutingTable {
	return &IPRoutingTable{v4: &ipTrieNode{}, v6: &ipTrieNode{}}
}

// InsertWarning is returned (not as an error) by Insert when it
// overwrites an authority already registered at the exact prefix, per
// spec §4.2 ("not an error - IANA data is authoritative for the
// refresh in progress").
type InsertWarning struct {
	Prefix   netip.Prefix
	Previous string
	Next     string
}

// Insert places a at the node for prefix, following address bits from
// most to least significant down to prefix.Bits(). It tolerates
// prefixes that are proper subsets of others: both survive, and
// Lookup returns whichever is more specific. If a value already
// occupies that exact node, it is overwritten and a non-nil
// *InsertWarning is returned describing the overwrite.
func (t *IPRoutingTable) Insert(prefix netip.Prefix, a *authority.Authority) *InsertWarning {
	root := t.rootFor(prefix.Addr())
	bits := prefix.Bits()
	addr := prefix.Addr()

	node := root
	for i := 0; i < bits; i++ {
		b := addrBit(addr, i)
		if node.children[b] == nil {
			node.children[b] = &ipTrieNode{}
		}
		node = node.children[b]
	}

	var warn *InsertWarning
	if node.authority != nil {
		warn = &InsertWarning{Prefix: prefix, Previous: node.authority.Name, Next: a.Name}
	}
	node.authority = a
	return warn
}

// Lookup descends the trie following address's bits from most to
// least significant and returns the authority at the deepest visited
// node that carries one — the longest matching prefix — or nil if no
// prefix, including a possible /0 catch-all, covers address.
func (t *IPRoutingTable) Lookup(address netip.Addr) *authority.Authority {
	return t.lookupPrefix(address, addrBitLen(address))
}

// LookupPrefix is Lookup but descent stops at prefix.Bits(), per spec
// §4.2's second Lookup overload ("same, but descent stops at
// prefix.prefixLength").
func (t *IPRoutingTable) LookupPrefix(prefix netip.Prefix) *authority.Authority {
	return t.lookupPrefix(prefix.Addr(), prefix.Bits())
}

func (t *IPRoutingTable) lookupPrefix(address netip.Addr, maxBits int) *authority.Authority {
	node := t.rootFor(address)
	if node == nil {
		return nil
	}

	var best *authority.Authority
	if node.authority != nil {
		best = node.authority
	}

	for i := 0; i < maxBits; i++ {
		b := addrBit(address, i)
		next := node.children[b]
		if next == nil {
			break
		}
		node = next
		if node.authority != nil {
			best = node.authority
		}
	}
	return best
}

func (t *IPRoutingTable) rootFor(a netip.Addr) *ipTrieNode {
	switch {
	case a.Is4():
		return t.v4
	case a.Is6():
		return t.v6
	default:
		return nil
	}
}

func addrBitLen(a netip.Addr) int {
	if a.Is4() {
		return 32
	}
	return 128
}

// addrBit returns the i-th bit (0 = most significant) of addr, which
// must be an IPv4 or IPv6 address (not IPv4-in-IPv6).
func addrBit(addr netip.Addr, i int) int {
	if addr.Is4() {
		b := addr.As4()
		byteIx := i / 8
		bitIx := 7 - uint(i%8)
		return int((b[byteIx] >> bitIx) & 1)
	}
	b := addr.As16()
	byteIx := i / 8
	bitIx := 7 - uint(i%8)
	return int((b[byteIx] >> bitIx) & 1)
}
