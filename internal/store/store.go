// Package store holds the ResourceStore (spec §4.5): the atomic,
// single-writer/many-reader handle to one immutable Generation of the
// three routing maps.
package store

import (
	"sync"
	"sync/atomic"

	"github.com/BourgeoisBear/rdap-gateway/internal/routing"
)

// Generation is an immutable snapshot of the routing maps (spec §3).
// Once built, none of its fields are ever mutated again — readers
// holding a Generation see a consistent view for its entire lifetime
// (spec invariant 4), regardless of concurrent commits.
type Generation struct {
	IPTable  *routing.IPRoutingTable
	ASNMap   *routing.ASNRangeMap
	Domains  *routing.DomainSuffixMap
	sequence uint64
}

// Sequence is a monotonically increasing generation counter, useful
// for operators to confirm a refresh actually advanced the live data.
func (g *Generation) Sequence() uint64 {
	if g == nil {
		return 0
	}
	return g.sequence
}

// Builder accumulates inserts into a not-yet-committed Generation.
// Per spec §4.7, one cycle's four IANA endpoints are fetched and
// staged concurrently, so a Builder is written to by up to four
// goroutines at once — but each goroutine owns a distinct resource
// kind (asn, dns, ipv4, ipv6), and IPTable's v4/v6 tries are disjoint
// subtrees, so concurrent staging never touches the same memory and
// needs no lock of its own. The one piece of state genuinely shared
// across endpoints, the AuthorityStore, guards itself internally.
type Builder struct {
	ipTable *routing.IPRoutingTable
	asnMap  *routing.ASNRangeMap
	domains *routing.DomainSuffixMap
}

func newBuilder() *Builder {
	return &Builder{
		ipTable: routing.NewIPRoutingTable(),
		asnMap:  routing.NewASNRangeMap(),
		domains: routing.NewDomainSuffixMap(),
	}
}

// IPTable returns the builder's staging IP routing table.
func (b *Builder) IPTable() *routing.IPRoutingTable { return b.ipTable }

// ASNMap returns the builder's staging ASN range map.
func (b *Builder) ASNMap() *routing.ASNRangeMap { return b.asnMap }

// Domains returns the builder's staging domain suffix map.
func (b *Builder) Domains() *routing.DomainSuffixMap { return b.domains }

func (b *Builder) build(sequence uint64) *Generation {
	return &Generation{IPTable: b.ipTable, ASNMap: b.asnMap, Domains: b.domains, sequence: sequence}
}

// ResourceStore holds one Generation behind an atomic pointer (spec
// §4.5, §5: "read = atomic load, write = atomic store after
// construction"). Readers never block writers and vice versa.
type ResourceStore struct {
	current  atomic.Pointer[Generation]
	commitMu sync.Mutex
	seq      uint64
}

// New returns a ResourceStore seeded with an empty Generation.
func New() *ResourceStore {
	s := &ResourceStore{}
	s.current.Store(newBuilder().build(0))
	return s
}

// Snapshot returns the current generation for a read (spec §4.5). The
// returned pointer is safe to hold across concurrent commits; it will
// never be mutated.
func (s *ResourceStore) Snapshot() *Generation {
	return s.current.Load()
}

// Stage returns a fresh, empty Builder for a refresh cycle to
// populate offline.
func (s *ResourceStore) Stage() *Builder {
	return newBuilder()
}

// Commit atomically replaces the live generation with b's result.
// Concurrent commits are serialised by commitMu; the last committer
// wins (spec §4.5).
func (s *ResourceStore) Commit(b *Builder) *Generation {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()
	s.seq++
	gen := b.build(s.seq)
	s.current.Store(gen)
	return gen
}
