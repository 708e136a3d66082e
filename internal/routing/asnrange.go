package routing

import (
	"sort"

	"github.com/BourgeoisBear/rdap-gateway/internal/authority"
)

// AsnRange is a closed interval [Low, High] of unsigned 32-bit ASNs,
// Low <= High (spec §3).
type AsnRange struct {
	Low, High uint32
}

type asnEntry struct {
	rng       AsnRange
	authority *authority.Authority
}

// ASNRangeMap stores a set of non-overlapping AsnRange -> Authority
// mappings as an ordered slice, permitting O(log n) binary search by
// low bound (spec §4.3).
type ASNRangeMap struct {
	entries []asnEntry
}

// NewASNRangeMap returns an empty map.
func NewASNRangeMap() *ASNRangeMap {
	return &ASNRangeMap{}
}

// Insert adds rng -> a. Any stored range overlapping rng is split so
// that the overlapping portion is owned by a (the new range wins on
// overlap, per spec §4.3); adjacent ranges left owned by the same
// authority as a are coalesced.
func (m *ASNRangeMap) Insert(rng AsnRange, a *authority.Authority) {
	if rng.Low > rng.High {
		return
	}

	out := make([]asnEntry, 0, len(m.entries)+2)
	inserted := false

	insertNew := func() {
		if !inserted {
			out = append(out, asnEntry{rng: rng, authority: a})
			inserted = true
		}
	}

	for _, e := range m.entries {
		switch {
		case e.rng.High < rng.Low:
			// entirely before new range
			out = append(out, e)
		case e.rng.Low > rng.High:
			// entirely after: insert new range first if not yet placed
			insertNew()
			out = append(out, e)
		default:
			// overlaps: keep the non-overlapping remainder(s) of e
			if e.rng.Low < rng.Low {
				out = append(out, asnEntry{rng: AsnRange{Low: e.rng.Low, High: rng.Low - 1}, authority: e.authority})
			}
			if e.rng.High > rng.High {
				// defer the trailing remainder until after the new range is placed
				insertNew()
				out = append(out, asnEntry{rng: AsnRange{Low: rng.High + 1, High: e.rng.High}, authority: e.authority})
				inserted = true // new range already placed above
				continue
			}
			// e fully consumed by rng; drop it
		}
	}
	insertNew()

	sort.Slice(out, func(i, j int) bool { return out[i].rng.Low < out[j].rng.Low })
	m.entries = coalesce(out)
}

func coalesce(entries []asnEntry) []asnEntry {
	if len(entries) == 0 {
		return entries
	}
	out := make([]asnEntry, 0, len(entries))
	cur := entries[0]
	for _, e := range entries[1:] {
		if e.authority == cur.authority && e.rng.Low == cur.rng.High+1 {
			cur.rng.High = e.rng.High
			continue
		}
		out = append(out, cur)
		cur = e
	}
	out = append(out, cur)
	return out
}

// Lookup returns the authority covering every ASN in [low, high], or
// nil if that interval is not entirely covered by a single stored
// range.
func (m *ASNRangeMap) Lookup(low, high uint32) *authority.Authority {
	i := sort.Search(len(m.entries), func(i int) bool { return m.entries[i].rng.High >= low })
	if i >= len(m.entries) {
		return nil
	}
	e := m.entries[i]
	if e.rng.Low <= low && high <= e.rng.High {
		return e.authority
	}
	return nil
}

// LookupASN is Lookup for a single ASN.
func (m *ASNRangeMap) LookupASN(asn uint32) *authority.Authority {
	return m.Lookup(asn, asn)
}
