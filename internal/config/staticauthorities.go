package config

// StaticAuthority is one operator-configured authority overlay entry
// (spec §1 "optional operator-configured authorities", supplemented
// per SPEC_FULL.md feature 3). This is adapted from the teacher's
// rdap.RIRKey / rdap.GetRDAPUrls fixed RIR table: instead of a fixed
// lookup used by a REPL client, it is the gateway's default seed of
// well-known RIR RDAP bases, registered by name in the AuthorityStore
// at the start of a scrape cycle. It carries no prefixes, ranges or
// suffixes, so it adds no routing-map entries.
type StaticAuthority struct {
	Name       string
	ServerURIs []string
}

// DefaultStaticAuthorities returns the five RIRs' well-known RDAP
// bases. The list is fixed in code and not read from configuration;
// it exists so the gateway has a sane fallback authority set before
// its first successful bootstrap scrape.
func DefaultStaticAuthorities() []StaticAuthority {
	return []StaticAuthority{
		{Name: "RIPENCC", ServerURIs: []string{"https://rdap.db.ripe.net/"}},
		{Name: "LACNIC", ServerURIs: []string{"https://rdap.lacnic.net/rdap/"}},
		{Name: "AFRINIC", ServerURIs: []string{"https://rdap.afrinic.net/rdap/"}},
		{Name: "APNIC", ServerURIs: []string{"https://rdap.apnic.net/"}},
		{Name: "ARIN", ServerURIs: []string{"https://rdap.arin.net/registry/"}},
	}
}
