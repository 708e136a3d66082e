// Package authority holds the canonical Authority registry: the
// dedup-by-server-URI-set store described in spec §4.1.
package authority

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

// Authority represents one RDAP-serving organisation: a name (real or
// synthesised), a set of canonical base server URIs (empty until
// Store.AddServers registers some), and any aliases it has accumulated
// across bootstrap generations.
type Authority struct {
	Name    string
	Servers map[string]struct{}
	Aliases map[string]struct{}
}

func newAuthority(name string) *Authority {
	return &Authority{
		Name:    name,
		Servers: make(map[string]struct{}),
		Aliases: make(map[string]struct{}),
	}
}

// ServerURIs returns the authority's server set as a sorted slice, for
// deterministic iteration/output.
func (a *Authority) ServerURIs() []string {
	out := make([]string, 0, len(a.Servers))
	for u := range a.Servers {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}

// HasAlias reports whether name matches the authority's canonical name
// or one of its aliases, case-insensitively.
func (a *Authority) HasAlias(name string) bool {
	if strings.EqualFold(a.Name, name) {
		return true
	}
	for al := range a.Aliases {
		if strings.EqualFold(al, name) {
			return true
		}
	}
	return false
}

// CanonicalizeURI lowercases scheme+host, strips a default port for the
// scheme, and retains the path with a trailing slash, per spec §4.1.
func CanonicalizeURI(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}

	u.Scheme = strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	port := u.Port()

	if isDefaultPort(u.Scheme, port) {
		u.Host = host
	} else if port != "" {
		u.Host = host + ":" + port
	} else {
		u.Host = host
	}

	if u.Path == "" {
		u.Path = "/"
	} else if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	u.Fragment = ""
	return u.String(), nil
}

func isDefaultPort(scheme, port string) bool {
	switch {
	case scheme == "https" && (port == "" || port == "443"):
		return true
	case scheme == "http" && (port == "" || port == "80"):
		return true
	}
	return false
}

// URISetKey hashes a canonical, sorted set of server URIs to a stable
// identity, used to reuse anonymous authority identity across bootstrap
// generations that publish the same server set (spec §9 open question).
func URISetKey(uris []string) string {
	sorted := append([]string(nil), uris...)
	sort.Strings(sorted)
	h := sha256.New()
	for _, u := range sorted {
		h.Write([]byte(u))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
