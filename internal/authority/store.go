package authority

import (
	"fmt"
	"sort"
	"sync"

	"github.com/BourgeoisBear/rdap-gateway/internal/rerr"
)

// Store is the single source of truth for URI -> Authority ownership.
// Reads and writes are serialised by an internal mutex (spec §5): the
// routing maps only ever hold back-references to authorities minted
// here, so an Authority's lifetime is bounded by the Store.
type Store struct {
	mu        sync.Mutex
	byName    map[string]*Authority
	byURI     map[string]*Authority
	anonBySet map[string]*Authority // keyed by URISetKey, for stable anonymous identity
	anonSeq   int
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		byName:    make(map[string]*Authority),
		byURI:     make(map[string]*Authority),
		anonBySet: make(map[string]*Authority),
	}
}

// Names returns every registered authority's canonical name, sorted,
// for diagnostic enumeration (e.g. rdap-gatewayctl's "authorities"
// command).
func (s *Store) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.byName))
	for name := range s.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FindByName returns the authority registered under name; failing an
// exact match, an authority whose name or an alias matches name
// case-insensitively (see Authority.HasAlias); otherwise nil.
func (s *Store) FindByName(name string) *Authority {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.byName[name]; ok {
		return a
	}
	for _, a := range s.byName {
		if a.HasAlias(name) {
			return a
		}
	}
	return nil
}

// FindByServerURIs returns the authority whose server set intersects
// uris, or nil if none does. It fails with rerr.AmbiguousAuthority if
// more than one registered authority claims a URI in the set.
func (s *Store) FindByServerURIs(uris []string) (*Authority, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findByServerURIsLocked(uris)
}

func (s *Store) findByServerURIsLocked(uris []string) (*Authority, error) {
	var found *Authority
	for _, raw := range uris {
		canon, err := CanonicalizeURI(raw)
		if err != nil {
			continue
		}
		if a, ok := s.byURI[canon]; ok {
			if found == nil {
				found = a
			} else if found != a {
				return nil, rerr.Wrap(rerr.AmbiguousAuthority,
					fmt.Sprintf("uris %v match both %q and %q", uris, found.Name, a.Name))
			}
		}
	}
	return found, nil
}

// CreateNamed registers a new authority with the given name and no
// servers. It fails if the name is already taken.
func (s *Store) CreateNamed(name string) (*Authority, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byName[name]; ok {
		return nil, errNameTaken(name)
	}
	a := newAuthority(name)
	s.byName[name] = a
	return a, nil
}

// CreateAnonymous mints an authority with a fresh synthetic name and an
// empty server set (spec §4.1). Anonymity is nominal only: the caller
// is expected to immediately AddServers so the anonymous authority can
// be looked up again by GetOrCreateByServerURIs on the next cycle.
func (s *Store) CreateAnonymous() *Authority {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createAnonymousLocked()
}

func (s *Store) createAnonymousLocked() *Authority {
	s.anonSeq++
	name := fmt.Sprintf("anon-%d", s.anonSeq)
	a := newAuthority(name)
	s.byName[name] = a
	return a
}

// GetOrCreateByServerURIs finds an existing authority claiming any of
// uris; failing that, it reuses a prior anonymous authority that was
// minted for this exact canonical URI set (keyed by a hash of the
// set, spec §9 "persist anonymous identity by canonical URI-set hash");
// failing that, it mints a fresh anonymous authority and registers the
// URIs on it. This is the operation the bootstrap scraper calls per
// BootstrapService (spec §4.7 step 3b).
func (s *Store) GetOrCreateByServerURIs(uris []string) (*Authority, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a, err := s.findByServerURIsLocked(uris); err != nil {
		return nil, err
	} else if a != nil {
		return a, nil
	}

	canon := make([]string, 0, len(uris))
	for _, raw := range uris {
		c, err := CanonicalizeURI(raw)
		if err != nil {
			return nil, rerr.Wrap(rerr.BootstrapFormatError, "invalid server uri "+raw)
		}
		canon = append(canon, c)
	}

	key := URISetKey(canon)
	a, ok := s.anonBySet[key]
	if !ok {
		a = s.createAnonymousLocked()
		s.anonBySet[key] = a
	}

	if err := s.addServersLocked(a, canon); err != nil {
		return nil, err
	}
	return a, nil
}

// AddServers extends authority's server set with uris. It fails with
// rerr.ServerConflict if any URI is already claimed by a different
// authority.
func (s *Store) AddServers(a *Authority, uris []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	canon := make([]string, 0, len(uris))
	for _, raw := range uris {
		c, err := CanonicalizeURI(raw)
		if err != nil {
			return rerr.Wrap(rerr.BootstrapFormatError, "invalid server uri "+raw)
		}
		canon = append(canon, c)
	}
	return s.addServersLocked(a, canon)
}

func (s *Store) addServersLocked(a *Authority, canonURIs []string) error {
	for _, c := range canonURIs {
		if owner, ok := s.byURI[c]; ok && owner != a {
			return rerr.Wrap(rerr.ServerConflict,
				fmt.Sprintf("uri %q already claimed by %q", c, owner.Name))
		}
	}
	for _, c := range canonURIs {
		a.Servers[c] = struct{}{}
		s.byURI[c] = a
	}
	return nil
}

// AddAlias records an additional name by which a may be looked up.
func (s *Store) AddAlias(a *Authority, alias string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.Aliases[alias] = struct{}{}
}

func errNameTaken(name string) error {
	return rerr.Wrap(rerr.ServerConflict, fmt.Sprintf("authority name %q already registered", name))
}
