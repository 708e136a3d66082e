package bootstrap

import (
	"github.com/BourgeoisBear/rdap-gateway/internal/authority"
	"github.com/BourgeoisBear/rdap-gateway/internal/config"
	"github.com/BourgeoisBear/rdap-gateway/internal/store"
)

// SeedStaticAuthorities registers operator-configured (or default
// well-known RIR) authorities in authStore before a cycle's IANA data
// is staged, per SPEC_FULL.md supplemented feature 3. It does not
// insert any routing-map entries of its own: these entries exist so
// entity-handle lookups (spec §4.6, "NET-ARIN" style suffixes) and
// name-based lookups resolve even before the first successful
// bootstrap scrape completes. Bootstrap-sourced prefixes/ranges are
// free to point at the very same authority object once scraped, since
// GetOrCreateByServerURIs dedups by server URI.
func SeedStaticAuthorities(statics []config.StaticAuthority) func(*store.Builder, *authority.Store) error {
	return func(_ *store.Builder, authStore *authority.Store) error {
		for _, sa := range statics {
			if existing := authStore.FindByName(sa.Name); existing != nil {
				continue
			}
			a, err := authStore.CreateNamed(sa.Name)
			if err != nil {
				return err
			}
			if err := authStore.AddServers(a, sa.ServerURIs); err != nil {
				return err
			}
		}
		return nil
	}
}
