package bootstrap

import (
	"github.com/BourgeoisBear/rdap-gateway/internal/authority"
	"github.com/BourgeoisBear/rdap-gateway/internal/rerr"
	"github.com/BourgeoisBear/rdap-gateway/internal/store"
)

// stageDocument materialises every service in doc into builder, per
// spec §4.7 step 3: canonicalise server URIs, find-or-mint the
// authority, then insert each resource into the map for kind.
func stageDocument(kind Kind, doc Document, builder *store.Builder, authStore *authority.Store) error {
	for _, svc := range doc.Services {
		if len(svc.ServerURIs) == 0 {
			continue
		}

		a, err := authStore.GetOrCreateByServerURIs(svc.ServerURIs)
		if err != nil {
			return err
		}

		for _, resource := range svc.Resources {
			if err := stageResource(kind, resource, a, builder); err != nil {
				return err
			}
		}
	}
	return nil
}

func stageResource(kind Kind, resource string, a *authority.Authority, builder *store.Builder) error {
	switch kind {
	case KindASN:
		rng, err := ParseASNResource(resource)
		if err != nil {
			return err
		}
		builder.ASNMap().Insert(rng, a)

	case KindIPv4, KindIPv6:
		prefix, err := ParseIPPrefix(resource)
		if err != nil {
			return err
		}
		builder.IPTable().Insert(prefix, a)

	case KindDNS:
		tld, err := ParseTLD(resource)
		if err != nil {
			return err
		}
		builder.Domains().Insert(tld, a)

	default:
		return rerr.Wrapf(rerr.BootstrapFormatError, "unknown bootstrap kind %d", kind)
	}
	return nil
}
