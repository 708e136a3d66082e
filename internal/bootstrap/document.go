// Package bootstrap implements the BootstrapScraper (spec §4.7): it
// fetches IANA JSON bootstrap documents, validates them, materialises
// authority objects, and stages (resource, authority) pairs for
// ResourceStore.Commit.
package bootstrap

import (
	"encoding/json"
	"time"

	"github.com/BourgeoisBear/rdap-gateway/internal/rerr"
)

// Kind identifies which of the four IANA endpoints a document came
// from, since the resource string grammar depends on it (spec §6).
type Kind int

const (
	KindASN Kind = iota
	KindDNS
	KindIPv4
	KindIPv6
)

func (k Kind) String() string {
	switch k {
	case KindASN:
		return "asn"
	case KindDNS:
		return "dns"
	case KindIPv4:
		return "ipv4"
	case KindIPv6:
		return "ipv6"
	default:
		return "unknown"
	}
}

// Path returns the endpoint path under the configured base URI.
func (k Kind) Path() string {
	return k.String() + ".json"
}

// Service is one entry from an IANA bootstrap document: a list of
// resource strings and a list of server URIs for the authority
// responsible for them (spec §3 BootstrapService).
type Service struct {
	Resources []string
	ServerURIs []string
}

// Document is a parsed IANA bootstrap document (spec §3
// BootstrapDocument) whose version and service shape ParseDocument has
// checked; its resource strings and server URIs are not yet parsed.
type Document struct {
	Version     string
	Publication time.Time
	Description string
	Services    []Service
}

// defaultSupportedVersions is used when ParseDocument gets a nil set
// (Scraper.SupportedVersions unset); this is the spec §6 default.
var defaultSupportedVersions = map[string]bool{"1.0": true}

// rawDocument mirrors the wire shape in spec §6: services is an array
// of 2-element arrays, [ [resources...], [serverURIs...] ].
type rawDocument struct {
	Version     string     `json:"version"`
	Publication string     `json:"publication"`
	Description string     `json:"description"`
	Services    [][][]string `json:"services"`
}

// ParseDocument unmarshals body into a Document and validates its
// version against supported. An empty or absent version, or one
// outside supported, fails the whole document with
// rerr.BootstrapVersionError (spec §4.7 step 2); any other structural
// problem fails with rerr.BootstrapFormatError.
func ParseDocument(body []byte, supported map[string]bool) (Document, error) {
	var raw rawDocument
	if err := json.Unmarshal(body, &raw); err != nil {
		return Document{}, rerr.Wrap(rerr.BootstrapFormatError, err.Error())
	}

	if supported == nil {
		supported = defaultSupportedVersions
	}
	if raw.Version == "" || !supported[raw.Version] {
		return Document{}, rerr.Wrapf(rerr.BootstrapVersionError, "version %q is not supported", raw.Version)
	}

	doc := Document{
		Version:     raw.Version,
		Description: raw.Description,
		Services:    make([]Service, 0, len(raw.Services)),
	}

	if raw.Publication != "" {
		ts, err := time.Parse(time.RFC3339, raw.Publication)
		if err != nil {
			return Document{}, rerr.Wrap(rerr.BootstrapFormatError, "publication: "+err.Error())
		}
		doc.Publication = ts
	}

	for _, entry := range raw.Services {
		if len(entry) != 2 {
			return Document{}, rerr.Wrapf(rerr.BootstrapFormatError,
				"service entry has %d elements, want 2", len(entry))
		}
		doc.Services = append(doc.Services, Service{Resources: entry[0], ServerURIs: entry[1]})
	}

	return doc, nil
}
