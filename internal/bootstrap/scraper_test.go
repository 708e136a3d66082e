package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"
	"time"

	"github.com/BourgeoisBear/rdap-gateway/internal/authority"
	"github.com/BourgeoisBear/rdap-gateway/internal/store"
)

func docBody(resources []string) string {
	body := `{"version":"1.0","publication":"2024-01-01T00:00:00Z","services":[[[`
	for i, r := range resources {
		if i > 0 {
			body += ","
		}
		body += `"` + r + `"`
	}
	body += `],["https://rdap.example.com/"]]]}`
	return body
}

func newTestServer(t *testing.T, fail bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/asn.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(docBody([]string{"1000-2000"})))
	})
	mux.HandleFunc("/dns.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(docBody([]string{"example"})))
	})
	mux.HandleFunc("/ipv4.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(docBody([]string{"192.0.2.0/24"})))
	})
	mux.HandleFunc("/ipv6.json", func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(docBody([]string{"2001:db8::/32"})))
	})
	return httptest.NewServer(mux)
}

func TestScraperRunCommitsAllFour(t *testing.T) {
	srv := newTestServer(t, false)
	defer srv.Close()

	authStore := authority.New()
	resStore := store.New()
	s := &Scraper{
		BaseURI:           srv.URL + "/",
		RequestTimeout:    5 * time.Second,
		SupportedVersions: map[string]bool{"1.0": true},
		AuthorityStore:    authStore,
		ResourceStore:     resStore,
	}

	gen, err := s.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if got := gen.ASNMap.LookupASN(1500); got == nil {
		t.Error("expected asn 1500 to resolve")
	}
	if got := gen.Domains.Lookup("www.example"); got == nil {
		t.Error("expected example tld to resolve")
	}
	if got := gen.IPTable.Lookup(netip.MustParseAddr("192.0.2.1")); got == nil {
		t.Error("expected ipv4 prefix to resolve")
	}
	if got := gen.IPTable.Lookup(netip.MustParseAddr("2001:db8::1")); got == nil {
		t.Error("expected ipv6 prefix to resolve")
	}
}

// invariant 7 / S5-adjacent: all-or-nothing commit.
func TestScraperRunAbandonsOnEndpointFailure(t *testing.T) {
	srv := newTestServer(t, true)
	defer srv.Close()

	authStore := authority.New()
	resStore := store.New()
	preGen := resStore.Snapshot()

	s := &Scraper{
		BaseURI:           srv.URL + "/",
		RequestTimeout:    5 * time.Second,
		SupportedVersions: map[string]bool{"1.0": true},
		AuthorityStore:    authStore,
		ResourceStore:     resStore,
	}

	_, err := s.Run(context.Background())
	if err == nil {
		t.Fatal("expected error from failing ipv6 endpoint")
	}

	if resStore.Snapshot() != preGen {
		t.Fatal("live generation must be unchanged after an abandoned cycle")
	}
}
