package httpapi

import (
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/BourgeoisBear/rdap-gateway/internal/authority"
	"github.com/BourgeoisBear/rdap-gateway/internal/directory"
	"github.com/BourgeoisBear/rdap-gateway/internal/routing"
	"github.com/BourgeoisBear/rdap-gateway/internal/store"
	"github.com/BourgeoisBear/rdap-gateway/internal/upstream"
)

func newTestHandler(t *testing.T, upstreamURL string) *Handler {
	t.Helper()
	authStore := authority.New()
	a, err := authStore.CreateNamed("ARIN")
	if err != nil {
		t.Fatal(err)
	}
	if err := authStore.AddServers(a, []string{upstreamURL}); err != nil {
		t.Fatal(err)
	}

	resStore := store.New()
	builder := resStore.Stage()
	builder.IPTable().Insert(netip.MustParsePrefix("192.0.2.0/24"), a)
	builder.ASNMap().Insert(routing.AsnRange{Low: 100, High: 200}, a)
	builder.Domains().Insert("example", a)
	resStore.Commit(builder)

	return &Handler{
		Directory:      directory.New(resStore),
		AuthorityStore: authStore,
		ResourceStore:  resStore,
		Forwarder:      upstream.New(0),
	}
}

func TestHandleIPFound(t *testing.T) {
	upstreamSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rdap+json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer upstreamSrv.Close()

	h := newTestHandler(t, upstreamSrv.URL)
	req := httptest.NewRequest(http.MethodGet, "/ip/192.0.2.1", nil)
	rec := httptest.NewRecorder()
	h.Mux().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestHandleIPNotFound(t *testing.T) {
	h := newTestHandler(t, "http://unused.invalid")
	req := httptest.NewRequest(http.MethodGet, "/ip/203.0.113.1", nil)
	rec := httptest.NewRecorder()
	h.Mux().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHandleAutnumMalformed(t *testing.T) {
	h := newTestHandler(t, "http://unused.invalid")
	req := httptest.NewRequest(http.MethodGet, "/autnum/not-a-number", nil)
	rec := httptest.NewRecorder()
	h.Mux().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHandleHelp(t *testing.T) {
	h := newTestHandler(t, "http://unused.invalid")
	req := httptest.NewRequest(http.MethodGet, "/help", nil)
	rec := httptest.NewRecorder()
	h.Mux().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHandleHealthz(t *testing.T) {
	h := newTestHandler(t, "http://unused.invalid")
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.Mux().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
