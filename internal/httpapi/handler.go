// Package httpapi wires an HTTP request path to Directory lookups and
// upstream forwarding, translating the RDAP request kinds of spec
// §4.6 into net/http handlers and rendering RFC 7483 error envelopes
// on failure (spec §7).
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/netip"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/BourgeoisBear/rdap-gateway/internal/authority"
	"github.com/BourgeoisBear/rdap-gateway/internal/directory"
	"github.com/BourgeoisBear/rdap-gateway/internal/metrics"
	"github.com/BourgeoisBear/rdap-gateway/internal/rdapmodel"
	"github.com/BourgeoisBear/rdap-gateway/internal/rerr"
	"github.com/BourgeoisBear/rdap-gateway/internal/scheduler"
	"github.com/BourgeoisBear/rdap-gateway/internal/store"
	"github.com/BourgeoisBear/rdap-gateway/internal/upstream"
)

// Handler serves the gateway's RDAP surface plus its operational
// endpoints (/help, /healthz, /metrics).
type Handler struct {
	Directory      *directory.Directory
	AuthorityStore *authority.Store
	ResourceStore  *store.ResourceStore
	Forwarder      *upstream.Forwarder
	Metrics        *metrics.Metrics
	Logger         *logrus.Logger
	GatewayVersion string
}

// Mux builds the *http.ServeMux routing every path this gateway
// answers, per spec §4.6's dispatch table.
func (h *Handler) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ip/", h.handleIP)
	mux.HandleFunc("/autnum/", h.handleAutnum)
	mux.HandleFunc("/domain/", h.handleDomain)
	mux.HandleFunc("/nameserver/", h.handleNameserver)
	mux.HandleFunc("/entity/", h.handleEntity)
	mux.HandleFunc("/help", h.handleHelp)
	mux.HandleFunc("/healthz", h.handleHealthz)
	if h.Metrics != nil {
		mux.Handle("/metrics", h.Metrics.Handler())
	}
	return mux
}

func (h *Handler) logger() *logrus.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return logrus.StandardLogger()
}

func trimKind(r *http.Request, kind string) string {
	return strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, "/"+kind+"/"), "/")
}

func (h *Handler) handleIP(w http.ResponseWriter, r *http.Request) {
	raw := trimKind(r, "ip")
	if raw == "" {
		h.writeError(w, http.StatusBadRequest, "empty ip request")
		return
	}

	var a *authority.Authority
	var err error
	if strings.Contains(raw, "/") {
		var prefix netip.Prefix
		prefix, err = directory.ParsePrefix(raw)
		if err == nil {
			a, err = h.Directory.IPAuthority(prefix)
		}
	} else {
		var addr netip.Addr
		addr, err = directory.ParseAddr(raw)
		if err == nil {
			a, err = h.Directory.IPAddrAuthority(addr)
		}
	}
	h.finishLookup(w, r, "ip", "ip/"+raw, a, err)
}

func (h *Handler) handleAutnum(w http.ResponseWriter, r *http.Request) {
	raw := trimKind(r, "autnum")
	asn, err := directory.ParseASN(raw)
	var a *authority.Authority
	if err == nil {
		a, err = h.Directory.AutnumAuthority(asn)
	}
	h.finishLookup(w, r, "autnum", "autnum/"+raw, a, err)
}

func (h *Handler) handleDomain(w http.ResponseWriter, r *http.Request) {
	raw := trimKind(r, "domain")
	a, err := h.Directory.DomainAuthority(raw)
	h.finishLookup(w, r, "domain", "domain/"+raw, a, err)
}

func (h *Handler) handleNameserver(w http.ResponseWriter, r *http.Request) {
	raw := trimKind(r, "nameserver")
	a, err := h.Directory.NameserverAuthority(raw)
	h.finishLookup(w, r, "nameserver", "nameserver/"+raw, a, err)
}

func (h *Handler) handleEntity(w http.ResponseWriter, r *http.Request) {
	raw := trimKind(r, "entity")
	a, err := h.Directory.EntityAuthority(raw, h.AuthorityStore)
	h.finishLookup(w, r, "entity", "entity/"+raw, a, err)
}

// finishLookup renders a lookup's outcome: a resolved authority is
// forwarded to (spec §2, out-of-core collaborator), a rerr.Kind is
// rendered as its RFC 7483 error envelope, and the lookup is recorded
// in Metrics if present.
func (h *Handler) finishLookup(w http.ResponseWriter, r *http.Request, kind, requestPath string, a *authority.Authority, err error) {
	if h.Metrics != nil {
		h.Metrics.ObserveLookup(kind, err == nil)
	}

	if err != nil {
		h.writeLookupError(w, err)
		return
	}

	if h.Forwarder == nil {
		h.writeError(w, http.StatusInternalServerError, "no forwarder configured")
		return
	}

	resp, err := h.Forwarder.Forward(r.Context(), a, requestPath)
	if err != nil {
		h.logger().WithError(err).WithField("authority", a.Name).Warn("upstream forward failed")
		h.writeError(w, http.StatusBadGateway, "upstream authority unreachable")
		return
	}

	if resp.ContentType != "" {
		w.Header().Set("Content-Type", resp.ContentType)
	}
	w.WriteHeader(resp.StatusCode)
	w.Write(resp.Body)
}

func (h *Handler) writeLookupError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, rerr.ResourceNotFound):
		h.writeError(w, http.StatusNotFound, "no authority found for this resource")
	case errors.Is(err, rerr.MalformedRequest):
		h.writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger().WithError(err).Error("unexpected directory error")
		h.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, description string) {
	body := rdapmodel.NewErrorResponse(status, http.StatusText(status), description)
	w.Header().Set("Content-Type", "application/rdap+json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (h *Handler) handleHelp(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/rdap+json")
	json.NewEncoder(w).Encode(h.Directory.Help(h.GatewayVersion))
}

// healthzResponse reports the live generation's sequence number, so an
// operator can confirm a fresh scrape actually landed.
type healthzResponse struct {
	Status     string `json:"status"`
	Generation uint64 `json:"generation"`
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(healthzResponse{
		Status:     "ok",
		Generation: scheduler.LatestSequence(h.ResourceStore),
	})
}
