// Package upstream forwards a client's RDAP request to one of a
// resolved authority's base server URIs and relays the response
// verbatim (spec §2 "upstream dispatch (out of scope)"; §1 "the
// actual outbound forwarding is treated as an external collaborator").
// It is adapted from the teacher's rdap.QueryRDAPByIP, generalised
// from "always GET .../ip/<addr> against a fixed RIR table" to
// "GET <base><requestPath> against whichever authority Directory
// resolved", and from decoding into a typed Entity to relaying bytes
// verbatim, since this gateway never inspects upstream response
// bodies (spec §1 Non-goals).
package upstream

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/BourgeoisBear/rdap-gateway/internal/authority"
	"github.com/BourgeoisBear/rdap-gateway/internal/rerr"
)

// Forwarder issues outbound RDAP requests against an authority's
// server URIs.
type Forwarder struct {
	Client  *http.Client
	Timeout time.Duration
}

// New returns a Forwarder with the given per-request timeout. A zero
// timeout sets no per-request deadline beyond the caller's ctx.
func New(timeout time.Duration) *Forwarder {
	return &Forwarder{Client: &http.Client{}, Timeout: timeout}
}

// Response is the relayed upstream response: status code, content
// type, and raw body bytes, passed through unmodified.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Forward issues requestPath (e.g. "ip/192.0.2.1") against each of
// a's server URIs in turn, returning the first successful response.
// If every server URI fails, it returns rerr.NetworkError.
func (f *Forwarder) Forward(ctx context.Context, a *authority.Authority, requestPath string) (*Response, error) {
	var lastErr error
	for _, base := range a.ServerURIs() {
		resp, err := f.forwardOne(ctx, base, requestPath)
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = rerr.Wrapf(rerr.NetworkError, "authority %s has no server uris", a.Name)
	}
	return nil, lastErr
}

func (f *Forwarder) forwardOne(ctx context.Context, base, requestPath string) (*Response, error) {
	reqCtx := ctx
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	url := strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(requestPath, "/")

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, rerr.Wrap(rerr.NetworkError, err.Error())
	}
	req.Header.Set("Accept", "application/rdap+json")

	rsp, err := f.Client.Do(req)
	if err != nil {
		return nil, rerr.Wrap(rerr.NetworkError, err.Error())
	}
	defer rsp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(rsp.Body, 4<<20))
	if err != nil {
		return nil, rerr.Wrap(rerr.NetworkError, err.Error())
	}

	if rsp.StatusCode >= 500 {
		return nil, rerr.Wrapf(rerr.NetworkError, "%s: %s", url, rsp.Status)
	}

	return &Response{
		StatusCode:  rsp.StatusCode,
		ContentType: rsp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
