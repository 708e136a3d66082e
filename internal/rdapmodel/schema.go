// Package rdapmodel holds the small slice of RFC 7483 response shapes
// this gateway actually produces itself: the error envelope and the
// help response. It is adapted from the teacher's
// rdap/rdap_schema.go, trimmed to what a routing gateway emits —
// everything else in that file (IPNetwork, Autnum, Entity, VCard) was
// describing objects this gateway forwards verbatim and never
// constructs (spec §1 Non-goals: "does not implement the RDAP
// protocol itself beyond recognising request kinds and dispatching").
package rdapmodel

// Link signifies a link to another resource on the Internet.
// https://tools.ietf.org/html/rfc7483#section-4.2
type Link struct {
	Value    string   `json:"value,omitempty"`
	Rel      string   `json:"rel,omitempty"`
	Href     string   `json:"href"`
	HrefLang []string `json:"hreflang,omitempty"`
	Title    string   `json:"title,omitempty"`
	Media    string   `json:"media,omitempty"`
	Type     string   `json:"type,omitempty"`
}

// Notice contains information about the entire RDAP response.
// https://tools.ietf.org/html/rfc7483#section-4.3
type Notice struct {
	Title       string   `json:"title,omitempty"`
	Type        string   `json:"type,omitempty"`
	Description []string `json:"description,omitempty"`
	Links       []Link   `json:"links,omitempty"`
}

// ErrorResponse is the RFC 7483 §5 error object this gateway returns
// when no authority covers a request, or a request is malformed.
type ErrorResponse struct {
	Conformance []string `json:"rdapConformance"`
	ErrorCode   int      `json:"errorCode"`
	Title       string   `json:"title"`
	Description []string `json:"description,omitempty"`
	Notices     []Notice `json:"notices,omitempty"`
}

// NewErrorResponse builds the standard envelope for one of this
// gateway's error kinds.
func NewErrorResponse(code int, title string, description ...string) ErrorResponse {
	return ErrorResponse{
		Conformance: []string{"rdap_level_0"},
		ErrorCode:   code,
		Title:       title,
		Description: description,
	}
}

// HelpResponse answers the RDAP "help" query kind (spec §1, §4.6
// supplemented feature: the original implementation surfaces real
// conformance/notice content here rather than leaving `help` entirely
// to the HTTP layer).
type HelpResponse struct {
	Conformance []string `json:"rdapConformance"`
	Notices     []Notice `json:"notices"`
}

// NewHelpResponse returns the gateway's static help content.
func NewHelpResponse(gatewayVersion string) HelpResponse {
	return HelpResponse{
		Conformance: []string{"rdap_level_0"},
		Notices: []Notice{
			{
				Title:       "Source",
				Description: []string{"This is an RDAP reverse-proxy gateway, version " + gatewayVersion + "."},
				Links: []Link{
					{Rel: "related", Href: "https://www.rfc-editor.org/rfc/rfc7482", Type: "text/html"},
				},
			},
		},
	}
}
