package authority

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalizeURI(t *testing.T) {
	cases := []struct{ in, want string }{
		{"https://RDAP.Example.com", "https://rdap.example.com/"},
		{"https://rdap.example.com:443/registry", "https://rdap.example.com/registry/"},
		{"https://rdap.example.com/registry/", "https://rdap.example.com/registry/"},
		{"http://rdap.example.com:80", "http://rdap.example.com/"},
		{"https://rdap.example.com:8443/x", "https://rdap.example.com:8443/x/"},
	}
	for _, c := range cases {
		got, err := CanonicalizeURI(c.in)
		require.NoError(t, err, "CanonicalizeURI(%q)", c.in)
		require.Equal(t, c.want, got, "CanonicalizeURI(%q)", c.in)
	}
}

func TestURISetKeyOrderIndependent(t *testing.T) {
	a := URISetKey([]string{"https://a/", "https://b/"})
	b := URISetKey([]string{"https://b/", "https://a/"})
	require.Equal(t, a, b, "URISetKey should be order-independent")
}
