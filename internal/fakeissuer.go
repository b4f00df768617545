package internal

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"net/http"
	"text/template"

	"github.com/lestrrat-go/jwx/jwk"
)

var testMetadataTemplate = `{
  "issuer": "https://{{.Host}}/",
  "authorization_endpoint": "https://{{.Host}}/authorize",
  "token_endpoint": "https://{{.Host}}/token",
  "jwks_uri": "https://{{.Host}}/jwk",
  "registration_endpoint": "https://{{.Host}}/register",
  "userinfo_endpoint": "https://{{.Host}}/userinfo",
  "scopes_supported": [
    "openid",
    "profile",
    "email",
    "offline_access"
  ],
  "response_types_supported": [
    "code",
    "token"
  ]
}`

// FakeIssuer is an http.Handler that plays the role of an OAuth authorization
// server: it serves server metadata under the well-known paths and a JWKS
// with one RSA key. Tests sign tokens with PrivateKey and verify them against
// the served keyset.
type FakeIssuer struct {
	privateKey *rsa.PrivateKey
	publicKeys jwk.Set
	metadata   *template.Template
}

// NewFakeIssuer generates the issuer's RSA key pair and metadata template.
func NewFakeIssuer() (*FakeIssuer, error) {
	raw, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}
	k, err := jwk.New(raw)
	if err != nil {
		return nil, err
	}
	if err := k.Set("kid", KeyID); err != nil {
		return nil, err
	}
	pk, err := k.PublicKey()
	if err != nil {
		return nil, err
	}
	ks := jwk.NewSet()
	ks.Add(pk)

	t, err := template.New("metadata").Parse(testMetadataTemplate)
	if err != nil {
		return nil, err
	}

	return &FakeIssuer{
		privateKey: raw,
		publicKeys: ks,
		metadata:   t,
	}, nil
}

// KeyID is the kid of the issuer's only signing key.
const KeyID = "testkey1"

// PrivateKey returns the RSA key matching the served JWKS, for signing test
// tokens.
func (s *FakeIssuer) PrivateKey() *rsa.PrivateKey {
	return s.privateKey
}

func (s *FakeIssuer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/.well-known/oauth-authorization-server",
		"/.well-known/openid-configuration":
		if err := s.metadata.Execute(w, r); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	case "/bad-metadata":
		fmt.Fprintln(w, "{foo:bar}")
	case "/jwk":
		enc := json.NewEncoder(w)
		enc.Encode(s.publicKeys)
	case "/private":
		http.Error(w, "forbidden", http.StatusForbidden)
	case "/error":
		http.Error(w, "error", http.StatusInternalServerError)
	default:
		http.Error(w, "bad path", http.StatusNotFound)
	}
}
