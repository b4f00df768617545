package jsonwebtoken

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path"

	"github.com/lestrrat-go/jwx/jwk"
)

var (
	MetadataNotFoundError         = errors.New("metadata not found")
	KeyManagerNotInitializedError = errors.New("KeyManager not initialized")
)

// WellKnown is a list of well-known URL suffixes to check for OAuth server
// metadata. See
// https://www.iana.org/assignments/well-known-uris/well-known-uris.xhtml
// and
// https://datatracker.ietf.org/doc/html/draft-ietf-oauth-discovery-07
var WellKnown = []string{
	"oauth-authorization-server",
	"openid-configuration",
}

// AuthServerMetadata per
// https://datatracker.ietf.org/doc/html/draft-ietf-oauth-discovery-07. Fields
// defined as OPTIONAL that aren't currently used are not included.
type AuthServerMetadata struct {
	Issuer          string   `json:"issuer"`
	AuthURL         string   `json:"authorization_endpoint"`
	TokenURL        string   `json:"token_endpoint"`
	JWKSURL         string   `json:"jwks_uri"`
	RegistrationURL string   `json:"registration_endpoint"`
	UserInfoURL     string   `json:"userinfo_endpoint"`
	Scopes          []string `json:"scopes_supported"`
	ResponseTypes   []string `json:"response_types_supported"`
}

// FetchMetadata retrieves the OAuth 2.0 authorization server metadata from
// the given URL, which must include the complete well-known path to the
// resource.
func FetchMetadata(ctx context.Context, urlstring string) (*AuthServerMetadata, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", urlstring, nil)
	if err != nil {
		return nil, err
	}
	r, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer r.Body.Close()
	switch {
	case r.StatusCode == http.StatusNotFound:
		return nil, MetadataNotFoundError
	case r.StatusCode >= 400:
		return nil, fmt.Errorf("%s", r.Status)
	}

	var meta AuthServerMetadata
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&meta); err != nil {
		return nil, FromJSON(err)
	}
	return &meta, nil
}

// IssuerKeyURL determines the URL for JWKS keys for the issuer, based on its
// OAuth metadata.
func IssuerKeyURL(ctx context.Context, issuer string) (string, error) {
	var meta *AuthServerMetadata
	for _, wk := range WellKnown {
		var err error
		meta, err = FetchMetadata(ctx, issuer+path.Join("/.well-known", wk))
		if err == nil {
			break
		} else if errors.Is(err, MetadataNotFoundError) {
			continue
		} else {
			return "", fmt.Errorf("fetching metadata for %s: %w", issuer, err)
		}
	}
	if meta == nil {
		return "", fmt.Errorf("no server metadata found under %s", issuer)
	}
	return meta.JWKSURL, nil
}

// GetIssuerKeys returns all JSON Web Keys for the given issuer, fetching from
// the jwks_uri specified in the issuer's OAuth metadata. This will fetch the
// metadata and keys with every call, use a KeyManager to cache them for
// long-running processes.
func GetIssuerKeys(ctx context.Context, issuer string) (jwk.Set, error) {
	url, err := IssuerKeyURL(ctx, issuer)
	if err != nil {
		return nil, err
	}
	return jwk.Fetch(ctx, url)
}

// KeyProvider supplies DecodeWithKeys with the verification keys for one or
// more trusted token issuers.
type KeyProvider interface {
	AddIssuer(context.Context, string) error
	Keys(context.Context, string) (jwk.Set, error)
}

// KeyFetcher is a KeyProvider that fetches keys on demand. Use NewKeyManager
// for long-lived processes.
type KeyFetcher struct {
	issuers map[string]bool
}

// NewKeyFetcher initializes a new key provider that DOES NOT cache keys,
// rather fetching them on demand.
func NewKeyFetcher(issuers ...string) *KeyFetcher {
	kf := &KeyFetcher{}
	for _, iss := range issuers {
		kf.AddIssuer(context.Background(), iss)
	}
	return kf
}

// AddIssuer adds the issuer to the set trusted by this KeyFetcher.
func (m *KeyFetcher) AddIssuer(ctx context.Context, issuer string) error {
	if m.issuers == nil {
		m.issuers = make(map[string]bool)
	}
	m.issuers[issuer] = true
	return nil
}

// Keys returns all JSON Web Keys for the given issuer, fetching from the
// jwks_uri specified in the issuer's OAuth metadata. AddIssuer() must be
// called first for this issuer or an InvalidIssuer error is returned.
func (m *KeyFetcher) Keys(ctx context.Context, issuer string) (jwk.Set, error) {
	if _, ok := m.issuers[issuer]; !ok {
		return nil, NewError(InvalidIssuer)
	}
	return GetIssuerKeys(ctx, issuer)
}

// KeyManager is a KeyProvider that caches keys, refreshing them on a regular
// interval.
type KeyManager struct {
	// issuerKeyURLs is a cache of the JWKSURL for each issuer
	issuerKeyURLs map[string]string
	keysets       *jwk.AutoRefresh
}

// NewKeyManager initializes a new key manager. The Context controls the
// lifespan of the manager and its underlying objects.
func NewKeyManager(ctx context.Context) *KeyManager {
	return &KeyManager{
		issuerKeyURLs: make(map[string]string),
		keysets:       jwk.NewAutoRefresh(ctx),
	}
}

// AddIssuer determines the JSON Web Keys URL for the given issuer and adds it
// to the set trusted by this KeyManager. Keys will be cached and refreshed at
// regular intervals.
func (m *KeyManager) AddIssuer(ctx context.Context, issuer string) error {
	if m.keysets == nil {
		return KeyManagerNotInitializedError
	}
	if _, ok := m.issuerKeyURLs[issuer]; !ok {
		url, err := IssuerKeyURL(ctx, issuer)
		if err != nil {
			return err
		}
		m.keysets.Configure(url)
		m.issuerKeyURLs[issuer] = url
	}
	return nil
}

// Keys returns all JSON Web Keys for the given issuer from the cache,
// fetching them if necessary. AddIssuer() must be called first for this
// issuer or an InvalidIssuer error is returned.
func (m *KeyManager) Keys(ctx context.Context, issuer string) (jwk.Set, error) {
	if m.keysets == nil {
		return nil, KeyManagerNotInitializedError
	}
	url, ok := m.issuerKeyURLs[issuer]
	if !ok {
		return nil, NewError(InvalidIssuer)
	}
	return m.keysets.Fetch(ctx, url)
}

// DecodeWithKeys decodes and verifies a token using keys from the issuer
// named in its iss claim. The issuer must already be trusted by the provider.
// The verification key is selected by the kid header if present, otherwise
// the first usable key in the set is tried.
func DecodeWithKeys(ctx context.Context, token string, provider KeyProvider, validation *Validation) (*Token, error) {
	unverified, err := InsecureDecode(token)
	if err != nil {
		return nil, err
	}
	set, err := provider.Keys(ctx, unverified.Claims.Issuer())
	if err != nil {
		return nil, err
	}
	key, err := lookupKey(set, unverified.Header.KeyID)
	if err != nil {
		return nil, err
	}
	return Decode(token, key, validation)
}

// lookupKey selects a verification key from the set, by key ID if given.
func lookupKey(set jwk.Set, kid string) (*VerificationKey, error) {
	if kid != "" {
		k, ok := set.LookupKeyID(kid)
		if !ok {
			return nil, NewError(InvalidKeyFormat)
		}
		return VerificationKeyFromJWK(k)
	}
	for i := 0; i < set.Len(); i++ {
		k, ok := set.Get(i)
		if !ok {
			continue
		}
		if vk, err := VerificationKeyFromJWK(k); err == nil {
			return vk, nil
		}
	}
	return nil, NewError(InvalidKeyFormat)
}
