package jsonwebtoken

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jpopesculian/jsonwebtoken/internal"
	"github.com/stretchr/testify/assert"
)

func startFakeIssuer(t *testing.T) (*internal.FakeIssuer, *httptest.Server) {
	t.Helper()
	srv, err := internal.NewFakeIssuer()
	if err != nil {
		t.Fatalf("failed to initialize fake issuer: %s", err)
	}
	ts := httptest.NewTLSServer(srv)
	http.DefaultClient = ts.Client()
	return srv, ts
}

func TestFetchMetadata(t *testing.T) {
	assert := assert.New(t)
	_, ts := startFakeIssuer(t)
	defer ts.Close()

	t.Run("missing metadata suffix", func(t *testing.T) {
		_, err := FetchMetadata(context.Background(), ts.URL+"/.well-known/does-not-exist")
		if !assert.Error(err, "FetchMetadata should fail") {
			return
		}
		assert.ErrorIs(err, MetadataNotFoundError)
	})

	t.Run("forbidden metadata server response", func(t *testing.T) {
		_, err := FetchMetadata(context.Background(), ts.URL+"/private")
		assert.Error(err, "FetchMetadata should fail")
	})

	t.Run("bad metadata server response", func(t *testing.T) {
		_, err := FetchMetadata(context.Background(), ts.URL+"/bad-metadata")
		if !assert.Error(err, "FetchMetadata should fail") {
			return
		}
		assert.Equal(JSON, KindOf(err), "malformed metadata surfaces as a JSON error")
	})

	for _, wk := range WellKnown {
		t.Run(wk, func(t *testing.T) {
			m, err := FetchMetadata(context.Background(), ts.URL+"/.well-known/"+wk)
			if !assert.NoError(err, "FetchMetadata should succeed") {
				return
			}
			assert.Equal(m.Issuer, ts.URL+"/")
			assert.Equal(m.JWKSURL, ts.URL+"/jwk")
		})
	}
}

func TestIssuerKeyURL(t *testing.T) {
	assert := assert.New(t)
	_, ts := startFakeIssuer(t)
	defer ts.Close()

	url, err := IssuerKeyURL(context.Background(), ts.URL)
	if !assert.NoError(err, "IssuerKeyURL should succeed") {
		return
	}
	assert.Equal(ts.URL+"/jwk", url)
}

func TestKeyFetcher(t *testing.T) {
	assert := assert.New(t)
	_, ts := startFakeIssuer(t)
	defer ts.Close()

	kf := NewKeyFetcher(ts.URL)

	_, err := kf.Keys(context.Background(), "https://untrusted.example.com")
	assert.Equal(InvalidIssuer, KindOf(err), "unknown issuers are rejected")

	set, err := kf.Keys(context.Background(), ts.URL)
	if !assert.NoError(err, "Keys should succeed") {
		return
	}
	assert.Equal(1, set.Len())
	_, ok := set.LookupKeyID(internal.KeyID)
	assert.True(ok, "the issuer's signing key should be present")
}

func TestKeyManager(t *testing.T) {
	assert := assert.New(t)
	_, ts := startFakeIssuer(t)
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("not initialized", func(t *testing.T) {
		km := KeyManager{}
		err := km.AddIssuer(ctx, "https://example.com")
		assert.ErrorIs(err, KeyManagerNotInitializedError)
		_, err = km.Keys(ctx, "https://example.com")
		assert.ErrorIs(err, KeyManagerNotInitializedError)
	})

	km := NewKeyManager(ctx)
	assert.Error(km.AddIssuer(ctx, "foo://bar/baz"), "adding bad issuer should fail")

	if !assert.NoError(km.AddIssuer(ctx, ts.URL)) {
		return
	}
	set, err := km.Keys(ctx, ts.URL)
	if !assert.NoError(err, "Keys should succeed") {
		return
	}
	assert.Equal(1, set.Len())

	_, err = km.Keys(ctx, "https://untrusted.example.com")
	assert.Equal(InvalidIssuer, KindOf(err))
}

func TestDecodeWithKeys(t *testing.T) {
	assert := assert.New(t)
	srv, ts := startFakeIssuer(t)
	defer ts.Close()

	header := NewHeader(RS256)
	header.KeyID = internal.KeyID
	token, err := Encode(header, MapClaims{
		"iss": ts.URL,
		"sub": "alice",
		"exp": float64(time.Now().Add(time.Hour).Unix()),
	}, &SigningKey{rsa: srv.PrivateKey()})
	if !assert.NoError(err, "Encode should succeed") {
		return
	}

	v := NewValidation(RS256)
	v.Issuer = ts.URL

	kf := NewKeyFetcher(ts.URL)
	decoded, err := DecodeWithKeys(context.Background(), token, kf, v)
	if !assert.NoError(err, "DecodeWithKeys should succeed") {
		return
	}
	assert.Equal("alice", decoded.Claims.Subject())

	t.Run("untrusted issuer", func(t *testing.T) {
		kf := NewKeyFetcher("https://other.example.com")
		_, err := DecodeWithKeys(context.Background(), token, kf, v)
		assert.Equal(InvalidIssuer, KindOf(err))
	})

	t.Run("unknown kid", func(t *testing.T) {
		header := NewHeader(RS256)
		header.KeyID = "no-such-key"
		token, err := Encode(header, MapClaims{
			"iss": ts.URL,
			"exp": float64(time.Now().Add(time.Hour).Unix()),
		}, &SigningKey{rsa: srv.PrivateKey()})
		if !assert.NoError(err) {
			return
		}
		_, err = DecodeWithKeys(context.Background(), token, kf, v)
		assert.Equal(InvalidKeyFormat, KindOf(err))
	})

	t.Run("tampered token", func(t *testing.T) {
		bad := token[:len(token)-4] + "AAAA"
		_, err := DecodeWithKeys(context.Background(), bad, kf, v)
		assert.Error(err, "tampered token should be rejected")
	})
}
