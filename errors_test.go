package jsonwebtoken

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var intrinsicKinds = []ErrorKind{
	InvalidToken,
	InvalidSignature,
	InvalidEcdsaKey,
	InvalidRsaKey,
	InvalidAlgorithmName,
	InvalidKeyFormat,
	ExpiredSignature,
	InvalidIssuer,
	InvalidAudience,
	InvalidSubject,
	ImmatureSignature,
	InvalidAlgorithm,
}

func TestErrorKindRoundTrip(t *testing.T) {
	assert := assert.New(t)
	for _, kind := range intrinsicKinds {
		err := NewError(kind)
		assert.Equal(kind, err.Kind(), "kind should survive construction")
		assert.NoError(err.Unwrap(), "intrinsic kinds carry no cause")
	}
}

func TestErrorRendering(t *testing.T) {
	assert := assert.New(t)
	for kind, want := range map[ErrorKind]string{
		InvalidToken:         "invalid token",
		InvalidSignature:     "invalid signature",
		InvalidEcdsaKey:      "invalid ECDSA key",
		InvalidRsaKey:        "invalid RSA key",
		InvalidAlgorithmName: "not a known algorithm",
		InvalidKeyFormat:     "invalid key format",
		ExpiredSignature:     "expired signature",
		InvalidIssuer:        "invalid issuer",
		InvalidAudience:      "invalid audience",
		InvalidSubject:       "invalid subject",
		ImmatureSignature:    "immature signature",
		InvalidAlgorithm:     "algorithms don't match",
	} {
		assert.Equal(want, NewError(kind).Error())
	}
}

func TestErrorRenderingUnknownKind(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("unknown error", NewError(ErrorKind(0)).Error())
	// kinds from a future release should render the same way
	assert.Equal("unknown error", NewError(ErrorKind(999)).Error())
}

func TestErrorRenderingBareWrappedKind(t *testing.T) {
	assert := assert.New(t)
	// NewError is total over all kinds, so a wrapped kind can exist without a
	// payload; it must render its description rather than panic
	for kind, want := range map[ErrorKind]string{
		Base64: "Base64 error",
		JSON:   "JSON error",
		UTF8:   "UTF-8 error",
		Crypto: "Crypto error: undefined",
	} {
		err := NewError(kind)
		assert.NotPanics(func() { _ = err.Error() })
		assert.Equal(want, err.Error())
		assert.NoError(err.Unwrap())
	}
}

func TestErrorRenderingBase64(t *testing.T) {
	assert := assert.New(t)
	_, cause := base64.RawURLEncoding.DecodeString("!not-base64!")
	if !assert.Error(cause, "decoding garbage should fail") {
		return
	}
	err := FromBase64(cause)
	assert.Equal(Base64, err.Kind())
	assert.Equal("Base64 error: "+cause.Error(), err.Error())
	assert.ErrorIs(err, cause, "cause should be reachable through Unwrap")
}

func TestErrorRenderingJSON(t *testing.T) {
	assert := assert.New(t)
	var v map[string]interface{}
	cause := json.Unmarshal([]byte("{"), &v)
	if !assert.Error(cause, "unmarshaling a truncated document should fail") {
		return
	}
	err := FromJSON(cause)
	assert.Equal(JSON, err.Kind())
	assert.Equal("JSON error: "+cause.Error(), err.Error())
	assert.ErrorIs(err, cause, "cause should be reachable through Unwrap")
}

func TestErrorRenderingUTF8(t *testing.T) {
	assert := assert.New(t)
	cause := &invalidUTF8Error{offset: 3}
	err := FromUTF8(cause)
	assert.Equal(UTF8, err.Kind())
	assert.Equal("UTF-8 error: invalid UTF-8 sequence at byte 3", err.Error())
	assert.ErrorIs(err, cause, "cause should be reachable through Unwrap")
}

func TestErrorRenderingCrypto(t *testing.T) {
	assert := assert.New(t)
	for _, cause := range []error{
		errors.New("rsa: verification error"),
		fmt.Errorf("entropy source unavailable: %w", errors.New("sealed")),
		nil,
	} {
		err := FromCrypto(cause)
		assert.Equal(Crypto, err.Kind())
		assert.Equal("Crypto error: undefined", err.Error(),
			"crypto failures must never leak detail")
		assert.NoError(err.Unwrap(), "crypto failures carry no inspectable cause")
		if cause != nil {
			assert.NotContains(err.Error(), cause.Error())
		}
	}
}

func TestFromKeyRejection(t *testing.T) {
	assert := assert.New(t)
	for _, cause := range []error{
		errors.New("asn1: structure error"),
		errors.New("x509: failed to parse EC private key"),
		errors.New("unsupported curve"),
	} {
		err := FromKeyRejection(cause)
		assert.Equal(InvalidEcdsaKey, err.Kind(),
			"every rejection reason collapses to the same kind")
		assert.Equal("invalid ECDSA key", err.Error())
		assert.NoError(err.Unwrap(), "the rejection reason is not preserved")
	}
}

func TestKindOf(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(ExpiredSignature, KindOf(NewError(ExpiredSignature)))

	wrapped := fmt.Errorf("decoding token: %w", NewError(InvalidToken))
	assert.Equal(InvalidToken, KindOf(wrapped), "KindOf should see through wrapping")

	foreign := errors.New("some other failure")
	assert.Equal("unknown error", KindOf(foreign).String())
	assert.Equal("unknown error", KindOf(nil).String())
}

func TestErrorKindString(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("Base64 error", Base64.String())
	assert.Equal("JSON error", JSON.String())
	assert.Equal("UTF-8 error", UTF8.String())
	assert.Equal("Crypto error", Crypto.String())
	assert.True(strings.HasPrefix(FromJSON(errors.New("x")).Error(), "JSON error: "))
}
