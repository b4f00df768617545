package jsonwebtoken

import (
	"errors"
)

// ErrorKind identifies the category of an Error. It is non-exhaustive: kinds
// may be added in future releases, so callers switching on it must always
// include a default case. The zero value is reserved for that purpose and
// renders as "unknown error".
type ErrorKind int

const (
	unknownErrorKind ErrorKind = iota

	// InvalidToken indicates the token doesn't have a valid JWT shape.
	InvalidToken
	// InvalidSignature indicates the signature doesn't match.
	InvalidSignature
	// InvalidEcdsaKey indicates the key given is not a valid ECDSA key.
	InvalidEcdsaKey
	// InvalidRsaKey indicates the key given is not a valid RSA key.
	InvalidRsaKey
	// InvalidAlgorithmName indicates an algorithm name that isn't known.
	InvalidAlgorithmName
	// InvalidKeyFormat indicates a key was provided in an invalid format.
	InvalidKeyFormat

	// ExpiredSignature indicates the token's exp claim is in the past.
	ExpiredSignature
	// InvalidIssuer indicates the token's iss claim doesn't match the
	// expected issuer.
	InvalidIssuer
	// InvalidAudience indicates the token's aud claim doesn't match any of
	// the expected audience values.
	InvalidAudience
	// InvalidSubject indicates the token's sub claim doesn't match the
	// expected subject.
	InvalidSubject
	// ImmatureSignature indicates the token's nbf claim is in the future.
	ImmatureSignature
	// InvalidAlgorithm indicates the algorithm in the token header isn't one
	// of the algorithms allowed for verification.
	InvalidAlgorithm

	// Base64 wraps an error from decoding base64 text.
	Base64
	// JSON wraps an error from serializing or deserializing JSON.
	JSON
	// UTF8 wraps an error from decoding text that was not valid UTF-8.
	UTF8
	// Crypto indicates something unspecified went wrong with crypto. The
	// underlying failure is deliberately not preserved.
	Crypto
)

// String returns the fixed description for the kind.
func (k ErrorKind) String() string {
	switch k {
	case InvalidToken:
		return "invalid token"
	case InvalidSignature:
		return "invalid signature"
	case InvalidEcdsaKey:
		return "invalid ECDSA key"
	case InvalidRsaKey:
		return "invalid RSA key"
	case InvalidAlgorithmName:
		return "not a known algorithm"
	case InvalidKeyFormat:
		return "invalid key format"
	case ExpiredSignature:
		return "expired signature"
	case InvalidIssuer:
		return "invalid issuer"
	case InvalidAudience:
		return "invalid audience"
	case InvalidSubject:
		return "invalid subject"
	case ImmatureSignature:
		return "immature signature"
	case InvalidAlgorithm:
		return "algorithms don't match"
	case Base64:
		return "Base64 error"
	case JSON:
		return "JSON error"
	case UTF8:
		return "UTF-8 error"
	case Crypto:
		return "Crypto error"
	}
	return "unknown error"
}

// Error is the uniform error type returned by every failure path in this
// library: malformed tokens, signature mismatches, bad key material, claim
// validation failures, and failures bubbling up from the underlying encoding,
// serialization, and crypto layers. Branch on Kind() rather than on the
// message text.
type Error struct {
	kind  ErrorKind
	cause error
}

// newError is the only constructor; every conversion funnels through it.
func newError(kind ErrorKind, cause error) *Error {
	return &Error{kind: kind, cause: cause}
}

// NewError returns an Error carrying the bare kind with no underlying cause.
func NewError(kind ErrorKind) *Error {
	return newError(kind, nil)
}

// Kind returns the specific category of this error.
func (e *Error) Kind() ErrorKind {
	return e.kind
}

// Error renders a human-readable message: the fixed description for intrinsic
// kinds, or a category prefix plus the wrapped failure's own message for the
// Base64, JSON, and UTF8 kinds. The Crypto kind always renders as
// "Crypto error: undefined", never exposing why the operation failed.
func (e *Error) Error() string {
	switch e.kind {
	case Base64, JSON, UTF8:
		// a bare wrapped kind, e.g. NewError(Base64), has no payload
		if e.cause == nil {
			return e.kind.String()
		}
		return e.kind.String() + ": " + e.cause.Error()
	case Crypto:
		return "Crypto error: undefined"
	}
	return e.kind.String()
}

// Unwrap returns the wrapped foreign failure for the Base64, JSON, and UTF8
// kinds, and nil for everything else. Crypto errors carry no inspectable
// cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// FromBase64 wraps a base64 decoding failure.
func FromBase64(err error) *Error {
	return newError(Base64, err)
}

// FromJSON wraps a JSON serialization or deserialization failure.
func FromJSON(err error) *Error {
	return newError(JSON, err)
}

// FromUTF8 wraps a UTF-8 text decoding failure.
func FromUTF8(err error) *Error {
	return newError(UTF8, err)
}

// FromCrypto converts a cryptographic failure. The underlying error is
// discarded: callers learn that a crypto operation failed, never why.
func FromCrypto(err error) *Error {
	return newError(Crypto, nil)
}

// FromKeyRejection converts a key material rejection into InvalidEcdsaKey.
// The rejection reason is discarded.
func FromKeyRejection(err error) *Error {
	return newError(InvalidEcdsaKey, nil)
}

// KindOf returns the kind of err if it is (or wraps) an *Error, and the
// reserved unknown kind otherwise.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return unknownErrorKind
}
