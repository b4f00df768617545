package jsonwebtoken

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"

	"github.com/lestrrat-go/jwx/jwk"
)

// SigningKey holds the key material used to sign a token. Exactly one of the
// variants is set, and it must agree with the algorithm family passed to
// Encode. Use the constructors below, they validate the material up front.
type SigningKey struct {
	secret []byte
	rsa    *rsa.PrivateKey
	ecdsa  *ecdsa.PrivateKey
}

// VerificationKey holds the key material used to verify a token signature.
type VerificationKey struct {
	secret []byte
	rsa    *rsa.PublicKey
	ecdsa  *ecdsa.PublicKey
}

// SigningKeyFromSecret returns a signing key for the HMAC family of
// algorithms.
func SigningKeyFromSecret(secret []byte) *SigningKey {
	return &SigningKey{secret: secret}
}

// VerificationKeyFromSecret returns a verification key for the HMAC family of
// algorithms.
func VerificationKeyFromSecret(secret []byte) *VerificationKey {
	return &VerificationKey{secret: secret}
}

// RSASigningKeyFromPEM parses a PEM-encoded RSA private key in PKCS#1 or
// PKCS#8 form.
func RSASigningKeyFromPEM(data []byte) (*SigningKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, NewError(InvalidKeyFormat)
	}
	if k, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return &SigningKey{rsa: k}, nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, NewError(InvalidRsaKey)
	}
	k, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, NewError(InvalidRsaKey)
	}
	return &SigningKey{rsa: k}, nil
}

// RSAVerificationKeyFromPEM parses a PEM-encoded RSA public key in PKIX or
// PKCS#1 form.
func RSAVerificationKeyFromPEM(data []byte) (*VerificationKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, NewError(InvalidKeyFormat)
	}
	if k, err := x509.ParsePKCS1PublicKey(block.Bytes); err == nil {
		return &VerificationKey{rsa: k}, nil
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, NewError(InvalidRsaKey)
	}
	k, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, NewError(InvalidRsaKey)
	}
	return &VerificationKey{rsa: k}, nil
}

// ECDSASigningKeyFromPEM parses a PEM-encoded ECDSA private key in SEC 1 or
// PKCS#8 form. The parser's rejection reason is not preserved.
func ECDSASigningKeyFromPEM(data []byte) (*SigningKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, NewError(InvalidKeyFormat)
	}
	if k, err := x509.ParseECPrivateKey(block.Bytes); err == nil {
		return &SigningKey{ecdsa: k}, nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, FromKeyRejection(err)
	}
	k, ok := parsed.(*ecdsa.PrivateKey)
	if !ok {
		return nil, NewError(InvalidEcdsaKey)
	}
	return &SigningKey{ecdsa: k}, nil
}

// ECDSAVerificationKeyFromPEM parses a PEM-encoded ECDSA public key in PKIX
// form. The parser's rejection reason is not preserved.
func ECDSAVerificationKeyFromPEM(data []byte) (*VerificationKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, NewError(InvalidKeyFormat)
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, FromKeyRejection(err)
	}
	k, ok := parsed.(*ecdsa.PublicKey)
	if !ok {
		return nil, NewError(InvalidEcdsaKey)
	}
	return &VerificationKey{ecdsa: k}, nil
}

// VerificationKeyFromJWK converts a JSON Web Key, e.g. one fetched from an
// issuer's JWKS endpoint, into a VerificationKey.
func VerificationKeyFromJWK(key jwk.Key) (*VerificationKey, error) {
	var raw interface{}
	if err := key.Raw(&raw); err != nil {
		return nil, NewError(InvalidKeyFormat)
	}
	switch k := raw.(type) {
	case *rsa.PublicKey:
		return &VerificationKey{rsa: k}, nil
	case *rsa.PrivateKey:
		return &VerificationKey{rsa: &k.PublicKey}, nil
	case *ecdsa.PublicKey:
		return &VerificationKey{ecdsa: k}, nil
	case *ecdsa.PrivateKey:
		return &VerificationKey{ecdsa: &k.PublicKey}, nil
	case []byte:
		return &VerificationKey{secret: k}, nil
	}
	return nil, NewError(InvalidKeyFormat)
}
