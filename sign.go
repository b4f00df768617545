package jsonwebtoken

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/hmac"
	"crypto/rand"
	"crypto/rsa"
	_ "crypto/sha256"
	_ "crypto/sha512"
	"math/big"
)

func (a Algorithm) hash() crypto.Hash {
	switch a {
	case HS256, ES256, RS256:
		return crypto.SHA256
	case HS384, ES384, RS384:
		return crypto.SHA384
	case HS512, RS512:
		return crypto.SHA512
	}
	return crypto.SHA256
}

func digest(a Algorithm, input []byte) []byte {
	h := a.hash().New()
	h.Write(input)
	return h.Sum(nil)
}

// sign produces the raw signature over the signing input. The key material
// must match the algorithm family or the result is an InvalidAlgorithm error.
func sign(input []byte, key *SigningKey, alg Algorithm) ([]byte, error) {
	switch alg {
	case HS256, HS384, HS512:
		if key.secret == nil {
			return nil, NewError(InvalidAlgorithm)
		}
		mac := hmac.New(alg.hash().New, key.secret)
		mac.Write(input)
		return mac.Sum(nil), nil
	case RS256, RS384, RS512:
		if key.rsa == nil {
			return nil, NewError(InvalidAlgorithm)
		}
		sig, err := rsa.SignPKCS1v15(rand.Reader, key.rsa, alg.hash(), digest(alg, input))
		if err != nil {
			return nil, FromCrypto(err)
		}
		return sig, nil
	case ES256, ES384:
		if key.ecdsa == nil {
			return nil, NewError(InvalidAlgorithm)
		}
		return signECDSA(input, key.ecdsa, alg)
	}
	return nil, NewError(InvalidAlgorithm)
}

// verify checks the raw signature over the signing input, returning an
// InvalidSignature error on mismatch.
func verify(input, sig []byte, key *VerificationKey, alg Algorithm) error {
	switch alg {
	case HS256, HS384, HS512:
		if key.secret == nil {
			return NewError(InvalidAlgorithm)
		}
		mac := hmac.New(alg.hash().New, key.secret)
		mac.Write(input)
		if !hmac.Equal(sig, mac.Sum(nil)) {
			return NewError(InvalidSignature)
		}
		return nil
	case RS256, RS384, RS512:
		if key.rsa == nil {
			return NewError(InvalidAlgorithm)
		}
		if err := rsa.VerifyPKCS1v15(key.rsa, alg.hash(), digest(alg, input), sig); err != nil {
			return NewError(InvalidSignature)
		}
		return nil
	case ES256, ES384:
		if key.ecdsa == nil {
			return NewError(InvalidAlgorithm)
		}
		return verifyECDSA(input, sig, key.ecdsa, alg)
	}
	return NewError(InvalidAlgorithm)
}

func signECDSA(input []byte, key *ecdsa.PrivateKey, alg Algorithm) ([]byte, error) {
	size, err := ecdsaSize(key.Curve.Params().BitSize, alg)
	if err != nil {
		return nil, err
	}
	r, s, err := ecdsa.Sign(rand.Reader, key, digest(alg, input))
	if err != nil {
		return nil, FromCrypto(err)
	}
	// JOSE raw encoding: R and S zero-padded to the curve size, concatenated.
	sig := make([]byte, 2*size)
	r.FillBytes(sig[:size])
	s.FillBytes(sig[size:])
	return sig, nil
}

func verifyECDSA(input, sig []byte, key *ecdsa.PublicKey, alg Algorithm) error {
	size, err := ecdsaSize(key.Curve.Params().BitSize, alg)
	if err != nil {
		return err
	}
	if len(sig) != 2*size {
		return NewError(InvalidSignature)
	}
	r := new(big.Int).SetBytes(sig[:size])
	s := new(big.Int).SetBytes(sig[size:])
	if !ecdsa.Verify(key, digest(alg, input), r, s) {
		return NewError(InvalidSignature)
	}
	return nil
}

// ecdsaSize returns the per-component octet length for the algorithm, after
// checking the key's curve is the one the algorithm requires.
func ecdsaSize(bitSize int, alg Algorithm) (int, error) {
	var want int
	switch alg {
	case ES256:
		want = 256
	case ES384:
		want = 384
	default:
		return 0, NewError(InvalidAlgorithm)
	}
	if bitSize != want {
		return 0, NewError(InvalidEcdsaKey)
	}
	return (bitSize + 7) / 8, nil
}
