package jsonwebtoken

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

// encodeSegment encodes a token segment as unpadded base64url per RFC 7515.
func encodeSegment(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// marshalError classifies a json.Marshal failure. Algorithm.MarshalText
// surfaces InvalidAlgorithmName through the encoder; keep its kind instead of
// reclassifying.
func marshalError(err error) *Error {
	var jwtErr *Error
	if errors.As(err, &jwtErr) {
		return jwtErr
	}
	return FromJSON(err)
}

// Encode serializes and signs the header and claims into a compact token
// string. The claims may be any JSON-serializable value.
func Encode(header *Header, claims interface{}, key *SigningKey) (string, error) {
	rawHeader, err := json.Marshal(header)
	if err != nil {
		return "", marshalError(err)
	}
	rawClaims, err := json.Marshal(claims)
	if err != nil {
		return "", marshalError(err)
	}
	input := encodeSegment(rawHeader) + "." + encodeSegment(rawClaims)
	sig, err := sign([]byte(input), key, header.Algorithm)
	if err != nil {
		return "", err
	}
	return input + "." + encodeSegment(sig), nil
}
