package jsonwebtoken

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Token is a decoded JWT.
type Token struct {
	Header    Header
	Claims    MapClaims
	Signature []byte

	rawClaims []byte
}

// DecodeClaims unmarshals the token's claim set into v, which is typically a
// pointer to a struct with json tags for the expected claims.
func (t *Token) DecodeClaims(v interface{}) error {
	if err := json.Unmarshal(t.rawClaims, v); err != nil {
		return FromJSON(err)
	}
	return nil
}

// invalidUTF8Error reports the first malformed byte in a decoded segment.
type invalidUTF8Error struct {
	offset int
}

func (e *invalidUTF8Error) Error() string {
	return fmt.Sprintf("invalid UTF-8 sequence at byte %d", e.offset)
}

// decodeSegment decodes one unpadded base64url token segment.
func decodeSegment(seg string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(seg)
	if err != nil {
		return nil, FromBase64(err)
	}
	return raw, nil
}

// decodeJSONSegment base64-decodes a segment, checks it is valid UTF-8, and
// unmarshals the JSON document into v. The returned raw bytes outlive v so
// callers can re-unmarshal later.
func decodeJSONSegment(seg string, v interface{}) ([]byte, error) {
	raw, err := decodeSegment(seg)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(raw) {
		return nil, FromUTF8(&invalidUTF8Error{offset: invalidUTF8Offset(raw)})
	}
	if err := json.Unmarshal(raw, v); err != nil {
		// Algorithm.UnmarshalText surfaces InvalidAlgorithmName through the
		// JSON decoder; keep its kind instead of reclassifying.
		var jwtErr *Error
		if errors.As(err, &jwtErr) {
			return nil, jwtErr
		}
		return nil, FromJSON(err)
	}
	return raw, nil
}

func invalidUTF8Offset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}

// splitToken splits a compact token into its three segments, or returns an
// InvalidToken error.
func splitToken(token string) ([]string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, NewError(InvalidToken)
	}
	return parts, nil
}

// DecodeHeader decodes only the header of a token, without verifying the
// signature. Useful for picking a verification key by kid before decoding.
func DecodeHeader(token string) (*Header, error) {
	parts, err := splitToken(token)
	if err != nil {
		return nil, err
	}
	var header Header
	if _, err := decodeJSONSegment(parts[0], &header); err != nil {
		return nil, err
	}
	return &header, nil
}

// InsecureDecode decodes a token WITHOUT verifying its signature or
// validating its claims. Never trust the result for authorization decisions;
// it exists for inspecting tokens, e.g. reading the iss claim to pick a
// keyset.
func InsecureDecode(token string) (*Token, error) {
	parts, err := splitToken(token)
	if err != nil {
		return nil, err
	}
	t := Token{Claims: MapClaims{}}
	if _, err := decodeJSONSegment(parts[0], &t.Header); err != nil {
		return nil, err
	}
	if t.rawClaims, err = decodeJSONSegment(parts[1], &t.Claims); err != nil {
		return nil, err
	}
	if t.Signature, err = decodeSegment(parts[2]); err != nil {
		return nil, err
	}
	return &t, nil
}

// Decode verifies the token's signature with the given key, validates its
// claims, and returns the decoded token. Every failure is an *Error; branch
// on its Kind. A nil validation behaves like the zero Validation, which
// allows no algorithms and therefore rejects every token; use
// InsecureDecode to inspect a token without verification.
func Decode(token string, key *VerificationKey, validation *Validation) (*Token, error) {
	if validation == nil {
		validation = &Validation{}
	}
	parts, err := splitToken(token)
	if err != nil {
		return nil, err
	}

	t := Token{Claims: MapClaims{}}
	if _, err := decodeJSONSegment(parts[0], &t.Header); err != nil {
		return nil, err
	}
	if !validation.allows(t.Header.Algorithm) {
		return nil, NewError(InvalidAlgorithm)
	}

	if t.Signature, err = decodeSegment(parts[2]); err != nil {
		return nil, err
	}
	input := token[:len(parts[0])+1+len(parts[1])]
	if err := verify([]byte(input), t.Signature, key, t.Header.Algorithm); err != nil {
		return nil, err
	}

	if t.rawClaims, err = decodeJSONSegment(parts[1], &t.Claims); err != nil {
		return nil, err
	}
	if err := validation.validate(t.Claims); err != nil {
		return nil, err
	}
	return &t, nil
}
