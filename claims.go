package jsonwebtoken

import (
	"time"
)

// MapClaims is the claim set of a decoded token. Use Token.DecodeClaims to
// unmarshal the claims into a typed struct instead.
type MapClaims map[string]interface{}

// Issuer returns the iss claim, or the empty string if absent or not a
// string.
func (c MapClaims) Issuer() string {
	return c.stringClaim("iss")
}

// Subject returns the sub claim, or the empty string if absent or not a
// string.
func (c MapClaims) Subject() string {
	return c.stringClaim("sub")
}

// JwtID returns the jti claim, or the empty string if absent or not a string.
func (c MapClaims) JwtID() string {
	return c.stringClaim("jti")
}

// Audience returns the aud claim, which may be a single string or a list of
// strings on the wire. Absent or malformed values yield an empty list.
func (c MapClaims) Audience() []string {
	v, ok := c["aud"]
	if !ok {
		return []string{}
	}
	switch aud := v.(type) {
	case string:
		return []string{aud}
	case []interface{}:
		out := make([]string, 0, len(aud))
		for _, a := range aud {
			if s, ok := a.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return []string{}
}

// Expiration returns the exp claim. ok is false if the claim is absent or not
// numeric.
func (c MapClaims) Expiration() (t time.Time, ok bool) {
	return c.timeClaim("exp")
}

// NotBefore returns the nbf claim. ok is false if the claim is absent or not
// numeric.
func (c MapClaims) NotBefore() (t time.Time, ok bool) {
	return c.timeClaim("nbf")
}

// IssuedAt returns the iat claim. ok is false if the claim is absent or not
// numeric.
func (c MapClaims) IssuedAt() (t time.Time, ok bool) {
	return c.timeClaim("iat")
}

func (c MapClaims) stringClaim(name string) string {
	if s, ok := c[name].(string); ok {
		return s
	}
	return ""
}

// timeClaim reads a NumericDate claim. encoding/json decodes numbers into
// float64, but accept integer types too for claims set programmatically.
func (c MapClaims) timeClaim(name string) (time.Time, bool) {
	v, ok := c[name]
	if !ok {
		return time.Time{}, false
	}
	switch n := v.(type) {
	case float64:
		return time.Unix(int64(n), 0), true
	case int64:
		return time.Unix(n, 0), true
	case int:
		return time.Unix(int64(n), 0), true
	}
	return time.Time{}, false
}
