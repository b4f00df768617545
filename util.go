package jsonwebtoken

import (
	"fmt"
	"io"
	"sort"
)

// registered claims printed on dedicated lines by PrintToken.
var registeredClaims = map[string]bool{
	"iss": true, "sub": true, "aud": true,
	"exp": true, "nbf": true, "iat": true, "jti": true,
}

// PrintToken pretty-prints the token header and claims to w.
func PrintToken(w io.Writer, t *Token) {
	fmt.Fprintf(w, "Algorithm: %s", t.Header.Algorithm)
	if t.Header.KeyID != "" {
		fmt.Fprintf(w, ", Key ID: %s", t.Header.KeyID)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Subject: %s\n", t.Claims.Subject())
	fmt.Fprintf(w, "Issuer: %s\n", t.Claims.Issuer())
	fmt.Fprintf(w, "Audience: %v\n", t.Claims.Audience())
	iat, _ := t.Claims.IssuedAt()
	exp, _ := t.Claims.Expiration()
	fmt.Fprintf(w, "Issued at: %s, Expires at: %s\n", iat, exp)
	fmt.Fprintf(w, "Claims:\n")
	names := make([]string, 0, len(t.Claims))
	for k := range t.Claims {
		if !registeredClaims[k] {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	for _, k := range names {
		fmt.Fprintf(w, "\t%v: %v\n", k, t.Claims[k])
	}
}
