package jsonwebtoken

// Algorithm identifies a JWS signing algorithm supported by this library.
type Algorithm int

const (
	// HS256 is HMAC using SHA-256.
	HS256 Algorithm = iota
	// HS384 is HMAC using SHA-384.
	HS384
	// HS512 is HMAC using SHA-512.
	HS512
	// ES256 is ECDSA using P-256 and SHA-256.
	ES256
	// ES384 is ECDSA using P-384 and SHA-384.
	ES384
	// RS256 is RSASSA-PKCS1-v1_5 using SHA-256.
	RS256
	// RS384 is RSASSA-PKCS1-v1_5 using SHA-384.
	RS384
	// RS512 is RSASSA-PKCS1-v1_5 using SHA-512.
	RS512
)

var algorithmNames = map[Algorithm]string{
	HS256: "HS256",
	HS384: "HS384",
	HS512: "HS512",
	ES256: "ES256",
	ES384: "ES384",
	RS256: "RS256",
	RS384: "RS384",
	RS512: "RS512",
}

// ParseAlgorithm parses an algorithm from its RFC 7518 name, e.g. "HS256".
// Returns an InvalidAlgorithmName error for names this library doesn't know.
func ParseAlgorithm(name string) (Algorithm, error) {
	for a, n := range algorithmNames {
		if n == name {
			return a, nil
		}
	}
	return 0, NewError(InvalidAlgorithmName)
}

// String returns the RFC 7518 name of the algorithm.
func (a Algorithm) String() string {
	if n, ok := algorithmNames[a]; ok {
		return n
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler so the algorithm serializes
// as its name in the token header. Out-of-range values yield an
// InvalidAlgorithmName error rather than a malformed header.
func (a Algorithm) MarshalText() ([]byte, error) {
	n, ok := algorithmNames[a]
	if !ok {
		return nil, NewError(InvalidAlgorithmName)
	}
	return []byte(n), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names yield an
// InvalidAlgorithmName error.
func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
