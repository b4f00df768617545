package jsonwebtoken

// Header is the JOSE header of a token.
type Header struct {
	// Algorithm is the signing algorithm, the "alg" field.
	Algorithm Algorithm `json:"alg"`
	// Type declares the media type of the token, normally "JWT".
	Type string `json:"typ,omitempty"`
	// ContentType declares the media type of the payload, the "cty" field.
	// Only set for nested tokens.
	ContentType string `json:"cty,omitempty"`
	// KeyID hints which key was used to sign the token, the "kid" field.
	KeyID string `json:"kid,omitempty"`
}

// NewHeader returns a header for the given algorithm with typ set to "JWT".
func NewHeader(alg Algorithm) *Header {
	return &Header{
		Algorithm: alg,
		Type:      "JWT",
	}
}
