package jsonwebtoken

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintToken(t *testing.T) {
	assert := assert.New(t)
	var buf bytes.Buffer
	header := NewHeader(HS256)
	header.KeyID = "k1"
	tok := &Token{
		Header: *header,
		Claims: MapClaims{
			"sub": "my-subject",
			"iss": "my-issuer",
			"aud": []interface{}{"my-audience"},
			"ver": "1.0",
		},
	}
	PrintToken(&buf, tok)
	ref := `Algorithm: HS256, Key ID: k1
Subject: my-subject
Issuer: my-issuer
Audience: [my-audience]
Issued at: 0001-01-01 00:00:00 +0000 UTC, Expires at: 0001-01-01 00:00:00 +0000 UTC
Claims:
	ver: 1.0
`
	assert.Equal(ref, buf.String())
}
