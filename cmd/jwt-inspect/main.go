package main

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"strings"

	"github.com/jpopesculian/jsonwebtoken"
	flag "github.com/spf13/pflag"
)

var (
	secret *string = flag.StringP("secret", "k", "",
		"HMAC secret to verify the token signature with.")
	keyFile *string = flag.StringP("key-file", "f", "",
		"PEM file with the RSA or ECDSA public key to verify the token signature with.")
	issuers *[]string = flag.StringSliceP("issuer", "i", []string{},
		"trusted token issuer for obtaining keys via its JWKS endpoint. Can be repeated.")
	algorithms *[]string = flag.StringSliceP("alg", "a", []string{"HS256", "RS256", "ES256"},
		"algorithm accepted in the token header. Can be repeated.")
	audience *[]string = flag.StringSliceP("audience", "d", []string{},
		"audience the token must be addressed to. Can be repeated.")
	expectIssuer *string = flag.String("expect-issuer", "",
		"issuer the token's iss claim must match.")
	noVerify *bool = flag.Bool("no-verify", false,
		"decode without verifying the signature. NOT for authorization decisions.")
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s: decode and verify a JWT.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, `
The token will be read from a file pointed to by the JWT environment variable,
otherwise read from stdin.

Verification needs exactly one key source: an HMAC secret (--secret/-k), a PEM
public key file (--key-file/-f), or one or more trusted issuers
(--issuer/-i) whose signing keys are fetched from their JWKS endpoints.

If the token is not valid an explanation message will be printed to stderr and
the program will terminate with exit code 1.

EXAMPLES

Verify with a shared secret:
    jwt-inspect -k super-secret

Verify against an issuer's published keys, requiring an audience:
    jwt-inspect -i https://issuer.example.com -d my-service

FLAGS
`)
		flag.PrintDefaults()
	}
	flag.Parse()
}

func main() {
	var in io.Reader
	if filename := os.Getenv("JWT"); filename != "" {
		log.Printf("reading token from file %s", filename)
		f, err := os.Open(filename)
		if err != nil {
			log.Fatalf("error opening token file %s", filename)
		}
		defer f.Close()
		in = f
	} else {
		log.Printf("reading token from stdin")
		in = os.Stdin
	}
	raw, err := ioutil.ReadAll(in)
	if err != nil {
		log.Fatalf("error reading token: %s", err)
	}
	token := strings.TrimSpace(string(raw))

	t, err := decodeToken(token)
	if err != nil {
		log.Fatalf("token not valid: %s", err)
	}
	jsonwebtoken.PrintToken(os.Stdout, t)
}

func decodeToken(token string) (*jsonwebtoken.Token, error) {
	if *noVerify {
		return jsonwebtoken.InsecureDecode(token)
	}

	validation := jsonwebtoken.NewValidation()
	for _, name := range *algorithms {
		alg, err := jsonwebtoken.ParseAlgorithm(name)
		if err != nil {
			return nil, err
		}
		validation.Algorithms = append(validation.Algorithms, alg)
	}
	validation.Audience = *audience
	validation.Issuer = *expectIssuer

	switch {
	case *secret != "":
		key := jsonwebtoken.VerificationKeyFromSecret([]byte(*secret))
		return jsonwebtoken.Decode(token, key, validation)
	case *keyFile != "":
		data, err := ioutil.ReadFile(*keyFile)
		if err != nil {
			return nil, err
		}
		key, err := publicKeyFromPEM(data)
		if err != nil {
			return nil, err
		}
		return jsonwebtoken.Decode(token, key, validation)
	case len(*issuers) > 0:
		provider := jsonwebtoken.NewKeyFetcher(*issuers...)
		return jsonwebtoken.DecodeWithKeys(context.Background(), token, provider, validation)
	}
	return nil, fmt.Errorf("one of --secret, --key-file or --issuer is required")
}

// publicKeyFromPEM tries the RSA parser first, then ECDSA.
func publicKeyFromPEM(data []byte) (*jsonwebtoken.VerificationKey, error) {
	if key, err := jsonwebtoken.RSAVerificationKeyFromPEM(data); err == nil {
		return key, nil
	}
	return jsonwebtoken.ECDSAVerificationKeyFromPEM(data)
}
