package jsonwebtoken

import (
	"time"
)

// Validation describes the checks applied to a token's claims during Decode.
// The zero value checks nothing; use NewValidation for sensible defaults.
type Validation struct {
	// Leeway is subtracted from nbf and added to exp when comparing against
	// the current time, to tolerate clock skew between issuer and verifier.
	Leeway time.Duration
	// ValidateExpiry requires a valid, unexpired exp claim.
	ValidateExpiry bool
	// ValidateNotBefore requires a valid nbf claim that is not in the future.
	ValidateNotBefore bool
	// Issuer, if non-empty, is the required value of the iss claim.
	Issuer string
	// Subject, if non-empty, is the required value of the sub claim.
	Subject string
	// Audience, if non-empty, requires the aud claim to contain at least one
	// of these values.
	Audience []string
	// Algorithms is the set of algorithms accepted in the token header.
	Algorithms []Algorithm
}

// NewValidation returns a Validation that requires an unexpired exp claim and
// restricts verification to the given algorithms.
func NewValidation(algorithms ...Algorithm) *Validation {
	return &Validation{
		ValidateExpiry: true,
		Algorithms:     algorithms,
	}
}

func (v *Validation) allows(alg Algorithm) bool {
	for _, a := range v.Algorithms {
		if a == alg {
			return true
		}
	}
	return false
}

// validate checks the claim set against the configured rules and returns the
// first failure found.
func (v *Validation) validate(claims MapClaims) error {
	now := time.Now()

	if v.ValidateExpiry {
		exp, ok := claims.Expiration()
		if !ok || now.After(exp.Add(v.Leeway)) {
			return NewError(ExpiredSignature)
		}
	}

	if v.ValidateNotBefore {
		nbf, ok := claims.NotBefore()
		if !ok || now.Before(nbf.Add(-v.Leeway)) {
			return NewError(ImmatureSignature)
		}
	}

	if v.Issuer != "" && claims.Issuer() != v.Issuer {
		return NewError(InvalidIssuer)
	}

	if v.Subject != "" && claims.Subject() != v.Subject {
		return NewError(InvalidSubject)
	}

	if len(v.Audience) > 0 {
		ok := false
	OUTER:
		for _, want := range v.Audience {
			for _, have := range claims.Audience() {
				if have == want {
					ok = true
					break OUTER
				}
			}
		}
		if !ok {
			return NewError(InvalidAudience)
		}
	}

	return nil
}
