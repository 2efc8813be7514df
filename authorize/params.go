// Package authorize prepares OAuth 2.0 Authorization Code + PKCE requests
// against the Vercel identity provider. It generates the per-attempt secrets
// (state, nonce, code verifier), derives the code challenge, and assembles
// the redirect that sends the browser to the provider's consent endpoint.
package authorize

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/oauth2"

	apperrors "github.com/mazehq/maze-server/internal/errors"
)

const (
	// paramAlphabet holds the unreserved URL-safe characters used for state
	// and nonce values (RFC 3986 section 2.3).
	paramAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-._~"

	// paramLength of 43 gives ~128 bits of entropy, the RFC 7636 minimum.
	paramLength = 43

	// codeVerifierBytes of raw randomness, hex-encoded to an 86-character
	// verifier. Hex output stays within the unreserved set PKCE requires.
	codeVerifierBytes = 43
)

// Params holds the secrets for a single authorization attempt and the
// challenge derived from the verifier. A fresh set is generated per request;
// values are never reused across attempts.
type Params struct {
	State         string
	Nonce         string
	CodeVerifier  string
	CodeChallenge string
}

// NewParams generates a complete set of authorization parameters.
func NewParams() (Params, error) {
	state, err := NewState()
	if err != nil {
		return Params{}, err
	}
	nonce, err := NewNonce()
	if err != nil {
		return Params{}, err
	}
	verifier, err := NewCodeVerifier()
	if err != nil {
		return Params{}, err
	}
	return Params{
		State:         state,
		Nonce:         nonce,
		CodeVerifier:  verifier,
		CodeChallenge: CodeChallengeS256(verifier),
	}, nil
}

// NewState returns an opaque value binding the authorization attempt to the
// browser session, checked on the callback to detect CSRF.
func NewState() (string, error) {
	return randomString(paramLength)
}

// NewNonce returns an opaque value used by the provider for replay protection.
func NewNonce() (string, error) {
	return randomString(paramLength)
}

// NewCodeVerifier draws 43 random bytes and hex-encodes them. The verifier is
// stored in a cookie and exchanged at the token endpoint; only its hash is
// sent in the authorization request.
func NewCodeVerifier() (string, error) {
	b := make([]byte, codeVerifierBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrRandomSource, err)
	}
	return hex.EncodeToString(b), nil
}

// CodeChallengeS256 derives the challenge sent in the redirect URL:
// base64url without padding over SHA-256 of the verifier. The callback
// recomputes this from the cookie-stored verifier, so it must match byte
// for byte.
func CodeChallengeS256(verifier string) string {
	return oauth2.S256ChallengeFromVerifier(verifier)
}

func randomString(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrRandomSource, err)
	}
	// Modulo mapping carries a slight bias since 256 is not a multiple of
	// the alphabet size. The values are opaque, so the bias is accepted.
	for i, v := range b {
		b[i] = paramAlphabet[int(v)%len(paramAlphabet)]
	}
	return string(b), nil
}
