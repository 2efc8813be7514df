package authorize

import (
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	apperrors "github.com/mazehq/maze-server/internal/errors"
)

// Endpoint is Vercel's OAuth 2.0 endpoint.
var Endpoint = oauth2.Endpoint{
	AuthURL:  "https://vercel.com/oauth/authorize",
	TokenURL: "https://vercel.com/oauth/access_token",
}

const (
	// CallbackPath is where the provider redirects the browser after consent.
	// The callback handler reads back the cookies set here.
	CallbackPath = "/api/auth/callback"

	// Scope requests an ID token, email and profile claims, and a refresh
	// token (offline_access).
	Scope = "openid email profile offline_access"

	// Cookie names consumed by the callback handler. The names, the
	// 10-minute window, and the HttpOnly/SameSite=Lax attributes are part of
	// that contract.
	StateCookie        = "oauth_state"
	NonceCookie        = "oauth_nonce"
	CodeVerifierCookie = "oauth_code_verifier"

	cookieMaxAge = 600 // 10 minutes
)

// Redirect is a fully assembled authorization redirect: the provider URL to
// send the browser to and the cookies binding the attempt to the session.
// Build touches no response state; callers apply the value to a response.
type Redirect struct {
	URL     string
	Cookies []*http.Cookie
}

// Build assembles the authorization redirect for one fresh attempt. origin is
// the scheme and host serving the current request; secure controls the cookie
// Secure flag and should be false only in local development.
func Build(clientID, origin string, secure bool) (*Redirect, error) {
	if clientID == "" {
		return nil, apperrors.ErrNotConfigured
	}

	params, err := NewParams()
	if err != nil {
		return nil, apperrors.Wrapf(err, "build authorization redirect")
	}

	// Parameter order mirrors the consent URL the provider documents.
	query := strings.Join([]string{
		"client_id=" + url.QueryEscape(clientID),
		"redirect_uri=" + url.QueryEscape(origin+CallbackPath),
		"state=" + url.QueryEscape(params.State),
		"nonce=" + url.QueryEscape(params.Nonce),
		"code_challenge=" + url.QueryEscape(params.CodeChallenge),
		"code_challenge_method=S256",
		"response_type=code",
		"scope=" + url.QueryEscape(Scope),
	}, "&")

	return &Redirect{
		URL: Endpoint.AuthURL + "?" + query,
		Cookies: []*http.Cookie{
			attemptCookie(StateCookie, params.State, secure),
			attemptCookie(NonceCookie, params.Nonce, secure),
			attemptCookie(CodeVerifierCookie, params.CodeVerifier, secure),
		},
	}, nil
}

func attemptCookie(name, value string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
