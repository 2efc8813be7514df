package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mazehq/maze-server/authorize"
	"github.com/mazehq/maze-server/internal/config"
	apperrors "github.com/mazehq/maze-server/internal/errors"
)

// AuthorizeHandler begins the OAuth 2.0 Authorization Code + PKCE flow. It
// generates fresh state/nonce/verifier secrets, binds them to the browser
// session via short-lived HTTP-only cookies, and redirects to the provider's
// consent endpoint. Every invocation starts an independent attempt; retrying
// never resumes a prior one.
func (s *Server) AuthorizeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// The Secure cookie flag follows the deployment environment, not the
		// request scheme.
		secure := s.env != "DEV"

		redirect, err := authorize.Build(s.config.GetOAuthClientID(), requestOrigin(r), secure)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrNotConfigured) {
				log.Error().Str("var", config.OAuthClientIDVar).Msg("OAuth client id is not configured")
				writeJSONError(w, "OAuth not configured. Missing "+config.OAuthClientIDVar, http.StatusInternalServerError)
				return
			}
			log.Err(err).Msg("Failed to build authorization redirect")
			writeJSONError(w, "failed to initiate authorization", http.StatusInternalServerError)
			return
		}

		// Cookies must be attached before the redirect status is written.
		for _, cookie := range redirect.Cookies {
			http.SetCookie(w, cookie)
		}
		http.Redirect(w, r, redirect.URL, http.StatusFound)
	}
}
