package config

// OAuthClientIDVar names the environment variable supplying the Vercel OAuth
// client identifier. The authorization endpoint cannot operate without it.
const OAuthClientIDVar = "VERCEL_APP_CLIENT_ID"

type OAuthConfig interface {
	GetOAuthClientID() string
}

type OAuth struct{}

var _ OAuthConfig = OAuth{}

func (OAuth) GetOAuthClientID() string {
	return GetEnv(OAuthClientIDVar, "")
}
