package config

import "os"

const jwtSecretEnv = "AUTH_JWT_SECRET"

type AuthConfig struct {
	JWTSecret string
}

func LoadAuthConfig() *AuthConfig {
	return &AuthConfig{
		JWTSecret: os.Getenv(jwtSecretEnv),
	}
}

// Enabled reports whether request authentication is enforced. An empty
// secret leaves the API open, for local development only.
func (c *AuthConfig) Enabled() bool {
	return c != nil && c.JWTSecret != ""
}
