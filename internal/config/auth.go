package config

import "time"

type Auth struct {
	// JWTSecret signs access tokens. Rotating it invalidates all sessions.
	JWTSecret   string        `env:"AUTH_JWT_SECRET,required"`
	TokenExpiry time.Duration `env:"AUTH_TOKEN_EXPIRY" envDefault:"24h"`
}
