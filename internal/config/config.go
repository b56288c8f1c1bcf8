// Package config holds the destination connection settings shared by the
// loader entry points, and the flag > environment > default resolution the
// CLIs apply to every option. No config files are involved; the only inputs
// are flags and environment variables (optionally via a .env file loaded by
// the entry point).
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
)

// Postgres holds the pieces the destination DSN is assembled from.
type Postgres struct {
	User string
	Pass string
	Host string
	Port int
	DB   string
}

// DSN renders a postgres:// connection string with credentials escaped.
func (p Postgres) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(p.User, p.Pass),
		Host:   fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:   "/" + p.DB,
	}
	return u.String()
}

// ResolveString resolves an option with flag > environment > default
// precedence. An empty flag value means "not set".
func ResolveString(flagVal, envKey, def string) string {
	if flagVal != "" {
		return flagVal
	}
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return def
}

// ResolveInt is ResolveString for integer options; a zero flag value means
// "not set", and an unparseable environment value falls through to def.
func ResolveInt(flagVal int, envKey string, def int) int {
	if flagVal != 0 {
		return flagVal
	}
	if v := os.Getenv(envKey); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
