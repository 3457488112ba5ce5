package options

import (
	"github.com/spf13/pflag"
)

// AuthOptions configures Bearer token authentication for the HTTP API.
// The token may also come from the LECTERN_SERVER_TOKEN environment
// variable; loopback requests are always accepted.
type AuthOptions struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Token   string `json:"token"   mapstructure:"token"`
}

// NewAuthOptions creates AuthOptions with defaults.
func NewAuthOptions() *AuthOptions {
	return &AuthOptions{
		Enabled: true,
	}
}

// Validate checks AuthOptions fields.
func (o *AuthOptions) Validate() []error {
	return nil
}

// AddFlags adds auth flags to the given FlagSet.
func (o *AuthOptions) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&o.Enabled, "auth.enabled", o.Enabled, "Require a Bearer token on non-loopback API requests.")
	fs.StringVar(&o.Token, "auth.token", o.Token, "Bearer token expected by the server (or set LECTERN_SERVER_TOKEN).")
}
