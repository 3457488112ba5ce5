package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

// ServerRunOptions contains the options for the generic HTTP API server.
type ServerRunOptions struct {
	Mode        string   `json:"mode"        mapstructure:"mode"`
	BindAddress string   `json:"bind-address" mapstructure:"bind-address"`
	BindPort    int      `json:"bind-port"   mapstructure:"bind-port"`
	Healthz     bool     `json:"healthz"     mapstructure:"healthz"`
	Profiling   bool     `json:"profiling"   mapstructure:"profiling"`
	Middlewares []string `json:"middlewares" mapstructure:"middlewares"`
}

// NewServerRunOptions creates ServerRunOptions with defaults.
func NewServerRunOptions() *ServerRunOptions {
	return &ServerRunOptions{
		Mode:        "release",
		BindAddress: "127.0.0.1",
		BindPort:    11680,
		Healthz:     true,
		Profiling:   false,
	}
}

// Validate checks ServerRunOptions fields.
func (o *ServerRunOptions) Validate() []error {
	var errs []error
	if o.BindPort < 1 || o.BindPort > 65535 {
		errs = append(errs, fmt.Errorf("--serving.bind-port %v must be between 1 and 65535", o.BindPort))
	}
	switch o.Mode {
	case "release", "debug", "test":
	default:
		errs = append(errs, fmt.Errorf("invalid serving mode %q, must be 'release', 'debug' or 'test'", o.Mode))
	}
	return errs
}

// AddFlags adds flags for the generic server to the given FlagSet.
func (o *ServerRunOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Mode, "serving.mode", o.Mode, "Gin mode: release, debug or test.")
	fs.StringVar(&o.BindAddress, "serving.bind-address", o.BindAddress, "IP address on which to serve the HTTP API.")
	fs.IntVar(&o.BindPort, "serving.bind-port", o.BindPort, "Port on which to serve the HTTP API.")
	fs.BoolVar(&o.Healthz, "serving.healthz", o.Healthz, "Install the /healthz readiness check route.")
	fs.BoolVar(&o.Profiling, "serving.profiling", o.Profiling, "Install pprof profiling routes under /debug.")
}
