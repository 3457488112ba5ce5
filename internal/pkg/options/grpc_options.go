package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

// GRPCOptions contains the options for the auxiliary gRPC server.
type GRPCOptions struct {
	BindAddress string `json:"bind-address" mapstructure:"bind-address"`
	BindPort    int    `json:"bind-port"    mapstructure:"bind-port"`
	MaxMsgSize  int    `json:"max-msg-size" mapstructure:"max-msg-size"`
}

// NewGRPCOptions creates GRPCOptions with defaults.
func NewGRPCOptions() *GRPCOptions {
	return &GRPCOptions{
		BindAddress: "127.0.0.1",
		BindPort:    11681,
		MaxMsgSize:  4 * 1024 * 1024,
	}
}

// Validate checks GRPCOptions fields.
func (o *GRPCOptions) Validate() []error {
	var errs []error
	if o.BindPort < 1 || o.BindPort > 65535 {
		errs = append(errs, fmt.Errorf("--grpc.bind-port %v must be between 1 and 65535", o.BindPort))
	}
	return errs
}

// AddFlags adds flags for the gRPC server to the given FlagSet.
func (o *GRPCOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.BindAddress, "grpc.bind-address", o.BindAddress, "IP address on which to serve the gRPC API.")
	fs.IntVar(&o.BindPort, "grpc.bind-port", o.BindPort, "Port on which to serve the gRPC API.")
	fs.IntVar(&o.MaxMsgSize, "grpc.max-msg-size", o.MaxMsgSize, "Maximum gRPC message size in bytes.")
}
