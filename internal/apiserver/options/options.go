// Package options aggregates all configuration for the lectern API server.
package options

import (
	"github.com/spf13/pflag"

	genericoptions "github.com/lectern-ai/lectern/internal/pkg/options"
	"github.com/lectern-ai/lectern/pkg/utils/json"
)

// Options is the full set of API server options, grouped the way they appear
// in the configuration file.
type Options struct {
	GenericServerRunOptions *genericoptions.ServerRunOptions `json:"serving" mapstructure:"serving"`
	GRPCOptions             *genericoptions.GRPCOptions      `json:"grpc"    mapstructure:"grpc"`
	ModelOptions            *genericoptions.ModelOptions     `json:"models"  mapstructure:"models"`
	ToolOptions             *genericoptions.ToolOptions      `json:"tools"   mapstructure:"tools"`
	StoreOptions            *genericoptions.StoreOptions     `json:"store"   mapstructure:"store"`
	AuthOptions             *genericoptions.AuthOptions      `json:"auth"    mapstructure:"auth"`
}

// NewOptions creates Options with all defaults applied.
func NewOptions() *Options {
	return &Options{
		GenericServerRunOptions: genericoptions.NewServerRunOptions(),
		GRPCOptions:             genericoptions.NewGRPCOptions(),
		ModelOptions:            genericoptions.NewModelOptions(),
		ToolOptions:             genericoptions.NewToolOptions(),
		StoreOptions:            genericoptions.NewStoreOptions(),
		AuthOptions:             genericoptions.NewAuthOptions(),
	}
}

// AddFlags registers every option group on the given FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	o.GenericServerRunOptions.AddFlags(fs)
	o.GRPCOptions.AddFlags(fs)
	o.ModelOptions.AddFlags(fs)
	o.ToolOptions.AddFlags(fs)
	o.StoreOptions.AddFlags(fs)
	o.AuthOptions.AddFlags(fs)
}

// Validate collects validation errors from every option group.
func (o *Options) Validate() []error {
	var errs []error
	errs = append(errs, o.GenericServerRunOptions.Validate()...)
	errs = append(errs, o.GRPCOptions.Validate()...)
	errs = append(errs, o.ModelOptions.Validate()...)
	errs = append(errs, o.ToolOptions.Validate()...)
	errs = append(errs, o.StoreOptions.Validate()...)
	errs = append(errs, o.AuthOptions.Validate()...)
	return errs
}

func (o *Options) String() string {
	data, _ := json.Marshal(o)

	return string(data)
}
