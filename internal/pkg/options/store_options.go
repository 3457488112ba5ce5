package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Store backend names accepted by --store.type.
const (
	StoreTypeBoltDB   = "boltdb"
	StoreTypeInMemory = "inmemory"
)

// StoreOptions selects and configures the persistence backend shared by the
// assistant and organization stores.
type StoreOptions struct {
	Type string `json:"type" mapstructure:"type"`
	Path string `json:"path" mapstructure:"path"`
}

// NewStoreOptions creates StoreOptions with defaults.
func NewStoreOptions() *StoreOptions {
	return &StoreOptions{
		Type: StoreTypeBoltDB,
		Path: "data/lectern.db",
	}
}

// Validate checks StoreOptions fields.
func (o *StoreOptions) Validate() []error {
	var errs []error
	switch o.Type {
	case StoreTypeBoltDB:
		if o.Path == "" {
			errs = append(errs, fmt.Errorf("--store.path is required when --store.type=%s", StoreTypeBoltDB))
		}
	case StoreTypeInMemory:
	default:
		errs = append(errs, fmt.Errorf("invalid store type %q, must be %q or %q", o.Type, StoreTypeBoltDB, StoreTypeInMemory))
	}
	return errs
}

// AddFlags adds store flags to the given FlagSet.
func (o *StoreOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Type, "store.type", o.Type, "Persistence backend: boltdb or inmemory.")
	fs.StringVar(&o.Path, "store.path", o.Path, "Path to the BoltDB database file.")
}
