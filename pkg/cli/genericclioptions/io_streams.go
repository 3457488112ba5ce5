// Package genericclioptions holds option structs shared by CLI subcommands.
package genericclioptions

import "io"

// IOStreams bundles the three standard streams so subcommands stay testable.
type IOStreams struct {
	// In think, os.Stdin
	In io.Reader
	// Out think, os.Stdout
	Out io.Writer
	// ErrOut think, os.Stderr
	ErrOut io.Writer
}
