// Package info implements the `lecternctl info` subcommand.
package info

import (
	"context"
	"fmt"
	"reflect"
	"strconv"

	hoststat "github.com/likexian/host-stat-go"
	"github.com/spf13/cobra"

	"github.com/lectern-ai/lectern/pkg/cli/genericclioptions"
	"github.com/lectern-ai/lectern/pkg/cli/templates"
)

var infoExample = templates.Examples(`
		# Print the host information
		lecternctl info`)

// Info is an options struct to support the 'info' sub command.
type Info struct {
	HostName  string
	OSRelease string
	CPUCore   uint64
	MemTotal  string
	MemFree   string
	genericclioptions.IOStreams
}

// NewInfoOptions returns an initialized Info instance.
func NewInfoOptions(ioStreams genericclioptions.IOStreams) *Info {
	return &Info{
		IOStreams: ioStreams,
	}
}

// NewCmdInfo returns the initialized 'info' sub command.
func NewCmdInfo(ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := NewInfoOptions(ioStreams)

	cmd := &cobra.Command{
		Use:                   "info",
		DisableFlagsInUseLine: true,
		Short:                 "Print the host information",
		Long:                  "Print the host information.",
		Example:               infoExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.Run(cmd.Context(), args)
		},
	}

	return cmd
}

// Run executes the info sub command using the specified options.
func (o *Info) Run(ctx context.Context, args []string) error {
	var info Info

	hostInfo, err := hoststat.GetHostInfo()
	if err != nil {
		return fmt.Errorf("get host info failed: %w", err)
	}

	info.HostName = hostInfo.HostName
	info.OSRelease = hostInfo.Release + " " + hostInfo.OSBit

	memStat, err := hoststat.GetMemStat()
	if err != nil {
		return fmt.Errorf("get mem stat failed: %w", err)
	}

	info.MemTotal = strconv.FormatUint(memStat.MemTotal, 10) + "M"
	info.MemFree = strconv.FormatUint(memStat.MemFree, 10) + "M"

	cpuStat, err := hoststat.GetCPUInfo()
	if err != nil {
		return fmt.Errorf("get cpu stat failed: %w", err)
	}

	info.CPUCore = cpuStat.CoreCount

	s := reflect.ValueOf(&info).Elem()
	typeOfInfo := s.Type()

	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		if typeOfInfo.Field(i).Name == "IOStreams" {
			continue
		}

		v := fmt.Sprintf("%v", f.Interface())
		if v != "" {
			fmt.Fprintf(o.Out, "%12s %v\n", typeOfInfo.Field(i).Name+":", f.Interface())
		}
	}

	return nil
}
