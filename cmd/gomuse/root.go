package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:          "gomuse",
		Short:        "Headless music player core",
		Long:         "gomuse runs the caching and playback-surface core of the music client as a local daemon, and drives a running daemon from the command line.",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&addr, "addr", "http://localhost:7478", "address of a running gomuse daemon")

	cmd.AddCommand(
		newServeCmd(),
		newLoadCmd(&addr),
		newStateCmd(&addr),
		newCacheCmd(&addr),
	)

	return cmd
}
