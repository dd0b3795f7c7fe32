// Command jetlagctl runs one-off operations against the jet lag service:
// previewing email send times, running a dispatch sweep and migrating the
// database.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "jetlagctl",
	Short:         "Operations CLI for the jet lag plan service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.AddCommand(newSendTimeCmd(), newDispatchCmd(), newMigrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
