package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootTrace bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ldgv",
	Short: "An interpreter for a session-typed functional calculus",
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&rootTrace, "trace", false,
		"Write an evaluation trace to stderr")
}
