package cmd

import (
	"github.com/nilmonster/ldgv/ldgv"
	"github.com/nilmonster/ldgv/repl"
	"github.com/spf13/cobra"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Run: func(cmd *cobra.Command, args []string) {
		repl.RunRepl("> ", ldgv.WithTrace(rootTrace))
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
