package cmd

import (
	"fmt"
	"os"

	"github.com/nilmonster/ldgv/ldgv"
	"github.com/nilmonster/ldgv/parser"
	"github.com/spf13/cobra"
)

var runExpression bool

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a program",
	Long: `Run a program supplied via the command line or a file.  A program is a
sequence of val declarations; the declaration named main is evaluated
and its value printed.  With --expression the arguments are evaluated
as bare expressions instead.`,
	Run: func(cmd *cobra.Command, args []string) {
		sources, err := runReadSources(args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if runExpression {
			runExprs(sources)
			return
		}
		runProgram(sources)
	},
}

func runProgram(sources [][]byte) {
	var decls []*ldgv.Decl
	for _, src := range sources {
		ds, err := parser.ParseProgram(src)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		decls = append(decls, ds...)
	}
	rt := ldgv.NewRuntime(decls, ldgv.WithTrace(rootTrace))
	v, err := rt.RunMain()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(v)
}

func runExprs(sources [][]byte) {
	sess := ldgv.NewSession(ldgv.WithTrace(rootTrace))
	for _, src := range sources {
		forms, err := parser.Parse(src)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for _, form := range forms {
			if form.Decl != nil {
				sess.Declare(form.Decl)
				continue
			}
			v, err := sess.Eval(form.Expr)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			fmt.Println(v)
		}
	}
}

func runReadSources(args []string) ([][]byte, error) {
	sources := make([][]byte, len(args))
	if runExpression {
		for i := range args {
			sources[i] = []byte(args[i])
		}
		return sources, nil
	}
	for i, path := range args {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		sources[i] = b
	}
	return sources, nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as expressions")
}
