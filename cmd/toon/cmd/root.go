package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "toon",
	Short: "Token-Oriented Object Notation encoder/decoder",
	Long: `toon is a command-line tool for the Token-Oriented Object Notation
(TOON) format: a compact, indentation-based serialization that reads like
YAML for objects and CSV for uniform arrays, designed to cost fewer tokens
than JSON in LLM-facing workflows while remaining losslessly round-trip
compatible.

Subcommands:
  encode   convert JSON into TOON
  decode   convert TOON into JSON
  convert  convert between JSON, YAML, and TOON
  query    read a field out of a TOON document by dotted path`,
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command, reporting any error through
// exitWithError instead of letting cobra's default error path handle it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitWithError("%v", err)
	}
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
