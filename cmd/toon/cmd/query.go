package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/go-toon/toon"
)

var queryFile string

var queryCmd = &cobra.Command{
	Use:   "query <path> [file]",
	Short: "Read a field out of a TOON document by dotted path",
	Long: `Decode a TOON document and read a single field out of it using a
gjson dotted path, e.g. "users.0.name". The document is read from a file
argument or, if omitted, from standard input.

Examples:
  toon query users.0.name data.toon
  cat data.toon | toon query tags.1`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	path := args[0]
	var fileArgs []string
	if len(args) == 2 {
		fileArgs = args[1:]
	}

	src, err := readInput(fileArgs)
	if err != nil {
		return err
	}

	v, err := toon.Decode(string(src), toon.WithExpandPaths(true))
	if err != nil {
		return fmt.Errorf("decoding TOON: %w", err)
	}

	projection, err := json.Marshal(toon.ToGoValue(v))
	if err != nil {
		return fmt.Errorf("rendering JSON projection: %w", err)
	}

	result := gjson.GetBytes(projection, path)
	if !result.Exists() {
		return fmt.Errorf("path %q not found", path)
	}

	fmt.Println(result.String())
	return nil
}
