package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-toon/toon"
)

var (
	decodeOut              string
	decodeStrict           bool
	decodeIndentSize       int
	decodeExpandPaths      bool
	decodeAcceptLengthMark bool
	decodePretty           bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Convert TOON into JSON",
	Long: `Read a TOON document (from a file or standard input), parse it into
a value tree, and render it as JSON on standard output.

Examples:
  toon decode data.toon
  cat data.toon | toon decode --expand-paths`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringVarP(&decodeOut, "output", "o", "", "write result to file instead of stdout")
	decodeCmd.Flags().BoolVar(&decodeStrict, "strict", true, "enforce strict structural validation")
	decodeCmd.Flags().IntVar(&decodeIndentSize, "indent-size", 2, "required indent step under strict mode")
	decodeCmd.Flags().BoolVar(&decodeExpandPaths, "expand-paths", false, "split unquoted dotted keys into nested objects")
	decodeCmd.Flags().BoolVar(&decodeAcceptLengthMark, "accept-length-marker", false, `accept the legacy "[#N]" length header form`)
	decodeCmd.Flags().BoolVar(&decodePretty, "pretty", true, "indent the JSON output")
}

func runDecode(cmd *cobra.Command, args []string) error {
	src, err := readInput(args)
	if err != nil {
		return err
	}

	v, err := toon.Decode(string(src),
		toon.WithStrict(decodeStrict),
		toon.WithIndentSize(decodeIndentSize),
		toon.WithExpandPaths(decodeExpandPaths),
		toon.WithLengthMarkerAccepted(decodeAcceptLengthMark),
	)
	if err != nil {
		return fmt.Errorf("decoding: %w", err)
	}

	goValue := toon.ToGoValue(v)
	var out []byte
	if decodePretty {
		out, err = json.MarshalIndent(goValue, "", "  ")
	} else {
		out, err = json.Marshal(goValue)
	}
	if err != nil {
		return fmt.Errorf("rendering JSON: %w", err)
	}

	if err := writeOutput(decodeOut, string(out)+"\n"); err != nil {
		return err
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		fmt.Fprintf(os.Stderr, "decoded %d bytes of TOON into %d bytes of JSON\n", len(src), len(out))
	}
	return nil
}
