package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-toon/toon"
)

var (
	encodeOut          string
	encodeIndent       int
	encodeDelimiter    string
	encodeLengthMarker string
	encodeKeyFolding   bool
	encodeFlattenDepth int
)

var encodeCmd = &cobra.Command{
	Use:   "encode [file]",
	Short: "Convert JSON into TOON",
	Long: `Read a JSON document (from a file or standard input), decode it into
Go values, and render it as a TOON document on standard output.

Examples:
  toon encode data.json
  cat data.json | toon encode
  toon encode --delimiter tab --indent 4 data.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)

	encodeCmd.Flags().StringVarP(&encodeOut, "output", "o", "", "write result to file instead of stdout")
	encodeCmd.Flags().IntVar(&encodeIndent, "indent", 2, "number of spaces per indentation level")
	encodeCmd.Flags().StringVar(&encodeDelimiter, "delimiter", "comma", "array/tabular delimiter: comma, tab, or pipe")
	encodeCmd.Flags().StringVar(&encodeLengthMarker, "length-marker", "", `prefix placed inside length headers (e.g. "#")`)
	encodeCmd.Flags().BoolVar(&encodeKeyFolding, "key-folding", false, "fold single-key nested object chains into dotted paths")
	encodeCmd.Flags().IntVar(&encodeFlattenDepth, "flatten-depth", -1, "bound key-folding chain length (-1 means unbounded)")
}

func runEncode(cmd *cobra.Command, args []string) error {
	delimiter, err := parseDelimiterFlag(encodeDelimiter)
	if err != nil {
		return err
	}

	src, err := readInput(args)
	if err != nil {
		return err
	}

	var v any
	if err := json.Unmarshal(src, &v); err != nil {
		return fmt.Errorf("parsing JSON: %w", err)
	}

	doc, err := toon.Encode(v,
		toon.WithIndent(encodeIndent),
		toon.WithDelimiter(delimiter),
		toon.WithLengthMarker(encodeLengthMarker),
		toon.WithKeyFolding(encodeKeyFolding),
		toon.WithFlattenDepth(encodeFlattenDepth),
	)
	if err != nil {
		return fmt.Errorf("encoding: %w", err)
	}

	if err := writeOutput(encodeOut, doc+"\n"); err != nil {
		return err
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		fmt.Fprintf(os.Stderr, "encoded %d bytes of JSON into %d bytes of TOON\n", len(src), len(doc))
	}
	return nil
}

func parseDelimiterFlag(name string) (rune, error) {
	switch name {
	case "comma", "":
		return ',', nil
	case "tab":
		return '\t', nil
	case "pipe":
		return '|', nil
	default:
		return 0, fmt.Errorf("unknown delimiter %q (use comma, tab, or pipe)", name)
	}
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}

func writeOutput(path, content string) error {
	if path == "" {
		fmt.Print(content)
		return nil
	}
	return os.WriteFile(path, []byte(content), 0644)
}
