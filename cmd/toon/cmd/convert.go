package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	goyaml "github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/go-toon/toon"
)

var (
	convertFrom string
	convertTo   string
	convertOut  string
	convertSet  []string
)

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert between JSON, YAML, and TOON",
	Long: `Read a document in one of JSON, YAML, or TOON and write it out in
another, optionally patching fields by dotted path along the way.

Examples:
  toon convert --from json --to toon data.json
  toon convert --from toon --to yaml data.toon
  toon convert --from json --to toon --set name="Bob" data.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&convertFrom, "from", "json", "source format: json, yaml, or toon")
	convertCmd.Flags().StringVar(&convertTo, "to", "toon", "destination format: json, yaml, or toon")
	convertCmd.Flags().StringVarP(&convertOut, "output", "o", "", "write result to file instead of stdout")
	convertCmd.Flags().StringArrayVar(&convertSet, "set", nil, "patch a field before re-encoding, as path=value (repeatable)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	src, err := readInput(args)
	if err != nil {
		return err
	}

	doc, err := convertToJSON(string(src), convertFrom)
	if err != nil {
		return err
	}

	for _, patch := range convertSet {
		path, val, ok := strings.Cut(patch, "=")
		if !ok {
			return fmt.Errorf("invalid --set %q, want path=value", patch)
		}
		doc, err = sjson.Set(doc, path, val)
		if err != nil {
			return fmt.Errorf("patching %q: %w", path, err)
		}
	}

	out, err := convertFromJSON(doc, convertTo)
	if err != nil {
		return err
	}

	return writeOutput(convertOut, out)
}

// convertToJSON normalizes a source document of the given format into a
// JSON string, the common interchange form every conversion pivots
// through.
func convertToJSON(src, format string) (string, error) {
	switch format {
	case "json":
		return src, nil
	case "yaml":
		var v any
		if err := goyaml.Unmarshal([]byte(src), &v); err != nil {
			return "", fmt.Errorf("parsing YAML: %w", err)
		}
		out, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("rendering JSON: %w", err)
		}
		return string(out), nil
	case "toon":
		v, err := toon.Decode(src, toon.WithExpandPaths(true))
		if err != nil {
			return "", fmt.Errorf("decoding TOON: %w", err)
		}
		out, err := json.Marshal(toon.ToGoValue(v))
		if err != nil {
			return "", fmt.Errorf("rendering JSON: %w", err)
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("unknown source format %q (use json, yaml, or toon)", format)
	}
}

func convertFromJSON(doc, format string) (string, error) {
	switch format {
	case "json":
		var v any
		if err := json.Unmarshal([]byte(doc), &v); err != nil {
			return "", fmt.Errorf("re-parsing patched JSON: %w", err)
		}
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		return string(out) + "\n", nil
	case "yaml":
		var v any
		if err := json.Unmarshal([]byte(doc), &v); err != nil {
			return "", fmt.Errorf("re-parsing patched JSON: %w", err)
		}
		out, err := goyaml.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("rendering YAML: %w", err)
		}
		return string(out), nil
	case "toon":
		var v any
		if err := json.Unmarshal([]byte(doc), &v); err != nil {
			return "", fmt.Errorf("re-parsing patched JSON: %w", err)
		}
		out, err := toon.Encode(v)
		if err != nil {
			return "", fmt.Errorf("encoding TOON: %w", err)
		}
		return out + "\n", nil
	default:
		return "", fmt.Errorf("unknown destination format %q (use json, yaml, or toon)", format)
	}
}
