package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solatis/codemint/internal/ruledsl"
	"github.com/solatis/codemint/internal/types"
)

var (
	previewFields     []string
	previewComponents bool
)

var previewCmd = &cobra.Command{
	Use:   "preview <expression>",
	Short: "Parse an expression and render a sample code",
	Long: `Parses a flat rule expression (e.g. "ORD-{YYYY}{MM}-{SEQ:4}") and renders
one example output using today's date and the counter's initial value.
No persistent counter is touched.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().StringArrayVar(&previewFields, "field", nil, "sample form field value as name=value (repeatable)")
	previewCmd.Flags().BoolVar(&previewComponents, "components", false, "also print the parsed component list as JSON")
}

func runPreview(cmd *cobra.Command, args []string) error {
	fieldCtx, err := parseFieldFlags(previewFields)
	if err != nil {
		return err
	}

	components := ruledsl.Parse(args[0])
	fmt.Println(ruledsl.Preview(components, fieldCtx))

	if previewComponents {
		encoded, err := json.MarshalIndent(types.ComponentList(components), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(encoded))
	}
	return nil
}

// parseFieldFlags converts repeated name=value flags into a field context.
func parseFieldFlags(flags []string) (map[string]string, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	fieldCtx := make(map[string]string, len(flags))
	for _, f := range flags {
		name, value, ok := strings.Cut(f, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --field %q (expected name=value)", f)
		}
		fieldCtx[name] = value
	}
	return fieldCtx, nil
}
