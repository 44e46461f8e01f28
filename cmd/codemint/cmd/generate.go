package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var generateFields []string

var generateCmd = &cobra.Command{
	Use:   "generate <rule-code>",
	Short: "Generate the next code for a rule (consumes the counter)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(args[0], true)
	},
}

var testGenerateCmd = &cobra.Command{
	Use:   "test-generate <rule-code>",
	Short: "Render the code the next generate would produce, without consuming the counter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(args[0], false)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(testGenerateCmd)
	generateCmd.Flags().StringArrayVar(&generateFields, "field", nil, "form field value as name=value (repeatable)")
	testGenerateCmd.Flags().StringArrayVar(&generateFields, "field", nil, "form field value as name=value (repeatable)")
}

func runGenerate(ruleCode string, commit bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fieldCtx, err := parseFieldFlags(generateFields)
	if err != nil {
		return err
	}

	service, database, err := openService(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	ctx := context.Background()

	var code string
	if commit {
		code, err = service.Generate(ctx, ruleCode, fieldCtx)
	} else {
		code, err = service.TestGenerate(ctx, ruleCode, fieldCtx)
	}
	if err != nil {
		return err
	}

	fmt.Println(code)
	return nil
}
