package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/solatis/codemint/internal/types"
)

// ruleFile is the YAML form of a rule definition. Components use the same
// shape as the JSON wire format (a list of objects with a "type" field);
// expression-only rules may omit them entirely.
type ruleFile struct {
	Name         string           `yaml:"name"`
	Code         string           `yaml:"code"`
	Expression   string           `yaml:"expression"`
	Components   []map[string]any `yaml:"components"`
	Description  string           `yaml:"description"`
	SeqStart     int64            `yaml:"seq_start"`
	SeqStep      int64            `yaml:"seq_step"`
	SeqResetRule string           `yaml:"seq_reset_rule"`
	IsSystem     bool             `yaml:"is_system"`
	IsActive     *bool            `yaml:"is_active"`
}

var ruleImportCmd = &cobra.Command{
	Use:   "rule-import <file.yaml>",
	Short: "Import a rule definition from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runRuleImport,
}

func init() {
	rootCmd.AddCommand(ruleImportCmd)
}

func runRuleImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read rule file: %w", err)
	}

	var rf ruleFile
	if err := yaml.Unmarshal(content, &rf); err != nil {
		return fmt.Errorf("failed to parse rule file: %w", err)
	}
	if rf.Code == "" {
		return fmt.Errorf("rule file must set code")
	}
	if rf.Name == "" {
		return fmt.Errorf("rule file must set name")
	}

	rule := &types.CodeRule{
		Name:        rf.Name,
		Code:        rf.Code,
		Expression:  rf.Expression,
		Description: rf.Description,
		SeqStart:    rf.SeqStart,
		SeqStep:     rf.SeqStep,
		SeqReset:    types.ResetCycle(rf.SeqResetRule),
		IsSystem:    rf.IsSystem,
		IsActive:    true,
	}
	if rf.IsActive != nil {
		rule.IsActive = *rf.IsActive
	}

	// Components travel through the JSON codec so YAML and JSON rule
	// definitions share one shape and one validation path.
	if len(rf.Components) > 0 {
		encoded, err := json.Marshal(rf.Components)
		if err != nil {
			return fmt.Errorf("failed to encode components: %w", err)
		}
		var components types.ComponentList
		if err := json.Unmarshal(encoded, &components); err != nil {
			return fmt.Errorf("invalid components: %w", err)
		}
		rule.Components = components
	}

	service, database, err := openService(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := service.SaveRule(context.Background(), rule); err != nil {
		return err
	}

	fmt.Printf("rule %s imported\n", rule.Code)
	return nil
}
