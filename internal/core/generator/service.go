// Package generator provides the code generation service: committing and
// non-committing generation keyed by rule code, plus the minimal rule
// persistence the generator and the CLI importer need.
package generator

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/solatis/codemint/internal/core/config"
	"github.com/solatis/codemint/internal/core/counter"
	"github.com/solatis/codemint/internal/core/db"
	"github.com/solatis/codemint/internal/ruledsl"
	"github.com/solatis/codemint/internal/types"
)

/*
 * Generation orchestration.
 *
 * Thin layer over the DSL renderer and the counter store. A rule's
 * components come either from its structured list or, for legacy rules,
 * from parsing the flat expression; in the legacy case the rule-level
 * reset cycle is applied to the reconstructed counter (the flat form
 * cannot carry it).
 *
 * Generate consumes counter state; TestGenerate peeks and is safe to call
 * from preview paths. Both render missing form field values as bracketed
 * placeholders, matching preview semantics, and build the scope key from
 * the values that are present. Store and lookup failures surface to the
 * caller unchanged; there is no retry here.
 */

// Service generates codes and persists rule definitions.
type Service struct {
	q     *db.Queries
	store counter.Store
	cfg   *config.Config
	now   func() time.Time
	log   zerolog.Logger
}

// NewService creates a generation service instance.
func NewService(q *db.Queries, store counter.Store, cfg *config.Config, logger zerolog.Logger) (*Service, error) {
	if q == nil {
		return nil, fmt.Errorf("queries cannot be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if cfg == nil {
		return nil, fmt.Errorf("cfg cannot be nil")
	}
	return &Service{
		q:     q,
		store: store,
		cfg:   cfg,
		now:   time.Now,
		log:   logger,
	}, nil
}

// Generate renders the next code for the rule, atomically consuming the
// counter value for the resolved scope and cycle bucket.
func (s *Service) Generate(ctx context.Context, ruleCode string, fieldCtx map[string]string) (string, error) {
	return s.generate(ctx, ruleCode, fieldCtx, s.store.Next)
}

// TestGenerate renders the code the next Generate call would produce
// using the live counter value, without advancing it.
func (s *Service) TestGenerate(ctx context.Context, ruleCode string, fieldCtx map[string]string) (string, error) {
	return s.generate(ctx, ruleCode, fieldCtx, s.store.Peek)
}

type sequenceFunc func(ctx context.Context, ruleID types.RuleID, scopeHash, cycleBucket string, start, step int64) (int64, error)

func (s *Service) generate(ctx context.Context, ruleCode string, fieldCtx map[string]string, next sequenceFunc) (string, error) {
	rule, err := s.GetRule(ctx, ruleCode)
	if err != nil {
		return "", err
	}
	if !rule.IsActive {
		return "", fmt.Errorf("%w: %s", types.ErrRuleInactive, ruleCode)
	}

	components := resolveComponents(rule)
	now := s.now()

	code, err := ruledsl.Render(components, fieldCtx, now, func(c types.AutoCounter) (int64, error) {
		bucket := counter.Bucket(c.ResetCycle, now)
		scope := counter.ScopeHash(c.ScopeFields, fieldCtx)
		return next(ctx, rule.RuleID, scope, bucket, rule.SeqStart, rule.SeqStep)
	})
	if err != nil {
		return "", err
	}

	s.log.Debug().
		Str("rule_code", ruleCode).
		Str("code", code).
		Msg("code generated")
	return code, nil
}

// resolveComponents returns the rule's effective component list. Legacy
// rules carry only a flat expression; the parsed counter inherits the
// rule-level reset cycle because the flat form cannot express it.
func resolveComponents(rule *types.CodeRule) []types.Component {
	if len(rule.Components) > 0 {
		return types.Normalize(rule.Components)
	}

	components := ruledsl.Parse(rule.Expression)
	if rule.SeqReset != "" {
		for i, c := range components {
			if ac, ok := c.(types.AutoCounter); ok {
				ac.ResetCycle = rule.SeqReset
				components[i] = ac
				break
			}
		}
	}
	return components
}

// ruleRow mirrors the code_rules table.
type ruleRow struct {
	RuleID       string         `db:"rule_id"`
	Name         string         `db:"name"`
	Code         string         `db:"code"`
	Expression   string         `db:"expression"`
	Components   sql.NullString `db:"components"`
	Description  string         `db:"description"`
	SeqStart     int64          `db:"seq_start"`
	SeqStep      int64          `db:"seq_step"`
	SeqResetRule string         `db:"seq_reset_rule"`
	IsSystem     bool           `db:"is_system"`
	IsActive     bool           `db:"is_active"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// GetRule loads a rule definition by its unique code.
func (s *Service) GetRule(ctx context.Context, ruleCode string) (*types.CodeRule, error) {
	var row ruleRow
	err := s.q.GetContext(ctx, "get-rule-by-code", &row, ruleCode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", types.ErrRuleNotFound, ruleCode)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load rule %s: %w", ruleCode, err)
	}

	rule := &types.CodeRule{
		RuleID:      types.RuleID(row.RuleID),
		Name:        row.Name,
		Code:        row.Code,
		Expression:  row.Expression,
		Description: row.Description,
		SeqStart:    row.SeqStart,
		SeqStep:     row.SeqStep,
		SeqReset:    types.ResetCycle(row.SeqResetRule),
		IsSystem:    row.IsSystem,
		IsActive:    row.IsActive,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}

	if row.Components.Valid && row.Components.String != "" {
		var components types.ComponentList
		if err := json.Unmarshal([]byte(row.Components.String), &components); err != nil {
			return nil, fmt.Errorf("rule %s has malformed components: %w", ruleCode, err)
		}
		rule.Components = components
	}

	return rule, nil
}

// SaveRule inserts or updates a rule definition by code. System rules
// refuse overwrite. A structured component list is validated before it
// is persisted; expression-only rules are accepted as-is (the parser is
// total).
func (s *Service) SaveRule(ctx context.Context, rule *types.CodeRule) error {
	if len(rule.Expression) > s.cfg.MaxExpressionLength {
		return fmt.Errorf("rule %s: expression exceeds %d characters", rule.Code, s.cfg.MaxExpressionLength)
	}
	if len(rule.Components) > s.cfg.MaxComponents {
		return fmt.Errorf("rule %s: more than %d components", rule.Code, s.cfg.MaxComponents)
	}

	existing, err := s.GetRule(ctx, rule.Code)
	if err != nil && !errors.Is(err, types.ErrRuleNotFound) {
		return err
	}
	if existing != nil && existing.IsSystem {
		return fmt.Errorf("%w: %s", types.ErrRuleIsSystem, rule.Code)
	}

	if rule.RuleID == "" {
		if existing != nil {
			rule.RuleID = existing.RuleID
		} else {
			rule.RuleID = types.NewRuleID()
		}
	}
	if rule.SeqStart == 0 {
		rule.SeqStart = 1
	}
	if rule.SeqStep == 0 {
		rule.SeqStep = 1
	}
	if rule.SeqReset == "" {
		rule.SeqReset = types.ResetNever
	}

	var components sql.NullString
	if len(rule.Components) > 0 {
		if err := types.ValidateComponents(rule.Components); err != nil {
			return fmt.Errorf("rule %s: %w", rule.Code, err)
		}
		encoded, err := json.Marshal(rule.Components)
		if err != nil {
			return fmt.Errorf("failed to encode components for rule %s: %w", rule.Code, err)
		}
		components = sql.NullString{String: string(encoded), Valid: true}
	}

	_, err = s.q.ExecContext(ctx, "upsert-rule",
		string(rule.RuleID), rule.Name, rule.Code, rule.Expression, components,
		rule.Description, rule.SeqStart, rule.SeqStep, string(rule.SeqReset),
		rule.IsSystem, rule.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to save rule %s: %w", rule.Code, err)
	}

	s.log.Info().Str("rule_code", rule.Code).Msg("rule saved")
	return nil
}
