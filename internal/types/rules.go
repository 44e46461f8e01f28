// internal/types/rules.go
package types

import "time"

/*
 * Rule record for code generation.
 *
 * CodeRule carries everything the generation service needs: either a
 * structured component list (new rules) or a legacy flat expression that
 * the DSL parser expands on demand. Sequence parameters (start, step,
 * reset cycle) live on the rule because the durable counter store applies
 * them; the counter component's initial value only matters for previews.
 *
 * Wire-format agnostic: persistence row structs live in the store layer,
 * conversion happens at that boundary.
 */

// CodeRule is a complete code generation rule definition.
type CodeRule struct {
	RuleID      RuleID        // immutable identifier
	Name        string        // human-readable name
	Code        string        // unique rule code used by callers
	Expression  string        // legacy flat expression, empty for new rules
	Components  ComponentList // structured components, nil for legacy rules
	Description string
	SeqStart    int64      // first value a fresh counter bucket yields
	SeqStep     int64      // increment per committed generation
	SeqReset    ResetCycle // reset cycle applied to legacy expression rules
	IsSystem    bool       // system rules refuse overwrite
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
