// Package counter provides the durable, atomic counter store backing real
// code generation.
//
// Counters are keyed by (rule, scope hash, cycle bucket). Scope fields
// partition a rule's counter into independent sequences (one counter per
// department, for example); the cycle bucket encodes the reset period into
// the key itself, so crossing a daily/monthly/yearly boundary implicitly
// starts a fresh counter at the rule's start value with no reset logic and
// no once-per-cycle coordination.
package counter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/solatis/codemint/internal/core/db"
	"github.com/solatis/codemint/internal/types"
)

// Store is the contract the generation service depends on for sequence
// values. Next commits: concurrent calls on the same key receive strictly
// increasing, non-colliding values. Peek is read-only: it reports what the
// next committed value would be without consuming it.
type Store interface {
	Next(ctx context.Context, ruleID types.RuleID, scopeHash, cycleBucket string, start, step int64) (int64, error)
	Peek(ctx context.Context, ruleID types.RuleID, scopeHash, cycleBucket string, start, step int64) (int64, error)
}

// SQLStore implements Store against the code_sequences table.
// Increments run as a single upsert with RETURNING, so atomicity comes
// from the database row, not from in-process locking; any number of
// replicas can share one table.
type SQLStore struct {
	q *db.Queries
}

// NewSQLStore creates a store over loaded named queries.
func NewSQLStore(q *db.Queries) (*SQLStore, error) {
	if q == nil {
		return nil, fmt.Errorf("queries cannot be nil")
	}
	return &SQLStore{q: q}, nil
}

// Next atomically consumes the next counter value for the key.
// A fresh key yields start; an existing key advances by step.
func (s *SQLStore) Next(ctx context.Context, ruleID types.RuleID, scopeHash, cycleBucket string, start, step int64) (int64, error) {
	var value int64
	err := s.q.GetContext(ctx, "next-sequence", &value, string(ruleID), scopeHash, cycleBucket, start, step)
	if err != nil {
		return 0, fmt.Errorf("failed to advance sequence for rule %s: %w", ruleID, err)
	}
	return value, nil
}

// Peek returns the value the next committed generation would render,
// without advancing the counter.
func (s *SQLStore) Peek(ctx context.Context, ruleID types.RuleID, scopeHash, cycleBucket string, start, step int64) (int64, error) {
	var current int64
	err := s.q.GetContext(ctx, "peek-sequence", &current, string(ruleID), scopeHash, cycleBucket)
	if errors.Is(err, sql.ErrNoRows) {
		return start, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read sequence for rule %s: %w", ruleID, err)
	}
	return current + step, nil
}
