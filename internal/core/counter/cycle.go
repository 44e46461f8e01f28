package counter

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"time"

	"github.com/solatis/codemint/internal/types"
)

// Bucket returns the cycle bucket for a reset cycle at the given time:
// "" for never, YYYY for yearly, YYYYMM for monthly, YYYYMMDD for daily.
// The bucket is part of the sequence key, which is what makes resets
// implicit: a new bucket has no row yet and starts from the rule's
// start value.
func Bucket(cycle types.ResetCycle, now time.Time) string {
	switch cycle {
	case types.ResetDaily:
		return now.Format("20060102")
	case types.ResetMonthly:
		return now.Format("200601")
	case types.ResetYearly:
		return now.Format("2006")
	default:
		return ""
	}
}

// ScopeHash derives the scope partition key from the counter's scope
// fields and the caller's field values. Fields are sorted so the hash is
// independent of declaration order; a missing field contributes the empty
// string. No scope fields means one shared counter (empty hash).
func ScopeHash(scopeFields []string, fieldCtx map[string]string) string {
	if len(scopeFields) == 0 {
		return ""
	}
	fields := append([]string(nil), scopeFields...)
	sort.Strings(fields)

	h := sha256.New()
	for _, f := range fields {
		h.Write([]byte(f))
		h.Write([]byte{'='})
		h.Write([]byte(fieldCtx[f]))
		h.Write([]byte{'\n'})
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
