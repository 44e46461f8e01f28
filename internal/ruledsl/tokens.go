// internal/ruledsl/tokens.go
package ruledsl

import (
	"regexp"

	"github.com/solatis/codemint/internal/types"
)

// Expression token shapes. Anything that is not a field reference, a date
// run, or a SEQ token is fixed text, including malformed {...} fragments.
var (
	fieldTokenRe = regexp.MustCompile(`\{FIELD:([^{}]+)\}`)
	seqTokenRe   = regexp.MustCompile(`\{SEQ(?::([0-9]+))?\}`)
)

// datePresets lists preset date token runs in longest-match-first priority
// order. The first pattern found anywhere in an expression wins and no
// further date scanning occurs, so a {YYYY}{MM}{DD} run beats an earlier
// bare {YY}.
var datePresets = []struct {
	Preset types.DatePreset
	Tokens string
}{
	{types.PresetYYYYMMDD, "{YYYY}{MM}{DD}"},
	{types.PresetYYYYMM, "{YYYY}{MM}"},
	{types.PresetYYYY, "{YYYY}"},
	{types.PresetYYMMDD, "{YY}{MM}{DD}"},
	{types.PresetYYMM, "{YY}{MM}"},
	{types.PresetYY, "{YY}"},
}

// presetTokens returns the token run for a preset. Unknown presets fall
// back to the YYYYMMDD run, mirroring how custom formats serialize.
func presetTokens(p types.DatePreset) string {
	for _, dp := range datePresets {
		if dp.Preset == p {
			return dp.Tokens
		}
	}
	return "{YYYY}{MM}{DD}"
}

// presetLayout returns the time.Format layout for a preset. Unknown
// presets fall back to the YYYYMMDD layout.
func presetLayout(p types.DatePreset) string {
	switch p {
	case types.PresetYYYYMMDD:
		return "20060102"
	case types.PresetYYYYMM:
		return "200601"
	case types.PresetYYYY:
		return "2006"
	case types.PresetYYMMDD:
		return "060102"
	case types.PresetYYMM:
		return "0601"
	case types.PresetYY:
		return "06"
	default:
		return "20060102"
	}
}
