// internal/ruledsl/parse.go
package ruledsl

import (
	"sort"
	"strconv"
	"strings"

	"github.com/solatis/codemint/internal/types"
)

/*
 * Flat expression parsing.
 *
 * Converts a legacy expression string like {FIELD:dept}{YYYY}{MM}{DD}{SEQ:5}-TAG
 * into an ordered component list. Extraction runs as staged passes over a
 * consumed-span mask on the original string so stages never double-count
 * the same characters and positional order survives across passes:
 *
 *   1. every {FIELD:name} occurrence, left to right
 *   2. one preset date run, presets tried longest-match-first; the first
 *      preset found anywhere wins, later date runs degrade to fixed text
 *   3. the first {SEQ} / {SEQ:digits} token; later SEQ tokens degrade to
 *      fixed text (a rule has exactly one counter)
 *   4. residual unconsumed runs become fixed text verbatim, which is also
 *      where malformed or unrecognized {...} fragments land
 *
 * Parsing is total: there is no error return. An expression without a SEQ
 * token gets the default counter appended, the empty expression parses to
 * exactly [DefaultAutoCounter].
 */

// parsedSpan ties an extracted component to its byte range in the input.
type parsedSpan struct {
	start     int
	end       int
	component types.Component
}

// Parse converts a flat expression into an ordered component list.
// The result always contains exactly one AutoCounter and is numbered
// densely 0..N-1 in original left-to-right order.
func Parse(expression string) []types.Component {
	if expression == "" {
		return []types.Component{types.DefaultAutoCounter(0)}
	}

	consumed := make([]bool, len(expression))
	var spans []parsedSpan

	// Pass 1: field references.
	for _, m := range fieldTokenRe.FindAllStringSubmatchIndex(expression, -1) {
		spans = append(spans, parsedSpan{
			start:     m[0],
			end:       m[1],
			component: types.FormFieldRef{FieldName: expression[m[2]:m[3]]},
		})
		markConsumed(consumed, m[0], m[1])
	}

	// Pass 2: one preset date run, priority by pattern order.
	for _, dp := range datePresets {
		start, ok := findUnconsumed(expression, consumed, dp.Tokens)
		if !ok {
			continue
		}
		spans = append(spans, parsedSpan{
			start: start,
			end:   start + len(dp.Tokens),
			component: types.DateStamp{
				FormatType:   types.FormatPreset,
				PresetFormat: dp.Preset,
			},
		})
		markConsumed(consumed, start, start+len(dp.Tokens))
		break
	}

	// Pass 3: the first SEQ token.
	counterFound := false
	for _, m := range seqTokenRe.FindAllStringSubmatchIndex(expression, -1) {
		if anyConsumed(consumed, m[0], m[1]) {
			continue
		}
		counter := types.AutoCounter{
			ResetCycle:   types.ResetNever,
			InitialValue: 1,
		}
		if m[2] >= 0 {
			digits, err := strconv.Atoi(expression[m[2]:m[3]])
			if err == nil {
				counter.Digits = digits
				counter.FixedWidth = true
			}
		}
		spans = append(spans, parsedSpan{start: m[0], end: m[1], component: counter})
		markConsumed(consumed, m[0], m[1])
		counterFound = true
		break
	}

	// Pass 4: residual runs are fixed text.
	for i := 0; i < len(expression); {
		if consumed[i] {
			i++
			continue
		}
		j := i
		for j < len(expression) && !consumed[j] {
			j++
		}
		spans = append(spans, parsedSpan{
			start:     i,
			end:       j,
			component: types.FixedText{Text: expression[i:j]},
		})
		i = j
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	components := make([]types.Component, 0, len(spans)+1)
	for i, s := range spans {
		components = append(components, types.WithOrder(s.component, i))
	}
	if !counterFound {
		components = append(components, types.DefaultAutoCounter(len(components)))
	}
	return components
}

func markConsumed(consumed []bool, start, end int) {
	for i := start; i < end; i++ {
		consumed[i] = true
	}
}

func anyConsumed(consumed []bool, start, end int) bool {
	for i := start; i < end; i++ {
		if consumed[i] {
			return true
		}
	}
	return false
}

// findUnconsumed returns the first occurrence of needle whose entire span
// is still unconsumed, or ok=false.
func findUnconsumed(s string, consumed []bool, needle string) (int, bool) {
	from := 0
	for {
		idx := strings.Index(s[from:], needle)
		if idx < 0 {
			return 0, false
		}
		start := from + idx
		if !anyConsumed(consumed, start, start+len(needle)) {
			return start, true
		}
		from = start + 1
	}
}
