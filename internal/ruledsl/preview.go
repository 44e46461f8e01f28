// internal/ruledsl/preview.go
package ruledsl

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/solatis/codemint/internal/types"
)

/*
 * Rendering and preview.
 *
 * Render is the single rendering path for component lists: preview feeds
 * it each counter's configured initial value, the generation service feeds
 * it live values from the durable counter store. Components render in
 * order with no separators.
 *
 * Preview semantics are deliberately non-failing: missing form field
 * values degrade to a [fieldName] placeholder, a missing counter is healed
 * with the default, and a custom date format falls back to the YYYYMMDD
 * layout (no date-format mini-language is implemented).
 */

// CounterValueFunc resolves the value an auto counter component renders.
type CounterValueFunc func(c types.AutoCounter) (int64, error)

// Preview renders one example output for a component list using the host
// clock and each counter's configured initial value. Pure: no persistent
// counter is touched and no error can occur.
func Preview(components []types.Component, sampleContext map[string]string) string {
	return PreviewAt(components, sampleContext, time.Now())
}

// PreviewAt is Preview with an injected clock. Two calls with the same
// components, context, and timestamp produce identical output.
func PreviewAt(components []types.Component, sampleContext map[string]string, now time.Time) string {
	out, _ := Render(components, sampleContext, now, func(c types.AutoCounter) (int64, error) {
		return c.InitialValue, nil
	})
	return out
}

// Render concatenates the rendered form of each component in order.
// counterValue supplies the sequence value; its error is the only failure
// path. A list without an AutoCounter gets the default appended at the end
// before rendering.
func Render(components []types.Component, fieldCtx map[string]string, now time.Time, counterValue CounterValueFunc) (string, error) {
	sorted := append([]types.Component(nil), components...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ComponentOrder() < sorted[j].ComponentOrder()
	})
	if _, ok := types.FindAutoCounter(sorted); !ok {
		sorted = append(sorted, types.DefaultAutoCounter(len(sorted)))
	}

	var b strings.Builder
	for _, c := range sorted {
		switch v := c.(type) {
		case types.AutoCounter:
			value, err := counterValue(v)
			if err != nil {
				return "", err
			}
			b.WriteString(renderCounter(v, value))
		case types.DateStamp:
			b.WriteString(renderDate(v, now))
		case types.FixedText:
			b.WriteString(v.Text)
		case types.FormFieldRef:
			if value, ok := fieldCtx[v.FieldName]; ok {
				b.WriteString(value)
			} else {
				b.WriteString("[" + v.FieldName + "]")
			}
		}
	}
	return b.String(), nil
}

// renderCounter formats a sequence value, zero-padding to the configured
// digit count when fixed width. A value wider than digits is emitted
// as-is; there is no truncation.
func renderCounter(c types.AutoCounter, value int64) string {
	s := strconv.FormatInt(value, 10)
	if c.FixedWidth && len(s) < c.Digits {
		s = strings.Repeat("0", c.Digits-len(s)) + s
	}
	return s
}

// renderDate formats the date component for the given timestamp. Custom
// formats render with the YYYYMMDD layout.
func renderDate(c types.DateStamp, now time.Time) string {
	if c.FormatType == types.FormatCustom {
		return now.Format("20060102")
	}
	return now.Format(presetLayout(c.PresetFormat))
}
