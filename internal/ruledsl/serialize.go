// internal/ruledsl/serialize.go
package ruledsl

import (
	"sort"
	"strconv"
	"strings"

	"github.com/solatis/codemint/internal/types"
)

// Serialize converts an ordered component list back into a flat expression.
// Components are sorted by order and mapped to their token forms with no
// separators; adjacency is exactly as authored by FixedText components.
//
// Known lossy behavior: a DateStamp with a custom format always serializes
// as {YYYY}{MM}{DD} regardless of the configured pattern. The custom
// pattern only survives through the structured JSON form.
func Serialize(components []types.Component) string {
	sorted := append([]types.Component(nil), components...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ComponentOrder() < sorted[j].ComponentOrder()
	})

	var b strings.Builder
	for _, c := range sorted {
		switch v := c.(type) {
		case types.AutoCounter:
			if v.Digits > 0 {
				b.WriteString("{SEQ:")
				b.WriteString(strconv.Itoa(v.Digits))
				b.WriteString("}")
			} else {
				b.WriteString("{SEQ}")
			}
		case types.DateStamp:
			if v.FormatType == types.FormatCustom {
				b.WriteString("{YYYY}{MM}{DD}")
			} else {
				b.WriteString(presetTokens(v.PresetFormat))
			}
		case types.FixedText:
			b.WriteString(v.Text)
		case types.FormFieldRef:
			b.WriteString("{FIELD:")
			b.WriteString(v.FieldName)
			b.WriteString("}")
		}
	}
	return b.String()
}
