package ruledsl

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/solatis/codemint/internal/types"
)

func TestParse_EmptyExpression(t *testing.T) {
	components := Parse("")
	if len(components) != 1 {
		t.Fatalf("Parse(\"\") returned %d components, want 1", len(components))
	}
	counter, ok := components[0].(types.AutoCounter)
	if !ok {
		t.Fatalf("Parse(\"\")[0] = %T, want AutoCounter", components[0])
	}
	want := types.DefaultAutoCounter(0)
	if !reflect.DeepEqual(counter, want) {
		t.Errorf("counter = %+v, want default %+v", counter, want)
	}
}

func TestParse_FieldAndSeq(t *testing.T) {
	components := Parse("{FIELD:a}-{SEQ:3}")
	if len(components) != 3 {
		t.Fatalf("got %d components, want 3", len(components))
	}

	field, ok := components[0].(types.FormFieldRef)
	if !ok || field.FieldName != "a" {
		t.Errorf("components[0] = %+v, want FormFieldRef{a}", components[0])
	}
	text, ok := components[1].(types.FixedText)
	if !ok || text.Text != "-" {
		t.Errorf("components[1] = %+v, want FixedText{-}", components[1])
	}
	counter, ok := components[2].(types.AutoCounter)
	if !ok {
		t.Fatalf("components[2] = %T, want AutoCounter", components[2])
	}
	if counter.Digits != 3 || !counter.FixedWidth {
		t.Errorf("counter = %+v, want digits=3 fixed width", counter)
	}

	for i, c := range components {
		if c.ComponentOrder() != i {
			t.Errorf("components[%d].Order = %d, want %d", i, c.ComponentOrder(), i)
		}
	}
}

func TestParse_SeqWithoutDigits(t *testing.T) {
	components := Parse("{SEQ}")
	counter, ok := components[0].(types.AutoCounter)
	if !ok {
		t.Fatalf("components[0] = %T, want AutoCounter", components[0])
	}
	if counter.Digits != 0 || counter.FixedWidth {
		t.Errorf("counter = %+v, want variable width with zero digits", counter)
	}
}

func TestParse_DatePresets(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		wantPreset types.DatePreset
	}{
		{"full date", "{YYYY}{MM}{DD}", types.PresetYYYYMMDD},
		{"year month", "{YYYY}{MM}", types.PresetYYYYMM},
		{"year only", "{YYYY}", types.PresetYYYY},
		{"short full date", "{YY}{MM}{DD}", types.PresetYYMMDD},
		{"short year month", "{YY}{MM}", types.PresetYYMM},
		{"short year", "{YY}", types.PresetYY},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			components := Parse(tt.expression)
			var date types.DateStamp
			found := false
			for _, c := range components {
				if d, ok := c.(types.DateStamp); ok {
					date = d
					found = true
				}
			}
			if !found {
				t.Fatalf("Parse(%q) produced no DateStamp", tt.expression)
			}
			if date.FormatType != types.FormatPreset || date.PresetFormat != tt.wantPreset {
				t.Errorf("date = %+v, want preset %s", date, tt.wantPreset)
			}
		})
	}
}

// The longest preset found anywhere wins, even when a shorter date run
// appears earlier in the expression.
func TestParse_DatePriorityOverPosition(t *testing.T) {
	components := Parse("{YY}A{YYYY}{MM}{DD}")

	dates := 0
	var date types.DateStamp
	var texts []string
	for _, c := range components {
		switch v := c.(type) {
		case types.DateStamp:
			dates++
			date = v
		case types.FixedText:
			texts = append(texts, v.Text)
		}
	}
	if dates != 1 {
		t.Fatalf("got %d DateStamp components, want 1", dates)
	}
	if date.PresetFormat != types.PresetYYYYMMDD {
		t.Errorf("preset = %s, want YYYYMMDD", date.PresetFormat)
	}
	// The losing {YY} run degrades to fixed text verbatim.
	if len(texts) != 1 || texts[0] != "{YY}A" {
		t.Errorf("fixed texts = %q, want [\"{YY}A\"]", texts)
	}
}

func TestParse_SecondSeqDegradesToFixedText(t *testing.T) {
	components := Parse("{SEQ:3}{SEQ:4}")

	counters := 0
	var texts []string
	for _, c := range components {
		switch v := c.(type) {
		case types.AutoCounter:
			counters++
			if v.Digits != 3 {
				t.Errorf("counter digits = %d, want 3 (first token wins)", v.Digits)
			}
		case types.FixedText:
			texts = append(texts, v.Text)
		}
	}
	if counters != 1 {
		t.Errorf("got %d counters, want 1", counters)
	}
	if len(texts) != 1 || texts[0] != "{SEQ:4}" {
		t.Errorf("fixed texts = %q, want [\"{SEQ:4}\"]", texts)
	}
}

func TestParse_UnrecognizedTokensAreFixedText(t *testing.T) {
	components := Parse("{DICT:dept}X")
	if len(components) != 2 {
		t.Fatalf("got %d components, want 2", len(components))
	}
	text, ok := components[0].(types.FixedText)
	if !ok || text.Text != "{DICT:dept}X" {
		t.Errorf("components[0] = %+v, want FixedText{{DICT:dept}X}", components[0])
	}
	if _, ok := components[1].(types.AutoCounter); !ok {
		t.Errorf("components[1] = %T, want appended default AutoCounter", components[1])
	}
}

func TestParse_EndToEndScenario(t *testing.T) {
	components := Parse("{YYYY}{MM}-{FIELD:dept}-{SEQ:4}")
	if len(components) != 5 {
		t.Fatalf("got %d components, want 5", len(components))
	}

	if d, ok := components[0].(types.DateStamp); !ok || d.PresetFormat != types.PresetYYYYMM {
		t.Errorf("components[0] = %+v, want DateStamp YYYYMM", components[0])
	}
	if x, ok := components[1].(types.FixedText); !ok || x.Text != "-" {
		t.Errorf("components[1] = %+v, want FixedText{-}", components[1])
	}
	if f, ok := components[2].(types.FormFieldRef); !ok || f.FieldName != "dept" {
		t.Errorf("components[2] = %+v, want FormFieldRef{dept}", components[2])
	}
	if x, ok := components[3].(types.FixedText); !ok || x.Text != "-" {
		t.Errorf("components[3] = %+v, want FixedText{-}", components[3])
	}
	if c, ok := components[4].(types.AutoCounter); !ok || c.Digits != 4 {
		t.Errorf("components[4] = %+v, want AutoCounter digits=4", components[4])
	}
}

// Property-based test: every parse result has exactly one counter.
func TestParse_PropertyExactlyOneCounter(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("parse always yields exactly one AutoCounter", prop.ForAll(
		func(expression string) bool {
			counters := 0
			for _, c := range Parse(expression) {
				if _, ok := c.(types.AutoCounter); ok {
					counters++
				}
			}
			return counters == 1
		},
		genExpression(),
	))

	properties.TestingRun(t)
}

// Property-based test: orders are always dense 0..N-1.
func TestParse_PropertyDenseOrder(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("parse output is densely ordered", prop.ForAll(
		func(expression string) bool {
			for i, c := range Parse(expression) {
				if c.ComponentOrder() != i {
					return false
				}
			}
			return true
		},
		genExpression(),
	))

	properties.TestingRun(t)
}

// genExpression builds arbitrary expressions from token fragments and
// literal noise, including malformed brace fragments.
func genExpression() gopter.Gen {
	fragment := gen.OneConstOf(
		"{SEQ}", "{SEQ:4}", "{SEQ:12}",
		"{YYYY}{MM}{DD}", "{YYYY}{MM}", "{YYYY}", "{YY}{MM}{DD}", "{YY}{MM}", "{YY}",
		"{FIELD:dept}", "{FIELD:line}", "{DICT:x}", "{FIELD:}",
		"-", "_", "A", "ORD", "{", "}", "{SEQ", "",
	)
	return gen.SliceOf(fragment).Map(func(parts []string) string {
		out := ""
		for _, p := range parts {
			out += p
		}
		return out
	})
}
