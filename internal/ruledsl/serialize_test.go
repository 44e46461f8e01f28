package ruledsl

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/solatis/codemint/internal/types"
)

func TestSerialize_RoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		expression string
	}{
		{"field then counter", "{FIELD:a}-{SEQ:3}"},
		{"canonical order form", "{FIELD:dept}{YYYY}{MM}{DD}{SEQ:5}-TAG"},
		{"date and field", "{YYYY}{MM}-{FIELD:dept}-{SEQ:4}"},
		{"variable width counter", "ORD{SEQ}"},
		{"short date", "{YY}{MM}{SEQ:6}"},
		{"counter only", "{SEQ:2}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Serialize(Parse(tt.expression))
			if got != tt.expression {
				t.Errorf("Serialize(Parse(%q)) = %q", tt.expression, got)
			}
		})
	}
}

// An expression with no SEQ token is not round-trip stable: the healed
// default counter serializes at the end.
func TestSerialize_HealedCounterAppends(t *testing.T) {
	got := Serialize(Parse("{FIELD:dept}"))
	if got != "{FIELD:dept}{SEQ:5}" {
		t.Errorf("got %q, want {FIELD:dept}{SEQ:5}", got)
	}
}

func TestSerialize_CustomDateIsLossy(t *testing.T) {
	components := []types.Component{
		types.DateStamp{FormatType: types.FormatCustom, CustomFormat: "YYYY-WW"},
		types.AutoCounter{Order: 1, Digits: 4, FixedWidth: true, InitialValue: 1},
	}
	got := Serialize(components)
	if got != "{YYYY}{MM}{DD}{SEQ:4}" {
		t.Errorf("got %q, want {YYYY}{MM}{DD}{SEQ:4}", got)
	}
}

func TestSerialize_SortsByOrder(t *testing.T) {
	components := []types.Component{
		types.AutoCounter{Order: 2, Digits: 3, FixedWidth: true, InitialValue: 1},
		types.FixedText{Order: 1, Text: "-"},
		types.FormFieldRef{Order: 0, FieldName: "dept"},
	}
	got := Serialize(components)
	if got != "{FIELD:dept}-{SEQ:3}" {
		t.Errorf("got %q, want {FIELD:dept}-{SEQ:3}", got)
	}
}

// Property-based test: one parse/serialize pass reaches a fixed point,
// so serialize(parse(x)) is idempotent under further round trips.
func TestSerialize_PropertyRoundTripIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("serialize∘parse is idempotent", prop.ForAll(
		func(expression string) bool {
			once := Serialize(Parse(expression))
			twice := Serialize(Parse(once))
			return once == twice
		},
		genExpression(),
	))

	properties.TestingRun(t)
}
