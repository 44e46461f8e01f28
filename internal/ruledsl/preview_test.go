package ruledsl

import (
	"errors"
	"testing"
	"time"

	"github.com/solatis/codemint/internal/types"
)

var frozenNow = time.Date(2025, time.March, 7, 14, 30, 0, 0, time.UTC)

func TestPreviewAt_DateFormats(t *testing.T) {
	tests := []struct {
		preset types.DatePreset
		want   string
	}{
		{types.PresetYYYYMMDD, "20250307"},
		{types.PresetYYYYMM, "202503"},
		{types.PresetYYYY, "2025"},
		{types.PresetYYMMDD, "250307"},
		{types.PresetYYMM, "2503"},
		{types.PresetYY, "25"},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			components := []types.Component{
				types.DateStamp{FormatType: types.FormatPreset, PresetFormat: tt.preset},
				types.AutoCounter{Order: 1, Digits: 3, FixedWidth: true, InitialValue: 1},
			}
			got := PreviewAt(components, nil, frozenNow)
			if got != tt.want+"001" {
				t.Errorf("got %q, want %q", got, tt.want+"001")
			}
		})
	}
}

func TestPreviewAt_CounterPadding(t *testing.T) {
	tests := []struct {
		name    string
		counter types.AutoCounter
		want    string
	}{
		{"fixed width pads", types.AutoCounter{Digits: 5, FixedWidth: true, InitialValue: 7}, "00007"},
		{"variable width", types.AutoCounter{Digits: 5, FixedWidth: false, InitialValue: 7}, "7"},
		{"wider than digits", types.AutoCounter{Digits: 3, FixedWidth: true, InitialValue: 12345}, "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PreviewAt([]types.Component{tt.counter}, nil, frozenNow)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPreviewAt_FieldPlaceholder(t *testing.T) {
	components := []types.Component{
		types.FormFieldRef{FieldName: "dept"},
		types.AutoCounter{Order: 1, Digits: 2, FixedWidth: true, InitialValue: 1},
	}

	if got := PreviewAt(components, nil, frozenNow); got != "[dept]01" {
		t.Errorf("missing value: got %q, want [dept]01", got)
	}
	ctx := map[string]string{"dept": "SALES"}
	if got := PreviewAt(components, ctx, frozenNow); got != "SALES01" {
		t.Errorf("present value: got %q, want SALES01", got)
	}
}

func TestPreviewAt_MissingCounterHealed(t *testing.T) {
	components := []types.Component{types.FixedText{Text: "DOC-"}}
	if got := PreviewAt(components, nil, frozenNow); got != "DOC-00001" {
		t.Errorf("got %q, want DOC-00001", got)
	}
}

func TestPreviewAt_CustomDateFallback(t *testing.T) {
	components := []types.Component{
		types.DateStamp{FormatType: types.FormatCustom, CustomFormat: "YYYY-WW"},
		types.AutoCounter{Order: 1, InitialValue: 9},
	}
	if got := PreviewAt(components, nil, frozenNow); got != "202503079" {
		t.Errorf("got %q, want 202503079", got)
	}
}

func TestPreviewAt_EndToEndScenario(t *testing.T) {
	components := Parse("{YYYY}{MM}-{FIELD:dept}-{SEQ:4}")
	jan := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	got := PreviewAt(components, map[string]string{"dept": "HR"}, jan)
	if got != "202501-HR-0001" {
		t.Errorf("got %q, want 202501-HR-0001", got)
	}
}

func TestPreviewAt_Deterministic(t *testing.T) {
	components := Parse("{FIELD:dept}{YYYY}{MM}{DD}{SEQ:5}-TAG")
	ctx := map[string]string{"dept": "FIN"}
	first := PreviewAt(components, ctx, frozenNow)
	second := PreviewAt(components, ctx, frozenNow)
	if first != second {
		t.Errorf("preview not deterministic: %q vs %q", first, second)
	}
	if first != "FIN2025030700001-TAG" {
		t.Errorf("got %q, want FIN2025030700001-TAG", first)
	}
}

func TestRender_CounterValueError(t *testing.T) {
	wantErr := errors.New("store unavailable")
	components := []types.Component{
		types.AutoCounter{Digits: 4, FixedWidth: true, InitialValue: 1},
	}
	_, err := Render(components, nil, frozenNow, func(types.AutoCounter) (int64, error) {
		return 0, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}

func TestRender_UsesSuppliedCounterValue(t *testing.T) {
	components := Parse("INV-{SEQ:4}")
	got, err := Render(components, nil, frozenNow, func(types.AutoCounter) (int64, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "INV-0042" {
		t.Errorf("got %q, want INV-0042", got)
	}
}
