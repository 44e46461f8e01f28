// internal/types/components.go
package types

import (
	"encoding/json"
	"fmt"
	"sort"
)

/*
 * Component model for code rules.
 *
 * A code rule is an ordered list of typed components that are concatenated
 * to produce a business code (order number, batch number, serial number).
 * Four variants exist: AutoCounter, DateStamp, FixedText, FormFieldRef.
 *
 * The union is a sealed interface with flat struct variants; all algorithms
 * dispatch by type switch, never by virtual methods on the variants. Wire
 * format is JSON with a "type" discriminator, matching what the rule store
 * persists and what rule editors submit.
 *
 * Invariants:
 *   - Order values define rendering sequence; Normalize renumbers to a
 *     dense 0..N-1 sequence after any reorder or delete.
 *   - Exactly one AutoCounter per generatable rule. Parse and Preview heal
 *     a missing counter by inserting DefaultAutoCounter rather than failing.
 */

// ComponentType discriminates the Component union.
type ComponentType string

const (
	TypeAutoCounter ComponentType = "auto_counter"
	TypeDate        ComponentType = "date"
	TypeFixedText   ComponentType = "fixed_text"
	TypeFormField   ComponentType = "form_field"
)

// ResetCycle is the period after which a scoped counter restarts.
type ResetCycle string

const (
	ResetNever   ResetCycle = "never"
	ResetDaily   ResetCycle = "daily"
	ResetMonthly ResetCycle = "monthly"
	ResetYearly  ResetCycle = "yearly"
)

// DateFormatType selects between preset and custom date layouts.
type DateFormatType string

const (
	FormatPreset DateFormatType = "preset"
	FormatCustom DateFormatType = "custom"
)

// DatePreset is one of the fixed date layouts a DateStamp can render.
type DatePreset string

const (
	PresetYYYYMMDD DatePreset = "YYYYMMDD"
	PresetYYYYMM   DatePreset = "YYYYMM"
	PresetYYYY     DatePreset = "YYYY"
	PresetYYMMDD   DatePreset = "YYMMDD"
	PresetYYMM     DatePreset = "YYMM"
	PresetYY       DatePreset = "YY"
)

// Component is one typed, ordered building block of a generated code.
// Sealed: only the four variants in this package implement it.
type Component interface {
	ComponentType() ComponentType
	ComponentOrder() int

	sealedComponent()
}

// AutoCounter is the incrementing sequence component. Exactly one must
// exist in a generatable rule; it is the only component permitted to be
// absent from a flat expression (it is reconstructed when missing).
type AutoCounter struct {
	Order        int        `json:"order"`
	Digits       int        `json:"digits"`
	FixedWidth   bool       `json:"fixed_width"`
	ResetCycle   ResetCycle `json:"reset_cycle"`
	InitialValue int64      `json:"initial_value"`
	ScopeFields  []string   `json:"scope_fields,omitempty"`
}

func (c AutoCounter) ComponentType() ComponentType { return TypeAutoCounter }
func (c AutoCounter) ComponentOrder() int          { return c.Order }
func (c AutoCounter) sealedComponent()             {}

// DateStamp renders the generation date. At most one per rule.
type DateStamp struct {
	Order        int            `json:"order"`
	FormatType   DateFormatType `json:"format_type"`
	PresetFormat DatePreset     `json:"preset_format,omitempty"`
	CustomFormat string         `json:"custom_format,omitempty"`
}

func (c DateStamp) ComponentType() ComponentType { return TypeDate }
func (c DateStamp) ComponentOrder() int          { return c.Order }
func (c DateStamp) sealedComponent()             {}

// FixedText emits its text verbatim. Repeatable, order-significant.
type FixedText struct {
	Order int    `json:"order"`
	Text  string `json:"text"`
}

func (c FixedText) ComponentType() ComponentType { return TypeFixedText }
func (c FixedText) ComponentOrder() int          { return c.Order }
func (c FixedText) sealedComponent()             {}

// FormFieldRef substitutes a form field value at generation time.
type FormFieldRef struct {
	Order     int    `json:"order"`
	FieldName string `json:"field_name"`
}

func (c FormFieldRef) ComponentType() ComponentType { return TypeFormField }
func (c FormFieldRef) ComponentOrder() int          { return c.Order }
func (c FormFieldRef) sealedComponent()             {}

// ComponentInfo carries per-type display metadata for rule editors.
type ComponentInfo struct {
	Label       string
	Description string
	Required    bool // cannot be deleted from a rule
	Repeatable  bool // may appear more than once
}

// ComponentDisplayInfo maps each component type to its display metadata.
// AutoCounter is required and unique; DateStamp is unique; text and field
// components repeat freely.
var ComponentDisplayInfo = map[ComponentType]ComponentInfo{
	TypeAutoCounter: {
		Label:       "Auto counter",
		Description: "Incrementing sequence number, optionally zero-padded",
		Required:    true,
		Repeatable:  false,
	},
	TypeDate: {
		Label:       "Date",
		Description: "Generation date in a preset or custom layout",
		Required:    false,
		Repeatable:  false,
	},
	TypeFixedText: {
		Label:       "Fixed text",
		Description: "Literal text emitted as-is",
		Required:    false,
		Repeatable:  true,
	},
	TypeFormField: {
		Label:       "Form field",
		Description: "Value of a form field at generation time",
		Required:    false,
		Repeatable:  true,
	},
}

// Counter digits limits when fixed width is requested.
const (
	MinCounterDigits = 2
	MaxCounterDigits = 12
)

// DefaultAutoCounter returns the counter inserted when a rule has none:
// 5 digits, zero-padded, never resets, counts from 1.
func DefaultAutoCounter(order int) AutoCounter {
	return AutoCounter{
		Order:        order,
		Digits:       5,
		FixedWidth:   true,
		ResetCycle:   ResetNever,
		InitialValue: 1,
	}
}

// DefaultDateStamp returns a preset YYYYMMDD date component.
func DefaultDateStamp(order int) DateStamp {
	return DateStamp{Order: order, FormatType: FormatPreset, PresetFormat: PresetYYYYMMDD}
}

// DefaultFixedText returns an empty fixed text component.
func DefaultFixedText(order int) FixedText {
	return FixedText{Order: order}
}

// DefaultFormFieldRef returns a field reference with no field selected.
func DefaultFormFieldRef(order int) FormFieldRef {
	return FormFieldRef{Order: order}
}

// Normalize sorts components by order and renumbers them to a dense
// 0..N-1 sequence. Stable: equal orders keep their relative position.
// The input slice is not modified.
func Normalize(components []Component) []Component {
	out := append([]Component(nil), components...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ComponentOrder() < out[j].ComponentOrder()
	})
	for i := range out {
		out[i] = WithOrder(out[i], i)
	}
	return out
}

// WithOrder returns a copy of the component with its order replaced.
func WithOrder(c Component, order int) Component {
	switch v := c.(type) {
	case AutoCounter:
		v.Order = order
		return v
	case DateStamp:
		v.Order = order
		return v
	case FixedText:
		v.Order = order
		return v
	case FormFieldRef:
		v.Order = order
		return v
	default:
		return c
	}
}

// FindAutoCounter returns the first AutoCounter in the list.
func FindAutoCounter(components []Component) (AutoCounter, bool) {
	for _, c := range components {
		if counter, ok := c.(AutoCounter); ok {
			return counter, true
		}
	}
	return AutoCounter{}, false
}

// ValidateComponents checks a user-authored component list: exactly one
// counter, counter digits within range when padding is requested, at most
// one date component, no empty fixed text, no unnamed field references.
// Parse output always passes; this guards lists edited by hand.
func ValidateComponents(components []Component) error {
	counters := 0
	dates := 0
	for _, c := range components {
		switch v := c.(type) {
		case AutoCounter:
			counters++
			if v.FixedWidth && (v.Digits < MinCounterDigits || v.Digits > MaxCounterDigits) {
				return fmt.Errorf("%w: %d", ErrDigitsOutOfRange, v.Digits)
			}
			if v.InitialValue < 0 {
				return fmt.Errorf("%w: %d", ErrNegativeInitialValue, v.InitialValue)
			}
		case DateStamp:
			dates++
		case FixedText:
			if v.Text == "" {
				return ErrEmptyFixedText
			}
		case FormFieldRef:
			if v.FieldName == "" {
				return ErrEmptyFieldName
			}
		}
	}
	if counters == 0 {
		return ErrMissingCounter
	}
	if counters > 1 {
		return ErrDuplicateCounter
	}
	if dates > 1 {
		return ErrDuplicateDate
	}
	return nil
}

// ComponentList is a JSON-codable component slice. The wire form is an
// array of objects, each carrying a "type" discriminator alongside the
// variant's fields.
type ComponentList []Component

// MarshalJSON implements json.Marshaler with the "type" discriminator.
func (l ComponentList) MarshalJSON() ([]byte, error) {
	raw := make([]json.RawMessage, len(l))
	for i, c := range l {
		b, err := marshalComponent(c)
		if err != nil {
			return nil, err
		}
		raw[i] = b
	}
	return json.Marshal(raw)
}

// UnmarshalJSON implements json.Unmarshaler, dispatching on "type".
func (l *ComponentList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make([]Component, 0, len(raw))
	for _, r := range raw {
		c, err := unmarshalComponent(r)
		if err != nil {
			return err
		}
		out = append(out, c)
	}
	*l = out
	return nil
}

func marshalComponent(c Component) ([]byte, error) {
	switch v := c.(type) {
	case AutoCounter:
		return json.Marshal(struct {
			Type ComponentType `json:"type"`
			AutoCounter
		}{TypeAutoCounter, v})
	case DateStamp:
		return json.Marshal(struct {
			Type ComponentType `json:"type"`
			DateStamp
		}{TypeDate, v})
	case FixedText:
		return json.Marshal(struct {
			Type ComponentType `json:"type"`
			FixedText
		}{TypeFixedText, v})
	case FormFieldRef:
		return json.Marshal(struct {
			Type ComponentType `json:"type"`
			FormFieldRef
		}{TypeFormField, v})
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownComponentType, c)
	}
}

func unmarshalComponent(data json.RawMessage) (Component, error) {
	var tag struct {
		Type ComponentType `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, err
	}
	switch tag.Type {
	case TypeAutoCounter:
		var v AutoCounter
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return v, nil
	case TypeDate:
		var v DateStamp
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return v, nil
	case TypeFixedText:
		var v FixedText
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return v, nil
	case TypeFormField:
		var v FormFieldRef
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponentType, tag.Type)
	}
}
