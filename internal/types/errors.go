package types

import "errors"

// Sentinel errors for codemint operations.
var (
	// ErrUnknownComponentType indicates a component with an unrecognized type tag.
	ErrUnknownComponentType = errors.New("unknown component type")

	// ErrMissingCounter indicates a component list without an auto counter.
	ErrMissingCounter = errors.New("rule has no auto counter component")

	// ErrDuplicateCounter indicates more than one auto counter component.
	ErrDuplicateCounter = errors.New("rule has more than one auto counter component")

	// ErrDuplicateDate indicates more than one date component.
	ErrDuplicateDate = errors.New("rule has more than one date component")

	// ErrDigitsOutOfRange indicates counter digits outside 2..12 with fixed width.
	ErrDigitsOutOfRange = errors.New("counter digits out of range")

	// ErrNegativeInitialValue indicates a counter initial value below zero.
	ErrNegativeInitialValue = errors.New("counter initial value is negative")

	// ErrEmptyFixedText indicates a fixed text component with no text.
	ErrEmptyFixedText = errors.New("fixed text component is empty")

	// ErrEmptyFieldName indicates a form field reference with no field name.
	ErrEmptyFieldName = errors.New("form field component has no field name")

	// ErrRuleNotFound indicates no rule exists for the requested code.
	ErrRuleNotFound = errors.New("rule not found")

	// ErrRuleInactive indicates the rule exists but is disabled.
	ErrRuleInactive = errors.New("rule is not active")

	// ErrRuleIsSystem indicates an attempt to overwrite a system rule.
	ErrRuleIsSystem = errors.New("system rules cannot be modified")
)
