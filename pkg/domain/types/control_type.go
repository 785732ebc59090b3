package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// ControlType represents the kind of a control measure
type ControlType string

const (
	ControlTypePreventive ControlType = "Prv"
	ControlTypeMitigation ControlType = "RM"
	ControlTypeCorrective ControlType = "Crr"
)

var controlTypeNames = map[ControlType]string{
	ControlTypePreventive: "Preventif",
	ControlTypeMitigation: "Mitigasi Risiko",
	ControlTypeCorrective: "Korektif",
}

// AllControlTypes returns all control types in display order
func AllControlTypes() []ControlType {
	return []ControlType{ControlTypePreventive, ControlTypeMitigation, ControlTypeCorrective}
}

// Validate checks if the ControlType is one of the fixed kinds
func (t ControlType) Validate() error {
	if _, ok := controlTypeNames[t]; !ok {
		return goerr.New("invalid control type", goerr.V("type", t))
	}
	return nil
}

// Name returns the human-readable name of the control type
func (t ControlType) Name() string {
	if name, ok := controlTypeNames[t]; ok {
		return name
	}
	return string(t)
}

// String returns the string representation of ControlType
func (t ControlType) String() string {
	return string(t)
}

// CoerceControlType maps an untrusted value to a valid ControlType.
// Unrecognized values fall back to preventive, which keeps AI-originated
// suggestions writable instead of rejecting them.
func CoerceControlType(v string) ControlType {
	t := ControlType(v)
	if _, ok := controlTypeNames[t]; ok {
		return t
	}
	return ControlTypePreventive
}
