// Package address holds the structured US postal address value produced by
// the parser, together with the text-normalization helpers the grammar is
// built on.
package address

import (
	"fmt"
	"strings"
)

// Field labels, in grammar order.
const (
	FieldHouseNumber = "house_number"
	FieldStName      = "st_name"
	FieldStSuffix    = "st_suffix"
	FieldStNESW      = "st_NESW"
	FieldUnit        = "unit"
	FieldCity        = "city"
	FieldUsState     = "us_state"
	FieldZipCode     = "zip_code"
)

// HardComponents are the fields a checked parse must produce.
var HardComponents = []string{FieldHouseNumber, FieldStName, FieldCity, FieldUsState}

// SoftComponents may legitimately be absent from an address.
var SoftComponents = []string{FieldStSuffix, FieldStNESW, FieldUnit, FieldZipCode}

// Fields lists every field label in grammar order.
var Fields = []string{
	FieldHouseNumber, FieldStName, FieldStSuffix, FieldStNESW,
	FieldUnit, FieldCity, FieldUsState, FieldZipCode,
}

// RawAddress is an address as the parser recognized it: uppercase tokens,
// no validation or normalization applied beyond tokenization. Soft fields
// hold the empty string when absent. Orig preserves the input text the
// address was parsed from.
type RawAddress struct {
	HouseNumber string `json:"house_number"`
	StName      string `json:"st_name"`
	StSuffix    string `json:"st_suffix,omitempty"`
	StNESW      string `json:"st_NESW,omitempty"`
	Unit        string `json:"unit,omitempty"`
	City        string `json:"city"`
	UsState     string `json:"us_state"`
	ZipCode     string `json:"zip_code,omitempty"`
	Orig        string `json:"orig"`
}

// FromFields builds a RawAddress from a field-label to value mapping.
// Unknown labels are rejected.
func FromFields(fields map[string]string, orig string) (RawAddress, error) {
	a := RawAddress{Orig: orig}
	for label, value := range fields {
		switch label {
		case FieldHouseNumber:
			a.HouseNumber = value
		case FieldStName:
			a.StName = value
		case FieldStSuffix:
			a.StSuffix = value
		case FieldStNESW:
			a.StNESW = value
		case FieldUnit:
			a.Unit = value
		case FieldCity:
			a.City = value
		case FieldUsState:
			a.UsState = value
		case FieldZipCode:
			a.ZipCode = value
		default:
			return RawAddress{}, fmt.Errorf("unknown address field %q", label)
		}
	}
	return a, nil
}

// Field returns the value stored under a field label, mirroring FromFields.
func (a RawAddress) Field(label string) (string, bool) {
	switch label {
	case FieldHouseNumber:
		return a.HouseNumber, true
	case FieldStName:
		return a.StName, true
	case FieldStSuffix:
		return a.StSuffix, true
	case FieldStNESW:
		return a.StNESW, true
	case FieldUnit:
		return a.Unit, true
	case FieldCity:
		return a.City, true
	case FieldUsState:
		return a.UsState, true
	case FieldZipCode:
		return a.ZipCode, true
	}
	return "", false
}

// String renders the address on one line, titleized, with absent soft
// fields skipped.
func (a RawAddress) String() string {
	parts := make([]string, 0, len(Fields))
	for _, label := range Fields {
		value, _ := a.Field(label)
		if value == "" {
			continue
		}
		switch label {
		case FieldHouseNumber, FieldStNESW, FieldUsState, FieldZipCode, FieldUnit:
			parts = append(parts, value)
		default:
			parts = append(parts, Titleize(value))
		}
	}
	return strings.Join(parts, " ")
}
