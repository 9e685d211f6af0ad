package parse

import (
	"regexp"
	"strings"

	"github.com/dhamidi/hammer/address"
	"github.com/dhamidi/hammer/zipper"
)

// ParseStep is one recognized unit of output: a value tagged with the
// grammar field it belongs to.
type ParseStep struct {
	Label string
	Value string
}

// LabelJunk marks a step whose token was consumed but whose value is
// discarded during collection.
const LabelJunk = "junk"

// Component is a single labeled token matcher of the address grammar.
//
// StopsOn is a lookahead guard: when it accepts the token, the component
// declines to match even though its pattern might. This is what keeps a
// greedy component like st_name from swallowing tokens that belong to the
// suffix, directional, unit or city grammar.
type Component struct {
	Pattern  *regexp.Regexp
	Label    string
	Optional bool
	StopsOn  func(string) bool
}

// Rule compiles the component into the token rule shape the engine consumes.
// A stopped or optionally-missed token yields no results; a required miss is
// a ParseError naming the component.
func (c Component) Rule() zipper.Rule[string, ParseStep] {
	return func(s string) ([]ParseStep, error) {
		if c.StopsOn != nil && c.StopsOn(s) {
			return nil, nil
		}
		m, ok := address.Match(s, c.Pattern)
		if !ok {
			if c.Optional {
				return nil, nil
			}
			return nil, &ParseError{Orig: s, Reason: c.Label}
		}
		return []ParseStep{{Label: c.Label, Value: m}}, nil
	}
}

// stopsOnAny builds a stop guard accepting tokens that fully match any of
// the given patterns.
func stopsOnAny(patterns ...*regexp.Regexp) func(string) bool {
	return func(s string) bool {
		for _, pat := range patterns {
			if _, ok := address.Match(s, pat); ok {
				return true
			}
		}
		return false
	}
}

// The fixed grammar atoms. City and street name are built per Parser, since
// both depend on the known-city set.
var (
	houseNumber = Component{Label: address.FieldHouseNumber, Pattern: houseNumberR}
	stNESW      = Component{Label: address.FieldStNESW, Pattern: stNESWR}
	stSuffix    = Component{Label: address.FieldStSuffix, Pattern: stSuffixR}
	usState     = Component{Label: address.FieldUsState, Pattern: usStateR}
	zipCode     = Component{Label: address.FieldZipCode, Pattern: zipCodeR}
)

// chompUnit recognizes a two-token secondary unit: a unit designator (a bare
// "#" counts as APT) followed by a unit identifier. A miss is a ParseError so
// the engine's ignorable-failure path consumes nothing; a unit is never
// required.
func chompUnit(words []string) ([]ParseStep, error) {
	if len(words) != 2 {
		return nil, &ParseError{Orig: strings.Join(words, " "), Reason: address.FieldUnit}
	}
	unitType := words[0]
	if unitType == "#" {
		unitType = "APT"
	} else if _, ok := address.Match(unitType, unitR); !ok {
		return nil, &ParseError{Orig: strings.Join(words, " "), Reason: address.FieldUnit}
	}
	identifier, ok := address.Match(words[1], unitIdentifierR)
	if !ok {
		return nil, &ParseError{Orig: strings.Join(words, " "), Reason: address.FieldUnit}
	}
	return []ParseStep{{Label: address.FieldUnit, Value: unitType + " " + identifier}}, nil
}
