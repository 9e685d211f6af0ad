package parse

import (
	_ "embed"
	"regexp"
	"strings"

	"github.com/dhamidi/hammer/address"
)

// The word lists ship with the package; loading anything at runtime would
// make Parser construction fallible for reasons no caller can fix.

//go:embed st_suffices.txt
var stSufficesRaw string

//go:embed us_states.txt
var usStatesRaw string

//go:embed unit_types.txt
var unitTypesRaw string

var (
	// StSuffices are the recognized street suffixes (ST, AVE, BLVD, ...).
	StSuffices = strings.Fields(strings.ToUpper(stSufficesRaw))

	// UsStates are the recognized US state codes and single-word names.
	UsStates = strings.Fields(strings.ToUpper(usStatesRaw))

	// UnitTypes are the recognized secondary-unit designators (APT, STE, ...).
	UnitTypes = strings.Fields(strings.ToUpper(unitTypesRaw))

	// StNESWs are the directionals, which never come from a file.
	StNESWs = []string{"NE", "NW", "SE", "SW", "N", "S", "E", "W"}
)

func mustOr(words []string) *regexp.Regexp {
	pat, err := address.OrPattern(words)
	if err != nil {
		panic("parse: bad embedded word list: " + err.Error())
	}
	return regexp.MustCompile(pat)
}

var (
	stSuffixR = mustOr(StSuffices)
	stNESWR   = mustOr(StNESWs)
	usStateR  = mustOr(UsStates)
	unitR     = mustOr(UnitTypes)

	// A unit identifier: "#7", "105", "12A", "B", "C3".
	unitIdentifierR = regexp.MustCompile(`^#?(\d+[A-Z]?|[A-Z]\d*)$`)

	zipCodeR     = regexp.MustCompile(`^\d{5}$`)
	houseNumberR = regexp.MustCompile(`^[\d/]+$`) // 123, 1/2
	wordR        = regexp.MustCompile(`^\w+$`)
	numeralR     = regexp.MustCompile(`^\d+$`)
)
