// Package parse implements a backtracking grammar for free-form US postal
// address strings, built on the zipper combinator engine.
//
// The grammar runs as an ordered pipeline: house number, directional, street
// name, street suffix, directional, secondary unit, city, state, zip code.
// The greedy stages (street name, city) are bounded by stop guards rather
// than by the shape of their own tokens, which is how the parser decides
// where a street name ends and a city begins. When that boundary is
// genuinely ambiguous the parser needs the city in its known-city set; see
// SmartBatch for recovering such cities from the rest of a batch.
package parse

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dhamidi/hammer/address"
	"github.com/dhamidi/hammer/zipper"
)

// Parser parses one address string at a time. It is immutable after
// construction and safe for concurrent use; recognizing a different
// known-city set requires constructing a new Parser, because city knowledge
// is compiled into the street-name and city matchers.
//
// Parser does not correct typos or infer missing suffixes or directionals.
// If the address's city is not in the known-city set, the street name and
// the city must be separated by some identifier (a st_suffix, st_NESW or
// unit), or the parse fails.
type Parser struct {
	knownCities []string

	// citySubR rewrites each known multi-word city to its underscore form
	// so it survives tokenization as one token. Nil without known cities.
	citySubR *regexp.Regexp

	cityRule   zipper.Rule[string, ParseStep]
	stNameRule zipper.Rule[string, ParseStep]

	// blank is a city-naive parser tried first on every input, so that
	// addresses with a clear street/city boundary never depend on city
	// knowledge. Nil when this parser is itself city-naive.
	blank *Parser
}

// NewParser constructs a parser recognizing the given city names verbatim.
// An empty or nil list is valid and yields a city-naive parser. A city list
// that compiles into an invalid pattern is a ParserConfigError.
func NewParser(knownCities []string) (*Parser, error) {
	cities := make([]string, 0, len(knownCities))
	for _, city := range knownCities {
		if norm := normalize(city); norm != "" {
			cities = append(cities, norm)
		}
	}

	p := &Parser{knownCities: cities}

	var cityPattern *regexp.Regexp
	var cityStopR *regexp.Regexp
	stops := []*regexp.Regexp{stSuffixR, stNESWR, unitR}

	if len(cities) == 0 {
		cityPattern = wordR
	} else {
		blank, err := NewParser(nil)
		if err != nil {
			return nil, err
		}
		p.blank = blank

		alts := make([]string, len(cities))
		for i, city := range cities {
			alts[i] = strings.ReplaceAll(regexp.QuoteMeta(city), " ", `[\s_]`)
		}
		body := strings.Join(alts, "|")

		p.citySubR, err = regexp.Compile(`\b(?:` + body + `)\b`)
		if err != nil {
			return nil, &ParserConfigError{Msg: fmt.Sprintf("known cities compile into an invalid pattern: %v", err)}
		}
		cityStopR, err = regexp.Compile(`^(?:` + body + `)$`)
		if err != nil {
			return nil, &ParserConfigError{Msg: fmt.Sprintf("known cities compile into an invalid pattern: %v", err)}
		}
		cityPattern, err = regexp.Compile(`^(?:` + body + `|\w+)$`)
		if err != nil {
			return nil, &ParserConfigError{Msg: fmt.Sprintf("known cities compile into an invalid pattern: %v", err)}
		}
		stops = append(stops, cityStopR)
	}

	cityComponent := Component{
		Label:   address.FieldCity,
		Pattern: cityPattern,
		StopsOn: stopsOnAny(usStateR, numeralR),
	}
	inner := cityComponent.Rule()
	p.cityRule = func(s string) ([]ParseStep, error) {
		steps, err := inner(s)
		if err != nil {
			return nil, err
		}
		for i := range steps {
			steps[i].Value = strings.ReplaceAll(steps[i].Value, "_", " ")
		}
		return steps, nil
	}

	p.stNameRule = Component{
		Label:   address.FieldStName,
		Pattern: wordR,
		StopsOn: stopsOnAny(stops...),
	}.Rule()

	return p, nil
}

// KnownCities returns the normalized city names this parser recognizes.
func (p *Parser) KnownCities() []string {
	return p.knownCities
}

// normalize prepares text for tokenization: uppercase, punctuation and
// whitespace cleanup, and the '#' to APT substitution. It is idempotent.
func normalize(s string) string {
	s = strings.ReplaceAll(s, ",", " ")
	s = address.NormalizeWhitespace(address.RemovePunc(strings.ToUpper(s)))
	s = strings.ReplaceAll(s, "#", "APT ")
	for strings.Contains(s, "APT APT") {
		s = strings.ReplaceAll(s, "APT APT", "APT")
	}
	return address.NormalizeWhitespace(s)
}

// tokenize normalizes s and rewrites known multi-word cities to their
// underscore form so each tokenizes as a single unit.
func (p *Parser) tokenize(s string) string {
	s = normalize(s)
	if p.citySubR != nil {
		s = p.citySubR.ReplaceAllStringFunc(s, func(m string) string {
			return strings.ReplaceAll(m, " ", "_")
		})
	}
	return s
}

// Option configures a single parse call.
type Option func(*parseConfig)

type parseConfig struct {
	checked bool
}

// Unchecked disables the required-field check, returning whatever fields the
// pipeline recognized even when house number, street name, city or state are
// missing.
func Unchecked() Option {
	return func(c *parseConfig) {
		c.checked = false
	}
}

var passthrough zipper.Op[string, ParseStep] = func(z zipper.Zipper[string, ParseStep]) (zipper.Zipper[string, ParseStep], error) {
	return z, nil
}

// streetOps is the leading half of the pipeline: house number, directional,
// street name, suffix, directional.
func (p *Parser) streetOps() []zipper.Op[string, ParseStep] {
	catch := zipper.Catching(IsParseError)
	return []zipper.Op[string, ParseStep]{
		zipper.ConsumeWith(houseNumber.Rule(), catch),
		zipper.ConsumeWith(stNESW.Rule(), catch),
		zipper.TakeWhile(p.stNameRule, catch),
		zipper.TakeWhile(stSuffix.Rule(), catch),
		zipper.ConsumeWith(stNESW.Rule(), catch),
	}
}

// Parse parses one free-form address string. By default the parse is
// checked: house number, street name, city and state must all have been
// identified. Failures are ParseError, EndOfAddressError, or an error from
// collection; the zero RawAddress accompanies any error.
func (p *Parser) Parse(s string, opts ...Option) (address.RawAddress, error) {
	cfg := parseConfig{checked: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	// An unambiguous address should never depend on city knowledge, so the
	// city-naive grammar gets the first attempt.
	if p.blank != nil {
		if a, err := p.blank.Parse(s, opts...); err == nil {
			return a, nil
		}
	}

	tokens := strings.Fields(p.tokenize(s))
	return p.run(s, tokens, cfg.checked)
}

// ParseRow parses pre-separated row cells with the same grammar. A cell may
// hold several tokens; the unit scan covers every cell. Row data is assumed
// structurally pre-separated, so the required-field check never applies.
func (p *Parser) ParseRow(row []string) (address.RawAddress, error) {
	var tokens []string
	for _, cell := range row {
		tokens = append(tokens, strings.Fields(p.tokenize(cell))...)
	}
	return p.run(strings.Join(row, "\t"), tokens, false)
}

// run executes the grammar pipeline over the token sequence.
func (p *Parser) run(orig string, tokens []string, checked bool) (address.RawAddress, error) {
	catch := zipper.Catching(IsParseError)

	// The unit and zip stages only join the pipeline when the input shows
	// evidence for them: a unit designator token anywhere, a trailing
	// five-digit token.
	unitOp := passthrough
	for _, tok := range tokens {
		if _, ok := address.Match(tok, unitR); ok {
			unitOp = zipper.ConsumeN(2, zipper.BlockRule[string, ParseStep](chompUnit), catch)
			break
		}
	}
	zipOp := passthrough
	if len(tokens) > 0 {
		if _, ok := address.Match(tokens[len(tokens)-1], zipCodeR); ok {
			zipOp = zipper.ConsumeWith(zipCode.Rule(), catch)
		}
	}

	ops := append(p.streetOps(),
		unitOp,
		zipper.TakeWhile(p.cityRule),
		zipper.ConsumeWith(usState.Rule()),
		zipOp,
	)

	z, err := zipper.Reduce(ops...)(zipper.New[string, ParseStep](zipper.NewInput(tokens)))
	if err != nil {
		if errors.Is(err, zipper.ErrEndOfInput) {
			return address.RawAddress{}, &EndOfAddressError{Orig: orig, Err: err}
		}
		var pe *ParseError
		if errors.As(err, &pe) {
			return address.RawAddress{}, &ParseError{Orig: orig, Reason: pe.Reason}
		}
		return address.RawAddress{}, err
	}

	return collect(orig, z.Results(), checked)
}

// collect sorts parse steps into per-field buckets, enforces required-field
// presence for checked parses, and joins multi-token fields with single
// spaces.
func collect(orig string, steps []ParseStep, checked bool) (address.RawAddress, error) {
	buckets := make(map[string][]string, len(address.Fields))
	for _, label := range address.Fields {
		buckets[label] = nil
	}
	for _, step := range steps {
		if step.Label == LabelJunk {
			continue
		}
		if _, ok := buckets[step.Label]; !ok {
			return address.RawAddress{}, fmt.Errorf("parse step with unknown label %q", step.Label)
		}
		buckets[step.Label] = append(buckets[step.Label], step.Value)
	}

	if checked {
		for _, req := range address.HardComponents {
			if len(buckets[req]) == 0 {
				return address.RawAddress{}, &ParseError{Orig: orig, Reason: "could not identify " + req}
			}
		}
	}

	fields := make(map[string]string, len(buckets))
	for label, values := range buckets {
		joined := strings.Join(values, " ")
		if label == address.FieldUnit {
			joined = strings.TrimSpace(strings.ReplaceAll(joined, "#", ""))
		}
		fields[label] = joined
	}
	return address.FromFields(fields, orig)
}
