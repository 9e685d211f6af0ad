package parse

import "github.com/dhamidi/hammer/address"

// Reporter receives every batch input that could not be parsed even after
// repair, with the error that rejected it.
type Reporter func(err error, orig string)

// SmartBatch parses a batch of address strings, repairing dirty ones with
// city knowledge harvested from the clean ones.
//
// Pass one parses every input with p, collecting the city of each success.
// Inputs that fail with a parse error are deferred, not dropped. Pass two
// reparses the deferred inputs with a new parser that also knows every
// harvested city: "123 Main, Springfield OH 12123" parses correctly iff
// SPRINGFIELD was the city of some other address in the batch.
//
// Results come back in pass order: every pass-one success, then every
// repaired input. Inputs that still fail go to report, which may be nil to
// discard them. Parse errors never abort the batch; a ParserConfigError or
// any other unexpected error does.
func SmartBatch(p *Parser, addrs []string, report Reporter) ([]address.RawAddress, error) {
	if report == nil {
		report = func(error, string) {}
	}

	parsed := make([]address.RawAddress, 0, len(addrs))
	var deferred []string
	seen := make(map[string]bool)
	var harvested []string

	for _, addr := range addrs {
		a, err := p.Parse(addr)
		if err != nil {
			if isRecoverable(err) {
				deferred = append(deferred, addr)
				continue
			}
			return nil, err
		}
		if !seen[a.City] {
			seen[a.City] = true
			harvested = append(harvested, a.City)
		}
		parsed = append(parsed, a)
	}
	if len(deferred) == 0 {
		return parsed, nil
	}

	enriched, err := NewParser(append(append([]string{}, p.KnownCities()...), harvested...))
	if err != nil {
		return nil, err
	}
	for _, addr := range deferred {
		a, err := enriched.Parse(addr)
		if err != nil {
			if isRecoverable(err) {
				report(err, addr)
				continue
			}
			return nil, err
		}
		parsed = append(parsed, a)
	}
	return parsed, nil
}
