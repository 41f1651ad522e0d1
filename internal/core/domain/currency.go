package domain

import "strings"

// CurrencySet is the set of currency codes the engine accepts. The domain
// deliberately keeps currency as an open string code; which codes are allowed
// is configuration, not structure.
type CurrencySet map[string]struct{}

// NewCurrencySet builds a CurrencySet from a list of codes, normalizing to
// uppercase and skipping blanks.
func NewCurrencySet(codes []string) CurrencySet {
	set := make(CurrencySet, len(codes))
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		set[code] = struct{}{}
	}
	return set
}

// Contains reports whether the given code is a supported currency.
func (s CurrencySet) Contains(code string) bool {
	_, ok := s[strings.ToUpper(code)]
	return ok
}

// Codes returns the supported codes in no particular order.
func (s CurrencySet) Codes() []string {
	out := make([]string, 0, len(s))
	for code := range s {
		out = append(out, code)
	}
	return out
}
