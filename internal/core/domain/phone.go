package domain

import "strings"

// PhoneRules define how raw phone input is normalized to an
// international MSISDN. Defaults elsewhere match Kenyan numbering
// (trunk prefix 0, country code 254).
type PhoneRules struct {
	CountryCode string
	TrunkPrefix string
}

// NormalizePhone strips whitespace and rewrites the number into
// international form:
//   - a leading trunk prefix is replaced by the country code exactly once
//   - a number already starting with the country code is left alone
//   - anything else gets the country code prepended
//
// The function is total and idempotent over already-normalized input.
func NormalizePhone(raw string, rules PhoneRules) string {
	p := strings.Join(strings.Fields(raw), "")

	switch {
	case rules.TrunkPrefix != "" && strings.HasPrefix(p, rules.TrunkPrefix):
		return rules.CountryCode + p[len(rules.TrunkPrefix):]
	case strings.HasPrefix(p, rules.CountryCode):
		return p
	default:
		return rules.CountryCode + p
	}
}
