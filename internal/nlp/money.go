// Package nlp contains the pure text-parsing helpers behind the
// conversational endpoints: money amounts and relative date ranges.
// Everything in this package is a function of its inputs plus the
// caller-supplied clock; no I/O happens here.
package nlp

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrNotNumeric is returned by ParseMoney when, after normalization,
// the input is not a plain number.
var ErrNotNumeric = errors.New("not a numeric amount")

var (
	firstNumberRe = regexp.MustCompile(`\d+(\.\d+)?`)
	moneyTokenRe  = regexp.MustCompile(`(?i)\d+(\.\d+)?\s*k?`)
)

// ParseMoney converts flexible money inputs like "25k", "25,000" or
// "7.5k" into a numeric value. The whole input must be a quantity;
// use ExtractFirstAmount for free-form prose.
func ParseMoney(text string) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")

	multiplier := 1.0
	if strings.HasSuffix(s, "k") {
		multiplier = 1000
		s = strings.TrimSuffix(s, "k")
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrNotNumeric
	}
	return value * multiplier, nil
}

// ExtractFirstAmount returns the first number (integer or decimal)
// found in free text, ignoring thousands-separator commas. It returns
// 0 when the text contains no digits; callers treat that as "no amount
// stated", not as an error.
//
//	"550rs lunch"  -> 550
//	"100.5 dinner" -> 100.5
func ExtractFirstAmount(text string) float64 {
	clean := strings.ReplaceAll(strings.ToLower(text), ",", "")
	match := firstNumberRe.FindString(clean)
	if match == "" {
		return 0
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return value
}

// ExtractRequestedAmount finds the first money token in a budget query,
// honoring a trailing k suffix ("can I spend 1.5k more?" -> 1500).
// Returns 0 when the query names no amount.
func ExtractRequestedAmount(text string) float64 {
	clean := strings.ReplaceAll(text, ",", "")
	match := moneyTokenRe.FindString(clean)
	if match == "" {
		return 0
	}
	value, err := ParseMoney(match)
	if err != nil {
		return 0
	}
	return value
}
