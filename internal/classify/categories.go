// Package classify assigns spending categories to free-text expense
// descriptions. A fixed keyword table is consulted first; a zero-shot
// classification service is the fallback for text no keyword matches.
package classify

import "strings"

// FallbackLabel is assigned when the zero-shot service returns an empty
// label list.
const FallbackLabel = "Wants"

// Category pairs a category name with its trigger keywords.
type Category struct {
	Name     string
	Keywords []string
}

// Categories is the fixed category table. Declaration order matters:
// classification iterates in this order and the first keyword match
// wins, which keeps results reproducible for ambiguous text.
var Categories = []Category{
	{"Food", []string{"food", "breakfast", "lunch", "dinner", "snacks", "meal", "restaurant"}},
	{"Petrol", []string{"petrol", "fuel", "gas", "diesel"}},
	{"Rent", []string{"rent", "pg", "apartment"}},
	{"Electricity", []string{"eb", "elec", "electricity", "bill", "ebill", "elec bill"}},
	{"Outing", []string{"outing", "trip", "hangout", "friends"}},
	{"Movies", []string{"movie", "cinema", "theater", "film"}},
	{"Bike Service", []string{"service", "bike service", "repair", "maintenance"}},
	{"Savings", []string{"save", "savings"}},
	{"SIP", []string{"sip", "mutual fund", "mf"}},
	{"Stocks", []string{"stocks", "share", "equity", "investment"}},
	{"Shopping", []string{"shopping", "dress", "shirt", "pants", "shoes", "slippers", "clothes", "jacket", "apparel", "bag", "accessory", "tshirt", "sneakers", "sandals", "jeans", "skirt", "hat", "watch"}},
}

// Labels returns the candidate label set handed to the zero-shot
// fallback.
func Labels() []string {
	labels := make([]string, len(Categories))
	for i, c := range Categories {
		labels[i] = c.Name
	}
	return labels
}

// IsKnownCategory reports whether name is a category the system can
// produce, including the fallback label.
func IsKnownCategory(name string) bool {
	if name == FallbackLabel {
		return true
	}
	for _, c := range Categories {
		if c.Name == name {
			return true
		}
	}
	return false
}

// matchKeyword returns the first category whose keyword list contains
// a substring of the lower-cased text.
func matchKeyword(text string) (string, bool) {
	lowered := strings.ToLower(text)
	for _, c := range Categories {
		for _, kw := range c.Keywords {
			if strings.Contains(lowered, kw) {
				return c.Name, true
			}
		}
	}
	return "", false
}

// QueryCategories returns every category whose keywords match the text,
// in table order, along with the lower-cased text. List/filter queries
// use this instead of single-label classification.
func QueryCategories(text string) ([]string, string) {
	lowered := strings.ToLower(text)
	var found []string
	for _, c := range Categories {
		for _, kw := range c.Keywords {
			if strings.Contains(lowered, kw) {
				found = append(found, c.Name)
				break
			}
		}
	}
	return found, lowered
}
