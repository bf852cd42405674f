// Package category defines the closed set of spending categories.
//
// One canonical representation (the capitalized storage/display label) with
// two parse surfaces: lowercase values for URL query parameters and
// free-form model answers, which are folded before matching.
package category

import (
	"fmt"
	"strings"
)

// Category is a spending classification. The zero value is not valid.
type Category string

const (
	Retail    Category = "Retail"
	Groceries Category = "Groceries"
	Utilities Category = "Utilities"
	Travel    Category = "Travel"
)

// All lists every category in declaration order.
func All() []Category {
	return []Category{Retail, Groceries, Utilities, Travel}
}

// String returns the storage/display label, e.g. "Retail".
func (c Category) String() string {
	return string(c)
}

// QueryValue returns the lowercase form used in URL query parameters.
func (c Category) QueryValue() string {
	return strings.ToLower(string(c))
}

// ParseQuery maps a URL query parameter value ("retail", "groceries", ...)
// to its Category. The match is case-insensitive but must be the full label.
func ParseQuery(s string) (Category, error) {
	for _, c := range All() {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}

	return "", fmt.Errorf("unknown category %q", s)
}

// ParseAnswer maps a raw model answer to a Category. The answer is trimmed
// and matched case-insensitively against the label set; anything else is an
// error.
func ParseAnswer(s string) (Category, error) {
	return ParseQuery(strings.TrimSpace(s))
}
