package pantry

import (
	"regexp"
	"strconv"
	"strings"
)

// numberPattern is an unsigned decimal: digits, optionally a point and more
// digits. Signs, fractions and exponents are not part of it.
var numberPattern = regexp.MustCompile(`\d+(\.\d+)?`)

// ParseQuantity returns the first number in a free-text quantity such as
// "2 lbs" or "10.5 oz". It reports false when the text holds no number.
func ParseQuantity(s string) (float64, bool) {
	m := numberPattern.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// replaceQuantity swaps the first number in s for v and keeps everything
// around it. Text without a number is returned as is.
func replaceQuantity(s string, v float64) string {
	loc := numberPattern.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + FormatQuantity(v) + s[loc[1]:]
}

// FormatQuantity renders v in its shortest decimal form: 3 rather than 3.0.
func FormatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Matches reports whether a pantry item name appears in an ingredient line,
// ignoring case. "Onion" matches "3 Green Onions".
func Matches(itemName, ingredientLine string) bool {
	return strings.Contains(strings.ToLower(ingredientLine), strings.ToLower(itemName))
}
