package normalization

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ParseInputString trims and lower-cases free-form identifiers such as
// emails, roles and enum filters.
func ParseInputString(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

func ParseInputStringPtr(input *string) *string {
	if input == nil {
		return nil
	}
	normalized := ParseInputString(*input)
	return &normalized
}

// Email normalises an address for storage and lookup.
func Email(input string) string {
	return ParseInputString(input)
}

// Name trims a display name, collapses inner whitespace runs and composes
// combining marks (NFC) so search matches however the client typed accents.
func Name(input string) string {
	return norm.NFC.String(strings.Join(strings.Fields(input), " "))
}

// List trims every entry and drops the empty ones.
func List(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
