package filter

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/google/shlex"

	"querydeck/internal/domain"
)

// ParseExpression reads "key:value" pairs separated by whitespace into
// filter edits. Values containing spaces may be quoted ("owner:\"Data Team\"").
// Keys rejected by accept fail the whole expression. Keys present in current
// but missing from the expression are cleared.
func ParseExpression(expr string, current map[string]string, accept func(key string) bool) ([]FilterSet, error) {
	tokens, err := shlex.Split(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	seen := make(map[string]bool, len(tokens))
	var edits []FilterSet
	for _, token := range tokens {
		key, value, ok := strings.Cut(token, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: expected key:value, got %q", domain.ErrValidation, token)
		}
		if accept != nil && !accept(key) {
			return nil, fmt.Errorf("%w: unknown filter %q", domain.ErrValidation, key)
		}
		seen[key] = true
		edits = append(edits, FilterSet{Key: key, Value: strings.TrimSpace(value)})
	}

	for _, key := range slices.Sorted(maps.Keys(current)) {
		if !seen[key] && current[key] != "" {
			edits = append(edits, FilterSet{Key: key})
		}
	}
	return edits, nil
}

// FormatExpression is the inverse of ParseExpression, with keys in order
func FormatExpression(filters map[string]string) string {
	var parts []string
	for _, key := range slices.Sorted(maps.Keys(filters)) {
		value := filters[key]
		if value == "" {
			continue
		}
		if strings.ContainsAny(value, " \t\"'\\") {
			value = `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(value) + `"`
		}
		parts = append(parts, key+":"+value)
	}
	return strings.Join(parts, " ")
}
