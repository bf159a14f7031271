package schema

import "strings"

// ToSnakeCase converts a PascalCase or camelCase identifier to snake_case,
// the convention table and column names are expected to be declared in.
func ToSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}

// ToPascalCase converts a snake_case identifier to PascalCase, used when a
// table name needs to become a generated struct or migration symbol name.
func ToPascalCase(s string) string {
	words := strings.Split(s, "_")
	var result strings.Builder
	for _, word := range words {
		if len(word) == 0 {
			continue
		}
		result.WriteString(strings.ToUpper(word[:1]))
		if len(word) > 1 {
			result.WriteString(strings.ToLower(word[1:]))
		}
	}
	return result.String()
}

// PluralToTable derives a conventional table name from a singular model
// name: PascalCase or camelCase to snake_case, pluralized by a simple
// trailing "s" (or "es" after s/x/z/ch/sh, "ies" replacing a trailing "y"
// after a consonant) — the same small heuristic set migration generators in
// this codebase's tradition apply rather than pulling in a full inflection
// library for a handful of suffix rules.
func PluralToTable(model string) string {
	snake := ToSnakeCase(model)
	switch {
	case strings.HasSuffix(snake, "y") && len(snake) > 1 && !isVowel(snake[len(snake)-2]):
		return snake[:len(snake)-1] + "ies"
	case strings.HasSuffix(snake, "s"), strings.HasSuffix(snake, "x"), strings.HasSuffix(snake, "z"),
		strings.HasSuffix(snake, "ch"), strings.HasSuffix(snake, "sh"):
		return snake + "es"
	default:
		return snake + "s"
	}
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	default:
		return false
	}
}
