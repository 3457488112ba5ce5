package orchestration

import (
	"regexp"
)

// placeholderPattern matches {placeholder} tokens. Only word characters are
// accepted between the braces so JSON snippets inside a template survive
// rendering untouched.
var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// RenderTemplate substitutes {token} occurrences with the matching value.
// Tokens with no value are left as literal text: an unmatched placeholder
// must never raise or render blank.
func RenderTemplate(template string, values map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(token string) string {
		name := token[1 : len(token)-1]
		if value, ok := values[name]; ok {
			return value
		}
		return token
	})
}
