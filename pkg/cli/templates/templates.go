// Package templates normalizes long help text and examples for CLI commands.
package templates

import (
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/mitchellh/go-wordwrap"
)

const defaultWrap = 80

// LongDesc normalizes a command's long description: strips the heredoc
// indentation and wraps paragraphs at a fixed width.
func LongDesc(s string) string {
	if s == "" {
		return s
	}
	return wrapParagraphs(heredoc.Doc(strings.TrimSpace(s)))
}

// Examples normalizes example blocks: heredoc-trim plus a uniform two-space
// indent so examples line up under cobra's "Examples:" heading.
func Examples(s string) string {
	if s == "" {
		return s
	}
	trimmed := heredoc.Doc(strings.TrimSpace(s))
	lines := strings.Split(trimmed, "\n")
	for i, line := range lines {
		lines[i] = "  " + strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

func wrapParagraphs(s string) string {
	paragraphs := strings.Split(s, "\n\n")
	for i, p := range paragraphs {
		flat := strings.Join(strings.Fields(p), " ")
		paragraphs[i] = wordwrap.WrapString(flat, defaultWrap)
	}
	return strings.Join(paragraphs, "\n\n")
}
