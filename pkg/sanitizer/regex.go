package sanitizer

import "regexp"

// Pre-compiled regular expressions for performance
var (
	// Whitespace normalization
	whitespaceRegex = regexp.MustCompile(`\s+`)

	// Any opening or closing tag; group 1 is the tag name
	htmlTagRegex = regexp.MustCompile(`</?([a-zA-Z][a-zA-Z0-9]*)[^<>]*>`)

	// HTML comments, including unterminated ones at the end of input
	htmlCommentRegex = regexp.MustCompile(`(?s)<!--.*?(-->|$)`)
)
