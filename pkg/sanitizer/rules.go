package sanitizer

// Built-in rules usable in declarative field definitions.
var (
	RuleStripNullBytes      = NewRule("strip_null_bytes", StripNullBytes)
	RuleRemoveControl       = NewRule("remove_control", func(s string) string { return RemoveControlCharacters(s, false) })
	RuleRemoveControlKeepNL = NewRule("remove_control_keep_newlines", func(s string) string { return RemoveControlCharacters(s, true) })
	RuleRemoveFormat        = NewRule("remove_format_characters", RemoveFormatCharacters)
	RuleNormalizeUnicode    = NewRule("normalize_unicode", NormalizeUnicode)
	RuleNormalizeWhitespace = NewRule("normalize_whitespace", NormalizeWhitespace)
	RuleEscapeHTML          = NewRule("escape_html", EscapeHTML)
	RuleEscapeSQL           = NewRule("escape_sql", SQL)
	RuleFilename            = NewRule("filename", func(s string) string { return Filename(s, DefaultMaxFilenameLength) })
)

var registry = map[string]Rule{
	RuleStripNullBytes.Name:      RuleStripNullBytes,
	RuleRemoveControl.Name:       RuleRemoveControl,
	RuleRemoveControlKeepNL.Name: RuleRemoveControlKeepNL,
	RuleRemoveFormat.Name:        RuleRemoveFormat,
	RuleNormalizeUnicode.Name:    RuleNormalizeUnicode,
	RuleNormalizeWhitespace.Name: RuleNormalizeWhitespace,
	RuleEscapeHTML.Name:          RuleEscapeHTML,
	RuleEscapeSQL.Name:           RuleEscapeSQL,
	RuleFilename.Name:            RuleFilename,
}

// Lookup returns the built-in rule registered under name.
func Lookup(name string) (Rule, bool) {
	r, ok := registry[name]
	return r, ok
}

// HTMLRule returns a rule stripping every tag except allowedTags.
func HTMLRule(allowedTags ...string) Rule {
	tags := append([]string(nil), allowedTags...)
	return NewRule("html", func(s string) string { return HTML(s, tags...) })
}

// TruncateRule returns a rule limiting input to maxLength runes.
func TruncateRule(maxLength int, suffix string) Rule {
	return NewRule("truncate", func(s string) string { return Truncate(s, maxLength, suffix) })
}

// FilenameRule returns a Filename rule with a custom length limit.
func FilenameRule(maxLength int) Rule {
	return NewRule("filename", func(s string) string { return Filename(s, maxLength) })
}
