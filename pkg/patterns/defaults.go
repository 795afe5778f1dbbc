package patterns

// DefaultVersion labels the built-in table.
const DefaultVersion = "builtin-1"

// DefaultDefinitions returns a fresh copy of the built-in signatures.
func DefaultDefinitions() []Definition {
	out := make([]Definition, 0, len(promptInjection)+len(scriptInjection)+len(pathTraversal)+len(sqlMetachar))
	out = append(out, scriptInjection...)
	out = append(out, promptInjection...)
	out = append(out, pathTraversal...)
	out = append(out, sqlMetachar...)
	return out
}

func def(id string, f Family, k Kind, sev Severity, expr, desc string) Definition {
	return Definition{ID: id, Family: f, Kind: k, Expr: expr, Severity: sev, Description: desc}
}

var promptInjection = []Definition{
	// instruction override
	def("pi-ignore-previous", FamilyPromptInjection, KindRegex, SeverityReject,
		`ignore\s+(all\s+)?(of\s+)?(the\s+|your\s+)?(previous|prior|above|earlier|preceding)\s+(instructions?|prompts?|context|rules|directions)`,
		"asks the model to ignore earlier instructions"),
	def("pi-disregard-previous", FamilyPromptInjection, KindRegex, SeverityReject,
		`disregard\s+(all\s+)?(of\s+)?(the\s+|your\s+)?(previous|prior|above|earlier|preceding)`,
		"asks the model to disregard earlier content"),
	def("pi-forget-instructions", FamilyPromptInjection, KindRegex, SeverityReject,
		`forget\s+(everything|all\s+(of\s+)?(your|the|previous)|your\s+(instructions?|rules|guidelines|training))`,
		"asks the model to forget its instructions"),
	def("pi-new-instructions", FamilyPromptInjection, KindRegex, SeverityReject,
		`\bnew\s+(system\s+)?instructions?\s*:`,
		"injects a replacement instruction block"),
	def("pi-override-rules", FamilyPromptInjection, KindRegex, SeverityReject,
		`(override|bypass|disable)\s+(your\s+|the\s+|all\s+)?(system|safety|content|previous)\s+(prompt|instructions?|rules|filters?|settings|guidelines)`,
		"asks the model to bypass its rules"),

	// role hijack
	def("pi-you-are-now", FamilyPromptInjection, KindRegex, SeverityReject,
		`\byou\s+are\s+now\s+(a|an|the|my|no\s+longer|in\s+developer\s+mode)\b`,
		"reassigns the model's role"),
	def("pi-from-now-on", FamilyPromptInjection, KindRegex, SeverityReject,
		`\bfrom\s+now\s+on,?\s+you\s+(are|will|must|should|shall)\b`,
		"reassigns the model's behaviour for the rest of the session"),
	def("pi-act-as", FamilyPromptInjection, KindRegex, SeverityWarn,
		`\bact\s+as\s+(a|an|the|if|my)\b`,
		"role-play request"),
	def("pi-pretend", FamilyPromptInjection, KindRegex, SeverityWarn,
		`\bpretend\s+(to\s+be|you\s+are|that\s+you)\b`,
		"role-play request"),
	def("pi-jailbreak", FamilyPromptInjection, KindToken, SeverityWarn,
		"jailbreak",
		"mentions jailbreaking"),
	def("pi-do-anything-now", FamilyPromptInjection, KindRegex, SeverityWarn,
		`\bdo\s+anything\s+now\b`,
		"well-known jailbreak persona"),

	// system prompt extraction
	def("pi-reveal-system-prompt", FamilyPromptInjection, KindRegex, SeverityReject,
		`(reveal|show|print|display|output|repeat|leak|dump)\s+(me\s+)?(your|the)\s+(system\s+|initial\s+|original\s+|hidden\s+|secret\s+)?(prompt|instructions)`,
		"asks for the system prompt"),
	def("pi-what-are-your-instructions", FamilyPromptInjection, KindRegex, SeverityWarn,
		`what\s+(are|were)\s+your\s+(original\s+|initial\s+|system\s+|hidden\s+)?(instructions|rules|prompt)`,
		"asks about the system prompt"),

	// chat template delimiters
	def("pi-chatml-token", FamilyPromptInjection, KindRegex, SeverityReject,
		`(<|&lt;)\|(im_start|im_end|system|endoftext|assistant|user)\|(>|&gt;)`,
		"chat template control token"),
	def("pi-inst-tag", FamilyPromptInjection, KindRegex, SeverityReject,
		`\[/?inst\]`,
		"instruction template tag"),
	def("pi-sys-tag", FamilyPromptInjection, KindRegex, SeverityReject,
		`(<|&lt;){2}/?sys(>|&gt;){2}`,
		"system template tag"),
	def("pi-markdown-system-header", FamilyPromptInjection, KindRegex, SeverityWarn,
		`###\s*(system|instructions?)\b`,
		"fake system section header"),
	def("pi-role-prefix", FamilyPromptInjection, KindRegex, SeverityWarn,
		`(^|[\n.!?])\s*(system|assistant)\s*:`,
		"fake conversation turn"),
}

var scriptInjection = []Definition{
	def("si-script-tag", FamilyScriptInjection, KindLiteral, SeverityReject,
		"<script",
		"script element"),
	def("si-event-handler", FamilyScriptInjection, KindRegex, SeverityReject,
		`\bon[a-z]{3,}\s*=`,
		"inline event handler attribute"),
	def("si-javascript-uri", FamilyScriptInjection, KindRegex, SeverityReject,
		`javascript\s*:`,
		"javascript: URI"),
	def("si-iframe-tag", FamilyScriptInjection, KindRegex, SeverityReject,
		`<\s*iframe\b`,
		"iframe element"),
	def("si-object-tag", FamilyScriptInjection, KindRegex, SeverityReject,
		`<\s*object\b`,
		"object element"),
	def("si-embed-tag", FamilyScriptInjection, KindRegex, SeverityReject,
		`<\s*embed\b`,
		"embed element"),
	def("si-vbscript-uri", FamilyScriptInjection, KindRegex, SeverityWarn,
		`vbscript\s*:`,
		"vbscript: URI"),
	def("si-data-html-uri", FamilyScriptInjection, KindRegex, SeverityWarn,
		`data\s*:\s*text/html`,
		"data URI carrying HTML"),
	def("si-css-expression", FamilyScriptInjection, KindRegex, SeverityWarn,
		`expression\s*\(`,
		"legacy CSS expression"),
}

var pathTraversal = []Definition{
	def("pt-dot-segment", FamilyPathTraversal, KindRegex, SeverityReject,
		`(^|[/\\])\.\.([/\\]|$)`,
		"parent directory segment"),
	def("pt-null-byte", FamilyPathTraversal, KindLiteral, SeverityReject,
		"\x00",
		"NUL byte in path"),
	def("pt-system-component", FamilyPathTraversal, KindRegex, SeverityReject,
		`(^|[/\\])(etc|passwd|shadow|proc|system32|boot\.ini|win\.ini)([/\\]|$)`,
		"sensitive system path component"),
	def("pt-home-tilde", FamilyPathTraversal, KindRegex, SeverityWarn,
		`^~[^/\\]*([/\\]|$)`,
		"home directory shorthand"),
}

var sqlMetachar = []Definition{
	def("sql-stacked-query", FamilySQLMetachar, KindRegex, SeverityReject,
		`;\s*(drop|delete|insert|update|alter|create|truncate|exec|execute|grant)\b`,
		"statement terminator followed by a new statement"),
	def("sql-tautology", FamilySQLMetachar, KindRegex, SeverityReject,
		`'\s*or\s+('[^']*'\s*=\s*'|\d+\s*=\s*\d+|true\b)`,
		"always-true OR clause after a closing quote"),
	def("sql-union-select", FamilySQLMetachar, KindRegex, SeverityReject,
		`\bunion\s+(all\s+)?select\b`,
		"UNION SELECT"),
	def("sql-time-delay", FamilySQLMetachar, KindRegex, SeverityReject,
		`\b(sleep|pg_sleep|benchmark)\s*\(|\bwaitfor\s+delay\b`,
		"time-based probe"),
	def("sql-xp-cmdshell", FamilySQLMetachar, KindToken, SeverityReject,
		"xp_cmdshell",
		"command execution procedure"),
	def("sql-line-comment", FamilySQLMetachar, KindLiteral, SeverityWarn,
		"--",
		"line comment"),
	def("sql-block-comment", FamilySQLMetachar, KindLiteral, SeverityWarn,
		"/*",
		"block comment"),
}
