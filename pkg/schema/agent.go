package schema

import (
	"github.com/dmitrymomot/inputguard/pkg/field"
	"github.com/dmitrymomot/inputguard/pkg/validator"
)

const (
	SecureAgentPromptName  = "secure_agent_prompt"
	FieldPrompt            = "prompt"
	FieldSystemContext     = "system_context"
	MaxPromptLength        = 10000
	MaxSystemContextLength = 2000
)

// SecureAgentPrompt is the schema for text sent to an LLM: a required prompt
// of 1 to 10000 runes and an optional system_context of up to 2000, both
// SafeText. Validator options tune the prompt-injection scan.
func SecureAgentPrompt(opts ...validator.Option) *Schema {
	return MustNew(SecureAgentPromptName,
		Required(FieldPrompt, field.SafeText(1, MaxPromptLength, opts...)),
		Optional(FieldSystemContext, field.SafeText(0, MaxSystemContextLength, opts...)),
	)
}

// AgentPrompt is the typed form of a SecureAgentPrompt instance.
type AgentPrompt struct {
	Prompt        string
	SystemContext string
	// HasSystemContext distinguishes an absent system_context from an empty one.
	HasSystemContext bool
}

// AgentPromptFrom reads an instance produced by SecureAgentPrompt.
func AgentPromptFrom(inst *Instance) AgentPrompt {
	return AgentPrompt{
		Prompt:           inst.String(FieldPrompt),
		SystemContext:    inst.String(FieldSystemContext),
		HasSystemContext: inst.Has(FieldSystemContext),
	}
}

// ParseAgentPrompt validates payload against SecureAgentPrompt. Findings are
// returned even when err is non-nil; err is a validator.FieldErrors.
func ParseAgentPrompt(payload map[string]any, opts ...validator.Option) (AgentPrompt, []field.Finding, error) {
	out := SecureAgentPrompt(opts...).Validate(payload)
	if !out.Valid() {
		return AgentPrompt{}, out.Warnings, out.Errors
	}
	return AgentPromptFrom(out.Instance), out.Warnings, nil
}
