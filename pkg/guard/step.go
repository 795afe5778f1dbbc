package guard

// Step names one stage of the pipeline, in execution order.
type Step string

const (
	StepSize            Step = "size"
	StepContentType     Step = "content_type"
	StepNullByte        Step = "null_byte"
	StepParse           Step = "parse"
	StepScripts         Step = "scripts"
	StepPromptInjection Step = "prompt_injection"
	StepSchema          Step = "schema"
)
