package anonymizer

import (
	"context"

	"github.com/codeready-toolchain/anonymizer/pkg/assistant"
	"github.com/codeready-toolchain/anonymizer/pkg/config"
)

// SniffSensitiveInfo flags the headers and cookies that carry secrets.
var SniffSensitiveInfo = assistant.Definition{
	Name:        config.AssistantSniffSensitiveInfo,
	Description: "You are a security expert designed to detect sensitive information in HTTP requests.",
	Instructions: []string{
		"You will be provided with a request and you need to identify the headers and cookies that contain sensitive information.",
		"Each header or cookie that contains sensitive information should be returned so it can be anonymized.",
		"Each header contains a name and a value. The name is the name of the header and the value is the value of the header.",
		"Each cookie contains a name and a value. The name is the name of the cookie and the value is the value of the cookie.",
		"If the header or cookie contains sensitive information like passwords, tokens, or other secrets, then it should be returned.",
		"Make sure to return the headers in the headers list and the cookies in the cookies list.",
	},
}

// Detector asks the sniff assistant which filtered entries are sensitive.
type Detector struct {
	assistant *assistant.Assistant
}

// NewDetector wraps an assistant built from SniffSensitiveInfo.
func NewDetector(a *assistant.Assistant) *Detector {
	return &Detector{assistant: a}
}

// Detect returns the names of sensitive entries. Names are not checked
// against the filtered set here; ResolveSensitive drops unknown ones.
func (d *Detector) Detect(ctx context.Context, filtered FilteredRequest, opts assistant.RunOptions) (SensitiveFieldNames, error) {
	return assistant.Run(ctx, d.assistant, filtered, sensitiveNamesOutput, opts)
}

var sensitiveNamesOutput = assistant.MustCompile(config.AssistantSniffSensitiveInfo, assistant.Output[SensitiveFieldNames]{
	Schema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"headers": map[string]any{
				"type":        "array",
				"description": "Names of the headers that contain sensitive information.",
				"items":       map[string]any{"type": "string"},
			},
			"cookies": map[string]any{
				"type":        "array",
				"description": "Names of the cookies that contain sensitive information.",
				"items":       map[string]any{"type": "string"},
			},
		},
		"required":             []string{"headers", "cookies"},
		"additionalProperties": false,
	},
	Decode: assistant.DecodeJSON[SensitiveFieldNames],
})
