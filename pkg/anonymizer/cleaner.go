package anonymizer

import (
	"context"
	"fmt"

	"github.com/codeready-toolchain/anonymizer/pkg/assistant"
	"github.com/codeready-toolchain/anonymizer/pkg/config"
)

// CleanSensitiveInfo replaces sensitive values with look-alikes.
var CleanSensitiveInfo = assistant.Definition{
	Name:        config.AssistantCleanSensitiveInfo,
	Description: "You are a security expert designed to clean sensitive information in HTTP requests.",
	Instructions: []string{
		"You will be provided with a request and you need to replace the values of headers and cookies",
		"Each header or cookie contains sensitive information and should be replaced with an anonymized value of similar length and format.",
		"Each header contains a name and a value. Replace only the value.",
		"Each cookie contains a name and a value. Replace only the value.",
		"Make sure the anonymized value is the same length and format as the original value.",
	},
}

// Cleaner asks the clean assistant for replacement values.
type Cleaner struct {
	assistant *assistant.Assistant
}

// NewCleaner wraps an assistant built from CleanSensitiveInfo.
func NewCleaner(a *assistant.Assistant) *Cleaner {
	return &Cleaner{assistant: a}
}

// Clean returns one replacement entry per entry of toClean. The reply must
// name exactly the entries it was given, per list; anything else is a
// schema violation. The call is made even when toClean is empty.
func (c *Cleaner) Clean(ctx context.Context, toClean FilteredRequest, opts assistant.RunOptions) (CleanRequest, error) {
	return assistant.Run(ctx, c.assistant, toClean, cleanOutput(toClean), opts)
}

func cleanOutput(toClean FilteredRequest) assistant.Output[CleanRequest] {
	return assistant.Output[CleanRequest]{
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"headers": entryListSchema("Anonymized headers.", toClean.Headers),
				"cookies": entryListSchema("Anonymized cookies.", toClean.Cookies),
			},
			"required":             []string{"headers", "cookies"},
			"additionalProperties": false,
		},
		Decode: func(raw []byte) (CleanRequest, error) {
			return decodeCleanRequest(raw, toClean)
		},
	}
}

func entryListSchema(description string, entries []Entry) map[string]any {
	name := map[string]any{"type": "string"}
	if names := uniqueNames(entries); len(names) > 0 {
		name["enum"] = names
	}
	return map[string]any{
		"type":        "array",
		"description": description,
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  name,
				"value": map[string]any{"type": "string"},
			},
			"required":             []string{"name", "value"},
			"additionalProperties": false,
		},
	}
}

func uniqueNames(entries []Entry) []string {
	seen := make(map[string]struct{}, len(entries))
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.Name]; ok {
			continue
		}
		seen[e.Name] = struct{}{}
		names = append(names, e.Name)
	}
	return names
}

// decodeCleanRequest checks what the schema cannot: each list must hold
// exactly the entries that were sent, as a multiset of names.
func decodeCleanRequest(raw []byte, toClean FilteredRequest) (CleanRequest, error) {
	reply, err := assistant.DecodeJSON[CleanRequest](raw)
	if err != nil {
		return CleanRequest{}, err
	}
	if err := matchNames("header", reply.Headers, toClean.Headers); err != nil {
		return CleanRequest{}, err
	}
	if err := matchNames("cookie", reply.Cookies, toClean.Cookies); err != nil {
		return CleanRequest{}, err
	}
	return CleanRequest{Headers: nonNil(reply.Headers), Cookies: nonNil(reply.Cookies)}, nil
}

// matchNames checks that got names the same multiset of entries as want.
func matchNames(kind string, got, want []Entry) error {
	if len(got) != len(want) {
		return fmt.Errorf("expected %d %ss, got %d", len(want), kind, len(got))
	}
	remaining := make(map[string]int, len(want))
	for _, e := range want {
		remaining[e.Name]++
	}
	for _, e := range got {
		if remaining[e.Name] == 0 {
			return fmt.Errorf("unexpected %s %q", kind, e.Name)
		}
		remaining[e.Name]--
	}
	return nil
}
