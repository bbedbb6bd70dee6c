package config

import (
	"bytes"
	"os"
	"strings"
	"text/template"
)

// ExpandEnv expands {{.VAR_NAME}} references in YAML content with values
// from the process environment.
//
// Template syntax leaves literal $ characters alone, which matters for API
// keys and base URLs pasted verbatim:
//
//	api_key_env: OPENAI_API_KEY
//	base_url: {{.LLM_GATEWAY_URL}}/v1
//
// Missing variables expand to the empty string. Content that is not a valid
// template is returned unchanged.
func ExpandEnv(data []byte) []byte {
	tmpl, err := template.New("config").Option("missingkey=zero").Parse(string(data))
	if err != nil {
		return data
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, environMap()); err != nil {
		return data
	}
	return buf.Bytes()
}

func environMap() map[string]string {
	env := os.Environ()
	m := make(map[string]string, len(env))
	for _, kv := range env {
		// values may themselves contain '='
		if key, value, ok := strings.Cut(kv, "="); ok && key != "" {
			m[key] = value
		}
	}
	return m
}
