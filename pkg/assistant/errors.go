package assistant

import (
	"fmt"
	"unicode/utf8"
)

// rawExcerptLen bounds how much of the offending reply is kept in the error
// message. The full reply stays in Raw.
const rawExcerptLen = 200

// SchemaViolationError is returned when the model reply does not conform to
// the assistant's declared output shape.
type SchemaViolationError struct {
	Assistant string
	Reason    string
	Raw       string
}

func (e *SchemaViolationError) Error() string {
	excerpt := e.Raw
	if len(excerpt) > rawExcerptLen {
		cut := rawExcerptLen
		for cut > 0 && !utf8.RuneStart(excerpt[cut]) {
			cut--
		}
		excerpt = excerpt[:cut] + "..."
	}
	return fmt.Sprintf("assistant %s: schema violation: %s (reply: %q)", e.Assistant, e.Reason, excerpt)
}
