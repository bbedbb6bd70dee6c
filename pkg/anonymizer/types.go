// Package anonymizer replaces sensitive header and cookie values of an HTTP
// request with synthetic ones. Detection and replacement are delegated to
// two assistants; this package filters what they see and stitches their
// answers together.
package anonymizer

// Entry is one header or cookie.
type Entry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Request is the inbound request representation. Other keys of the
// original request object (url, method, body ...) are ignored.
type Request struct {
	Headers []Entry `json:"headers"`
	Cookies []Entry `json:"cookies"`
}

// FilteredRequest holds the entries short enough to be sent to the model.
type FilteredRequest struct {
	Headers []Entry `json:"headers"`
	Cookies []Entry `json:"cookies"`
}

// SensitiveFieldNames lists the names, never the values, the detector
// flagged.
type SensitiveFieldNames struct {
	Headers []string `json:"headers"`
	Cookies []string `json:"cookies"`
}

// CleanRequest holds the replacement values, one entry per flagged entry
// that was resolved.
type CleanRequest struct {
	Headers []Entry `json:"headers"`
	Cookies []Entry `json:"cookies"`
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
