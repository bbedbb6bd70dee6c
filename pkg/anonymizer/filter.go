package anonymizer

import "unicode/utf8"

// FilterRequest keeps the headers and cookies whose value is shorter than
// threshold characters. Longer values are dropped whole, never truncated,
// and so never reach the model. Order is preserved.
func FilterRequest(req Request, threshold int) FilteredRequest {
	return FilteredRequest{
		Headers: filterEntries(req.Headers, threshold),
		Cookies: filterEntries(req.Cookies, threshold),
	}
}

func filterEntries(entries []Entry, threshold int) []Entry {
	kept := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if utf8.RuneCountInString(e.Value) < threshold {
			kept = append(kept, e)
		}
	}
	return kept
}
