package anonymizer

// ResolveSensitive maps the detector's names back to filtered entries and
// returns the subset to clean, in detector order.
//
// Names absent from the filtered set are skipped without error. When the
// request carries the same name twice, the first occurrence wins.
func ResolveSensitive(names SensitiveFieldNames, filtered FilteredRequest) FilteredRequest {
	return FilteredRequest{
		Headers: resolveNames(names.Headers, filtered.Headers),
		Cookies: resolveNames(names.Cookies, filtered.Cookies),
	}
}

func resolveNames(names []string, entries []Entry) []Entry {
	index := indexByName(entries)
	resolved := make([]Entry, 0, len(names))
	for _, name := range names {
		if e, ok := index[name]; ok {
			resolved = append(resolved, e)
		}
	}
	return resolved
}

func indexByName(entries []Entry) map[string]Entry {
	index := make(map[string]Entry, len(entries))
	for _, e := range entries {
		if _, seen := index[e.Name]; !seen {
			index[e.Name] = e
		}
	}
	return index
}
