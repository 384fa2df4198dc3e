package threeds

import "strings"

// MatchesCallbackPrefix reports whether rawURL starts with the callback prefix.
// The comparison ignores case and a leading "www." host label on both sides,
// so "https://google.com/x" matches the prefix "https://www.google.com".
// An empty prefix never matches.
func MatchesCallbackPrefix(rawURL, prefix string) bool {
	if prefix == "" || rawURL == "" {
		return false
	}

	return strings.HasPrefix(normalizeCallbackURL(rawURL), normalizeCallbackURL(prefix))
}

// normalizeCallbackURL lowercases the URL and drops a leading "www." from the host.
func normalizeCallbackURL(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))

	scheme, rest, found := strings.Cut(value, "://")
	if !found {
		return strings.TrimPrefix(value, "www.")
	}

	return scheme + "://" + strings.TrimPrefix(rest, "www.")
}
