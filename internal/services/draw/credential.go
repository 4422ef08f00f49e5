package draw

import "strings"

// normalizeCredential applies the configured normalization policy. It is
// the single place credentials are canonicalized, so comparison and storage
// always agree.
func normalizeCredential(credential string, caseInsensitive bool) string {
	normalized := strings.TrimSpace(credential)
	if caseInsensitive {
		normalized = strings.ToLower(normalized)
	}
	return normalized
}
