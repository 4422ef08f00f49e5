package allowlist

// FetchInput contains parameters for fetching the allow-list
type FetchInput struct{}

// FetchOutput contains the fetched credentials, exactly as published.
// Normalization is the caller's concern.
type FetchOutput struct {
	Credentials []string
}
