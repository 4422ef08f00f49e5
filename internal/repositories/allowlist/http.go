package allowlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/x5labs/giftwheel/internal/common/clock"
)

// Config holds configuration for the HTTP allow-list repository
type Config struct {
	// URL is where the credential document is published
	URL string

	// HTTPClient is optional; a client with a sane timeout is used when nil
	HTTPClient *http.Client

	// Clock is optional; it stamps the cache-busting query parameter
	Clock clock.Clock
}

// credentialDocument is the published wire format. The field is untrusted:
// anything that is not an array of strings normalizes to an empty list.
type credentialDocument struct {
	ValidPasswords json.RawMessage `json:"validPasswords"`
}

// httpRepository implements the Repository interface over HTTP
type httpRepository struct {
	url    string
	client *http.Client
	clock  clock.Clock
}

// NewHTTP creates a new HTTP-backed allow-list repository
func NewHTTP(cfg *Config) (*httpRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.URL == "" {
		return nil, errors.New("url cannot be empty")
	}

	if _, err := url.Parse(cfg.URL); err != nil {
		return nil, fmt.Errorf("invalid allow-list url: %w", err)
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}

	return &httpRepository{
		url:    cfg.URL,
		client: client,
		clock:  clk,
	}, nil
}

// Fetch retrieves the current credential list. The request carries a
// timestamp query parameter and a no-store header so intermediaries never
// serve a stale list.
func (r *httpRepository) Fetch(ctx context.Context, input *FetchInput) (*FetchOutput, error) {
	fetchURL, err := url.Parse(r.url)
	if err != nil {
		return nil, fmt.Errorf("invalid allow-list url: %w", err)
	}

	query := fetchURL.Query()
	query.Set("ts", strconv.FormatInt(r.clock.Now().UnixMilli(), 10))
	fetchURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build allow-list request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch allow-list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("allow-list fetch returned HTTP %d", resp.StatusCode)
	}

	var doc credentialDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode allow-list document: %w", err)
	}

	// Missing, null, or non-array field degrades to an empty list
	var credentials []string
	if len(doc.ValidPasswords) > 0 {
		if err := json.Unmarshal(doc.ValidPasswords, &credentials); err != nil {
			credentials = nil
		}
	}

	if credentials == nil {
		credentials = []string{}
	}

	return &FetchOutput{
		Credentials: credentials,
	}, nil
}
