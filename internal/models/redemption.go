package models

// RedemptionRecord marks one credential as consumed. Records are keyed by
// the normalized credential value; no two records share one.
type RedemptionRecord struct {
	// Credential is the normalized credential that was redeemed
	Credential string `json:"credential"`

	// RedeemedAtMillis is when the redemption was committed, in epoch
	// milliseconds
	RedeemedAtMillis int64 `json:"redeemed_at_ms"`
}
