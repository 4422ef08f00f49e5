package redemption

import "github.com/x5labs/giftwheel/internal/models"

// ContainsInput contains parameters for checking ledger membership
type ContainsInput struct {
	// Credential is the normalized credential to look up
	Credential string
}

// ContainsOutput contains the result of a membership check
type ContainsOutput struct {
	// Redeemed is true iff a record exists for the credential
	Redeemed bool
}

// RecordInput contains parameters for inserting a redemption record
type RecordInput struct {
	Record *models.RedemptionRecord
}

// ListAllInput contains parameters for listing all records
type ListAllInput struct{}

// ListAllOutput contains a snapshot of all redemption records
type ListAllOutput struct {
	Records []*models.RedemptionRecord
}

// ClearInput contains parameters for erasing the ledger
type ClearInput struct{}
