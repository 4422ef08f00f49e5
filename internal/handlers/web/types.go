package web

// validateRequest is the body of a credential validation call
type validateRequest struct {
	Password string `json:"password" binding:"required"`
}

// sessionResponse identifies a freshly started session
type sessionResponse struct {
	SessionID string `json:"session_id"`
}

// prizeResponse is the reveal payload for a spin result
type prizeResponse struct {
	Kind  string `json:"kind"`
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`
	URI   string `json:"uri,omitempty"`
}

// spinResponse carries everything the widget needs to animate the wheel
type spinResponse struct {
	ChosenIndex           int           `json:"chosen_index"`
	TargetRotationDegrees float64       `json:"target_rotation_degrees"`
	SpinSeconds           float64       `json:"spin_seconds"`
	Label                 string        `json:"label"`
	Prize                 prizeResponse `json:"prize"`
}

// completeResponse reports the committed redemption
type completeResponse struct {
	Redeemed        bool `json:"redeemed"`
	StorageDegraded bool `json:"storage_degraded,omitempty"`
}

// wheelSegmentResponse is display-only: no weights leave the service
type wheelSegmentResponse struct {
	Label    string `json:"label"`
	ImageURI string `json:"image_uri,omitempty"`
}

// wheelResponse describes the wheel for rendering
type wheelResponse struct {
	Segments    []wheelSegmentResponse `json:"segments"`
	SpinSeconds float64                `json:"spin_seconds"`
}

// redemptionResponse is one history entry
type redemptionResponse struct {
	Credential       string `json:"credential"`
	RedeemedAtMillis int64  `json:"redeemed_at_ms"`
}

// errorResponse is the uniform error body
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
