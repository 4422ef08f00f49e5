package models

import (
	"errors"
	"fmt"
)

// PrizeKind distinguishes the two payload variants a segment can carry
type PrizeKind string

const (
	// PrizeKindText indicates a prize revealed as a text message
	PrizeKindText PrizeKind = "text"

	// PrizeKindImage indicates a prize revealed as an image
	PrizeKindImage PrizeKind = "image"
)

// PrizePayload is the tagged variant behind a segment. Kind selects the
// variant; Body is meaningful for text prizes, URI for image prizes.
type PrizePayload struct {
	// Kind is the variant tag
	Kind PrizeKind `json:"kind"`

	// Title is an optional display title shown with either variant
	Title string `json:"title,omitempty"`

	// Body is the prize text for text prizes
	Body string `json:"body,omitempty"`

	// URI is the image location for image prizes
	URI string `json:"uri,omitempty"`
}

// Validate checks that the payload is a well-formed variant
func (p *PrizePayload) Validate() error {
	switch p.Kind {
	case PrizeKindText:
		if p.Body == "" {
			return errors.New("text prize requires a body")
		}
	case PrizeKindImage:
		if p.URI == "" {
			return errors.New("image prize requires a uri")
		}
	default:
		return fmt.Errorf("unknown prize kind %q", p.Kind)
	}

	return nil
}

// PrizeSegment is one wedge of the wheel. Segments are configured once at
// startup and never mutated; their order fixes both the angular position on
// the wheel and the index-to-angle mapping.
type PrizeSegment struct {
	// Label is the short text drawn on the wedge
	Label string `json:"label"`

	// Weight is the relative likelihood of this segment being chosen.
	// Negative values are treated as zero by the selector.
	Weight float64 `json:"weight"`

	// Prize is what the segment awards
	Prize PrizePayload `json:"prize"`
}

// Validate checks the segment's label and payload
func (s *PrizeSegment) Validate() error {
	if s.Label == "" {
		return errors.New("segment label cannot be empty")
	}

	return s.Prize.Validate()
}
