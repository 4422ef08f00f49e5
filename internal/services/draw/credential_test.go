package draw

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCredential(t *testing.T) {
	cases := []struct {
		name            string
		input           string
		caseInsensitive bool
		expected        string
	}{
		{"plain", "a1", false, "a1"},
		{"trims whitespace", "  a1\t", false, "a1"},
		{"keeps case by default", "B2", false, "B2"},
		{"folds case when configured", "B2", true, "b2"},
		{"trims and folds together", "  B2 ", true, "b2"},
		{"empty stays empty", "   ", false, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, normalizeCredential(tc.input, tc.caseInsensitive))
		})
	}
}
