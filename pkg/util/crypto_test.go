package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSHA256Hex(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "known digest",
			input:    "pw",
			expected: "30c952fab122c3f9759f02a6d95c3758b246b4fee239957b2d4fee46e26170c4",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SHA256Hex(tt.input))
			// Digest never contains the input itself.
			if tt.input != "" {
				assert.NotContains(t, tt.expected, tt.input)
			}
		})
	}
}
