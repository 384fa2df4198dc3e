package threeds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMatchesCallbackPrefix tests callback URL classification.
func TestMatchesCallbackPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		url      string
		prefix   string
		expected bool
	}{
		{"exact match", "https://www.google.com", "https://www.google.com", true},
		{"path below prefix", "https://www.google.com/?MD=1", "https://www.google.com", true},
		{"url without www", "https://google.com/", "https://www.google.com", true},
		{"prefix without www", "https://www.merchant.test/3ds", "https://merchant.test/3ds", true},
		{"different case", "HTTPS://WWW.Google.COM/Search", "https://www.google.com", true},
		{"different host", "https://acs.bank.test/", "https://www.google.com", false},
		{"different scheme", "http://www.google.com", "https://www.google.com", false},
		{"shorter url", "https://merchant.test", "https://merchant.test/3ds", false},
		{"www only stripped at host start", "https://acs.test/www.google.com", "https://google.com", false},
		{"empty prefix", "https://www.google.com", "", false},
		{"empty url", "", "https://www.google.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, MatchesCallbackPrefix(tt.url, tt.prefix))
		})
	}
}
