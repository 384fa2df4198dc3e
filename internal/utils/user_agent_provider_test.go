package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNewStaticUserAgentProvider tests the NewStaticUserAgentProvider function.
func TestNewStaticUserAgentProvider(t *testing.T) {
	t.Parallel()

	provider := NewStaticUserAgentProvider("TestAgent/1.0", "Fallback/1.0")

	assert.NotNil(t, provider)
	assert.Implements(t, (*UserAgentProvider)(nil), provider)
}

// TestStaticUserAgentProvider_GetUserAgent tests the GetUserAgent method.
func TestStaticUserAgentProvider_GetUserAgent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		userAgent string
		fallback  string
		expected  string
	}{
		{
			name:      "configured user agent wins",
			userAgent: "Mozilla/5.0 (Linux; Android 14) Mobile",
			fallback:  "Fallback/1.0",
			expected:  "Mozilla/5.0 (Linux; Android 14) Mobile",
		},
		{
			name:      "empty user agent uses fallback",
			userAgent: "",
			fallback:  "Fallback/1.0",
			expected:  "Fallback/1.0",
		},
		{
			name:      "both empty",
			userAgent: "",
			fallback:  "",
			expected:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			provider := NewStaticUserAgentProvider(tt.userAgent, tt.fallback)
			assert.Equal(t, tt.expected, provider.GetUserAgent())
		})
	}
}
