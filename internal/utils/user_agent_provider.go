package utils

//go:generate $MOCKGEN -source=user_agent_provider.go -destination=mocks/user_agent_provider_mock.go

// UserAgentProvider is an interface that defines a method for retrieving a User-Agent string.
type UserAgentProvider interface {
	// GetUserAgent returns a User-Agent string.
	GetUserAgent() string
}

// StaticUserAgentProvider returns the configured User-Agent, or a fallback when none is configured.
type StaticUserAgentProvider struct {
	// userAgent is the configured User-Agent string.
	userAgent string
	// fallback is returned when userAgent is empty.
	fallback string
}

// NewStaticUserAgentProvider creates a provider for the configured User-Agent.
func NewStaticUserAgentProvider(userAgent, fallback string) UserAgentProvider {
	return &StaticUserAgentProvider{
		userAgent: userAgent,
		fallback:  fallback,
	}
}

// GetUserAgent returns a User-Agent string.
func (p *StaticUserAgentProvider) GetUserAgent() string {
	if p.userAgent == "" {
		return p.fallback
	}

	return p.userAgent
}
