package http

import (
	"net/http"

	"github.com/oshokin/d3s/internal/utils"
)

// NewCallbackClient builds the client that forwards intercepted callback requests.
// Redirects are not followed: the browser must see them to keep navigating.
func NewCallbackClient(userAgentProvider utils.UserAgentProvider, maxLogLength int64) *http.Client {
	transport := NewUserAgentInjector(
		NewLogTransport(http.DefaultTransport, maxLogLength),
		userAgentProvider,
	)

	return &http.Client{
		Transport: transport,
		Timeout:   DefaultTimeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
