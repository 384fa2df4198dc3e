package http

import "time"

const (
	// DefaultTimeout is the default timeout for callback passthrough requests.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is the User-Agent used when none is configured.
	// It mimics a mobile browser, since ACS pages are usually laid out for in-app views.
	DefaultUserAgent = "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Mobile Safari/537.36" //nolint: lll
)
