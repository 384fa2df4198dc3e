// Package http builds the HTTP client used when an intercepted callback request
// is passed through to the real server: a RoundTripper chain that injects the
// configured User-Agent and dumps traffic in debug mode with 3-D Secure
// payload fields redacted.
package http
