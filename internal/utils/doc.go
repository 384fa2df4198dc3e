// Package utils holds small helpers shared across the application:
// safe numeric conversions, progress clamping, log-friendly abbreviation of
// large protocol blobs, content type checks and the User-Agent provider.
package utils
