package utils

import (
	"errors"
	"math"
	"mime"
	"net/url"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

var (
	// textContentTypePatterns match content types whose bodies are safe to dump into debug logs.
	// ACS pages are HTML and their result posts are form-encoded, so both are included.
	//nolint:gochecknoglobals // These are immutable, pre-compiled regex patterns and used as constants.
	textContentTypePatterns = []*regexp.Regexp{
		regexp.MustCompile("^text/.+"),
		regexp.MustCompile("^application/json$"),
		regexp.MustCompile("^application/x-www-form-urlencoded$"),
		regexp.MustCompile(`^application/(xhtml\+)?xml$`),
	}
)

// abbreviationEllipsis separates the kept prefix of an abbreviated value from its size note.
const abbreviationEllipsis = "…"

// SafeUint64ToInt64 converts a uint64 value to an int64 safely,
// ensuring that the value does not exceed the maximum limit of int64.
func SafeUint64ToInt64(val uint64) int64 {
	if val > math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(val)
}

// ClampPercent keeps a progress value within 0..100.
func ClampPercent(val int) int {
	switch {
	case val < 0:
		return 0
	case val > 100:
		return 100
	default:
		return val
	}
}

// Abbreviate keeps the first keep runes of a value and replaces the rest with its size.
// It is used to log PaRes and CRes blobs without dumping them whole.
func Abbreviate(value string, keep int) string {
	if keep < 0 {
		keep = 0
	}

	if utf8.RuneCountInString(value) <= keep {
		return value
	}

	runes := []rune(value)

	return string(runes[:keep]) + abbreviationEllipsis +
		"(" + humanize.Bytes(uint64(len(value))) + ")"
}

// IsFileExist checks whether a file exists at the given path.
func IsFileExist(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	return false, err
}

// IsTextContentType checks if the given content type represents a text-based format.
// It also checks that the charset, if present, is either "utf-8" or "us-ascii".
func IsTextContentType(contentType string) bool {
	parsedType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	for _, pattern := range textContentTypePatterns {
		if !pattern.MatchString(parsedType) {
			continue
		}

		charset := strings.ToLower(params["charset"])

		return charset == "" || charset == "utf-8" || charset == "us-ascii"
	}

	return false
}

// IsHTTPURL reports whether the value is an absolute http or https URL with a host.
func IsHTTPURL(value string) bool {
	parsed, err := url.Parse(value)
	if err != nil {
		return false
	}

	scheme := strings.ToLower(parsed.Scheme)

	return (scheme == "http" || scheme == "https") && parsed.Host != ""
}
