package threeds

import (
	"html"
	"net/url"
	"regexp"
	"strings"
)

var (
	// inputTagPattern matches a whole <input ...> tag, across line breaks.
	inputTagPattern = regexp.MustCompile(`(?is)<input\b[^<>]*>`)
	// attributePattern matches name=value pairs with double, single or no quotes.
	attributePattern = regexp.MustCompile(`(?is)([a-z_:][-a-z0-9_:.]*)\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'=<>` + "`" + `]+))`)
)

// Result is the outcome of a completed session.
type Result struct {
	// SessionID identifies the session that produced the result.
	SessionID string
	// Mode is the protocol version of the session.
	Mode Mode
	// MD is the v1 merchant data.
	MD string
	// PaRes is the v1 authentication response.
	PaRes string
	// CRes is the v2 challenge response.
	CRes string
	// ThreeDSSessionData is the v2 session data.
	ThreeDSSessionData string
	// Placeholder is set when the v2 values are the fixed placeholders
	// emitted on callback arrival without an extracted result.
	Placeholder bool
}

// resultFields returns the names of the two fields a mode completes with.
func resultFields(mode Mode) (string, string) {
	if mode == ModeV2 {
		return FieldCRes, FieldThreeDSSessionData
	}

	return FieldMD, FieldPaRes
}

// newResult puts the two extracted values into the fields of the mode.
func newResult(mode Mode, first, second string) Result {
	if mode == ModeV2 {
		return Result{Mode: mode, CRes: first, ThreeDSSessionData: second}
	}

	return Result{Mode: mode, MD: first, PaRes: second}
}

// Extract scans page markup for the two result fields of the mode.
// The result is returned only when both fields are found.
func Extract(markup string, mode Mode) (Result, bool) {
	firstName, secondName := resultFields(mode)

	first, ok := findInputValue(markup, firstName)
	if !ok {
		return Result{}, false
	}

	second, ok := findInputValue(markup, secondName)
	if !ok {
		return Result{}, false
	}

	return newResult(mode, first, second), true
}

// ExtractForm looks up the two result fields of the mode in a decoded form body.
// Keys are matched case-insensitively and both must be present.
func ExtractForm(form url.Values, mode Mode) (Result, bool) {
	if len(form) == 0 {
		return Result{}, false
	}

	firstName, secondName := resultFields(mode)

	first, ok := lookupFold(form, firstName)
	if !ok {
		return Result{}, false
	}

	second, ok := lookupFold(form, secondName)
	if !ok {
		return Result{}, false
	}

	return newResult(mode, first, second), true
}

// findInputValue returns the decoded value of the first <input> whose name equals field.
// Matching inputs without a value attribute are skipped.
func findInputValue(markup, field string) (string, bool) {
	for _, tag := range inputTagPattern.FindAllString(markup, -1) {
		var (
			name, value string
			hasName     bool
			hasValue    bool
		)

		for _, attr := range attributePattern.FindAllStringSubmatch(tag, -1) {
			attrValue := attr[2] + attr[3] + attr[4]

			switch strings.ToLower(attr[1]) {
			case "name":
				if !hasName {
					name, hasName = attrValue, true
				}
			case "value":
				if !hasValue {
					value, hasValue = attrValue, true
				}
			}
		}

		if !hasName || !strings.EqualFold(html.UnescapeString(name), field) {
			continue
		}

		// A later input with the same name may still carry the value.
		if !hasValue {
			continue
		}

		return html.UnescapeString(value), true
	}

	return "", false
}

// lookupFold returns the first value of the key matching field case-insensitively.
func lookupFold(form url.Values, field string) (string, bool) {
	if values, ok := form[field]; ok && len(values) > 0 {
		return values[0], true
	}

	for key, values := range form {
		if strings.EqualFold(key, field) && len(values) > 0 {
			return values[0], true
		}
	}

	return "", false
}
