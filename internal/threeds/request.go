package threeds

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/oshokin/d3s/internal/utils"
)

// Mode is the 3-D Secure protocol version a session runs.
type Mode uint8

const (
	// ModeV1 is 3-D Secure 1.0: MD and PaReq in, MD and PaRes out.
	ModeV1 Mode = iota + 1
	// ModeV2 is 3-D Secure 2.x challenge flow: CReq and session data in, CRes and session data out.
	ModeV2
)

// Wire field names.
const (
	// FieldMD is the v1 merchant data field.
	FieldMD = "MD"
	// FieldPaReq is the v1 authentication request field.
	FieldPaReq = "PaReq"
	// FieldPaRes is the v1 authentication response field.
	FieldPaRes = "PaRes"
	// FieldTermURL is the v1 field telling the ACS where to post the result.
	FieldTermURL = "TermUrl"
	// FieldCReq is the v2 challenge request field.
	FieldCReq = "creq"
	// FieldCRes is the v2 challenge response field.
	FieldCRes = "cres"
	// FieldThreeDSSessionData is the v2 session data field, reflected back by the ACS.
	FieldThreeDSSessionData = "threeDSSessionData"
)

// String returns a human-readable protocol name.
func (m Mode) String() string {
	switch m {
	case ModeV1:
		return "3ds-v1"
	case ModeV2:
		return "3ds-v2"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// Request holds the parameters issued by the payment gateway for one authentication attempt.
// Either the v1 pair (MD, PaReq) or the v2 pair (CReq, ThreeDSSessionData) is used.
type Request struct {
	// ACSURL is the Access Control Server address.
	ACSURL string
	// CReq is the v2 challenge request. A non-empty value selects v2.
	CReq string
	// MD is the v1 merchant data.
	MD string
	// PaReq is the v1 authentication request.
	PaReq string
	// ThreeDSSessionData is the v2 session data reflected back in the callback.
	ThreeDSSessionData string
	// CallbackURL overrides the stored callback prefix when not empty.
	CallbackURL string
}

// Mode returns the protocol version implied by the request.
// A request carrying a CReq is v2 even when v1 fields are present too.
func (r Request) Mode() Mode {
	if r.CReq != "" {
		return ModeV2
	}

	return ModeV1
}

// Validate checks the request text before anything is encoded.
func (r Request) Validate() error {
	for name, value := range map[string]string{
		"acs url":               r.ACSURL,
		FieldCReq:               r.CReq,
		FieldMD:                 r.MD,
		FieldPaReq:              r.PaReq,
		FieldThreeDSSessionData: r.ThreeDSSessionData,
		"callback url":          r.CallbackURL,
	} {
		if !utf8.ValidString(value) {
			return fmt.Errorf("%w: %s", ErrInvalidEncoding, name)
		}
	}

	if !utils.IsHTTPURL(r.ACSURL) {
		return fmt.Errorf("%w: '%s'", ErrInvalidACSURL, r.ACSURL)
	}

	if r.CallbackURL != "" && !utils.IsHTTPURL(r.CallbackURL) {
		return fmt.Errorf("%w: '%s'", ErrInvalidCallbackURL, r.CallbackURL)
	}

	if r.Mode() == ModeV1 && r.PaReq == "" {
		return fmt.Errorf("%w: %s", ErrMissingParameter, FieldPaReq)
	}

	return nil
}

// BuildNavigationURL encodes the request as query parameters of the ACS URL.
// The v1 TermUrl is the callback URL the session watches for.
func BuildNavigationURL(r Request, callbackURL string) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}

	if !utf8.ValidString(callbackURL) {
		return "", fmt.Errorf("%w: callback url", ErrInvalidEncoding)
	}

	var params string

	switch r.Mode() {
	case ModeV2:
		params = FieldCReq + "=" + url.QueryEscape(r.CReq) +
			"&" + FieldThreeDSSessionData + "=" + url.QueryEscape(r.ThreeDSSessionData)
	default:
		params = FieldMD + "=" + url.QueryEscape(r.MD) +
			"&" + FieldTermURL + "=" + url.QueryEscape(callbackURL) +
			"&" + FieldPaReq + "=" + url.QueryEscape(r.PaReq)
	}

	separator := "?"
	if strings.Contains(r.ACSURL, "?") {
		separator = "&"
	}

	return r.ACSURL + separator + params, nil
}
