package browser

import (
	"context"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/oshokin/d3s/internal/logger"
	"github.com/oshokin/d3s/internal/threeds"
	"github.com/oshokin/d3s/internal/utils"
)

// callbackPage is served instead of the callback URL when passthrough is disabled.
const callbackPage = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>3-D Secure</title></head>
<body><p>Authentication finished. You can close this window.</p></body></html>`

// callbackInterceptor holds callback requests until the session has inspected them.
type callbackInterceptor struct {
	ctx         context.Context //nolint:containedctx // Hijack handlers receive no context.
	handler     threeds.EventHandler
	passthrough bool
	client      *http.Client
}

func newCallbackInterceptor(
	ctx context.Context,
	handler threeds.EventHandler,
	passthrough bool,
	client *http.Client,
) *callbackInterceptor {
	return &callbackInterceptor{
		ctx:         ctx,
		handler:     handler,
		passthrough: passthrough,
		client:      client,
	}
}

// callbackAction is what happens to a hijacked request.
type callbackAction uint8

const (
	// actionContinue lets the request reach its server unchanged.
	actionContinue callbackAction = iota
	// actionServeLocal answers the callback request with callbackPage.
	actionServeLocal
	// actionForward sends the callback request through the callback client.
	actionForward
)

// handle lets ordinary requests through and inspects callback documents.
func (i *callbackInterceptor) handle(h *rod.Hijack) {
	requestURL := h.Request.URL()

	action := i.route(
		h.Request.Type(),
		h.Request.Method(),
		requestURL,
		h.Request.Header("Content-Type"),
		h.Request.Body())

	switch action {
	case actionContinue:
		h.ContinueRequest(&proto.FetchContinueRequest{})
	case actionServeLocal:
		h.Response.
			SetHeader("Content-Type", "text/html; charset=utf-8").
			SetBody(callbackPage)
	case actionForward:
		if err := h.LoadResponse(i.client, true); err != nil {
			logger.Warnf(i.ctx, "Failed to forward callback request: %v", err)
			h.Response.Fail(proto.NetworkErrorReasonFailed)
		}
	}
}

// route decides what happens to a request.
// Callback documents are handed to the event handler before the decision is returned.
func (i *callbackInterceptor) route(
	resourceType proto.NetworkResourceType,
	method string,
	requestURL *url.URL,
	contentType, body string,
) callbackAction {
	if requestURL == nil ||
		resourceType != proto.NetworkResourceTypeDocument ||
		!i.handler.IsCallbackURL(requestURL.String()) {
		return actionContinue
	}

	logger.Debugf(i.ctx, "Intercepted %s request to callback %s",
		method, utils.Abbreviate(requestURL.String(), maxLoggedURLLength))

	i.handler.CallbackIntercepted(i.ctx, requestURL.String(), callbackForm(requestURL, contentType, body))

	if i.passthrough {
		return actionForward
	}

	return actionServeLocal
}

// callbackForm merges the query of the callback URL with its form-encoded body.
// Body values come first, as the ACS posts the result in the body.
func callbackForm(requestURL *url.URL, contentType, body string) url.Values {
	form := make(url.Values)

	if body != "" && isFormContentType(contentType) {
		parsed, err := url.ParseQuery(body)
		if err == nil {
			for key, values := range parsed {
				form[key] = append(form[key], values...)
			}
		}
	}

	if requestURL != nil {
		for key, values := range requestURL.Query() {
			form[key] = append(form[key], values...)
		}
	}

	return form
}

// isFormContentType reports whether the body is form-encoded.
// A missing content type is treated as form-encoded.
func isFormContentType(contentType string) bool {
	if strings.TrimSpace(contentType) == "" {
		return true
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == "application/x-www-form-urlencoded"
}
