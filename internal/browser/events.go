package browser

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/go-rod/rod/lib/proto"

	"github.com/oshokin/d3s/internal/logger"
	"github.com/oshokin/d3s/internal/threeds"
	"github.com/oshokin/d3s/internal/utils"
)

// Load error codes reported for failed navigations.
const (
	// ErrorCodeUnknown is reported for errors without a more specific code.
	ErrorCodeUnknown = -1
	// ErrorCodeHostLookup is reported when the host name cannot be resolved.
	ErrorCodeHostLookup = -2
	// ErrorCodeConnect is reported when the server cannot be reached.
	ErrorCodeConnect = -6
	// ErrorCodeTimeout is reported when the connection timed out.
	ErrorCodeTimeout = -8
	// ErrorCodeRedirectLoop is reported when the page redirects too many times.
	ErrorCodeRedirectLoop = -9
	// ErrorCodeFailedSSLHandshake is reported for TLS and certificate errors.
	ErrorCodeFailedSSLHandshake = -11
)

const (
	// progressNavigationStarted is the progress reported when the document request is sent.
	progressNavigationStarted = 10
	// progressBeforeLoad is the highest progress reported before the load event.
	progressBeforeLoad = 90
	// progressLoaded is the progress reported on the load event.
	progressLoaded = 100

	// maxLoggedURLLength is the number of URL characters kept in debug logs.
	maxLoggedURLLength = 120
)

// pageTracker translates DevTools page events into EventHandler calls.
type pageTracker struct {
	ctx       context.Context //nolint:containedctx // Events arrive without a context of their own.
	handler   threeds.EventHandler
	mainFrame proto.PageFrameID

	mu         sync.Mutex
	currentURL string
	documents  map[proto.NetworkRequestID]string
	pending    map[proto.NetworkRequestID]struct{}
	started    int
	finished   int
	progress   int
}

func newPageTracker(ctx context.Context, handler threeds.EventHandler, mainFrame proto.PageFrameID) *pageTracker {
	return &pageTracker{
		ctx:       ctx,
		handler:   handler,
		mainFrame: mainFrame,
		documents: make(map[proto.NetworkRequestID]string),
		pending:   make(map[proto.NetworkRequestID]struct{}),
	}
}

// isMainFrame reports whether the frame is the top frame of the page.
func (t *pageTracker) isMainFrame(frameID proto.PageFrameID) bool {
	return t.mainFrame == "" || frameID == t.mainFrame
}

// onRequestWillBeSent starts a navigation for main frame documents and counts requests for progress.
func (t *pageTracker) onRequestWillBeSent(ev *proto.NetworkRequestWillBeSent) {
	if ev.Request == nil {
		return
	}

	isNavigation := ev.Type == proto.NetworkResourceTypeDocument && t.isMainFrame(ev.FrameID)

	t.mu.Lock()

	if isNavigation {
		t.documents[ev.RequestID] = ev.Request.URL

		// Redirects reuse the request id and keep the progress of the navigation.
		if ev.RedirectResponse == nil {
			t.pending = map[proto.NetworkRequestID]struct{}{ev.RequestID: {}}
			t.started, t.finished, t.progress = 1, 0, 0
		}
	} else if _, known := t.pending[ev.RequestID]; !known && t.started > 0 {
		t.pending[ev.RequestID] = struct{}{}
		t.started++
	}

	progress, changed := t.updateProgressLocked(isNavigation)

	t.mu.Unlock()

	if isNavigation {
		logger.Debugf(t.ctx, "Navigation started: %s", utils.Abbreviate(ev.Request.URL, maxLoggedURLLength))
		t.handler.PageStarted(t.ctx, ev.Request.URL)
	}

	if changed {
		t.handler.ProgressChanged(t.ctx, progress)
	}
}

// onResponseReceived reports HTTP error statuses of main frame documents.
func (t *pageTracker) onResponseReceived(ev *proto.NetworkResponseReceived) {
	if ev.Response == nil || ev.Type != proto.NetworkResourceTypeDocument || !t.isMainFrame(ev.FrameID) {
		return
	}

	if ev.Response.Status < http.StatusBadRequest {
		return
	}

	description := ev.Response.StatusText
	if description == "" {
		description = http.StatusText(ev.Response.Status)
	}

	t.handler.PageFailed(t.ctx, ev.Response.Status, description, ev.Response.URL)
}

// onLoadingFinished counts a finished request.
func (t *pageTracker) onLoadingFinished(ev *proto.NetworkLoadingFinished) {
	t.mu.Lock()
	delete(t.documents, ev.RequestID)
	t.mu.Unlock()

	t.finishRequest(ev.RequestID)
}

// onLoadingFailed counts a failed request and reports failed main frame documents.
func (t *pageTracker) onLoadingFailed(ev *proto.NetworkLoadingFailed) {
	t.mu.Lock()
	documentURL, isDocument := t.documents[ev.RequestID]
	delete(t.documents, ev.RequestID)
	t.mu.Unlock()

	t.finishRequest(ev.RequestID)

	// Canceled navigations are replaced by another one, e.g. an intercepted callback.
	if !isDocument || ev.Canceled {
		return
	}

	t.handler.PageFailed(t.ctx, ErrorCode(ev.ErrorText), ev.ErrorText, documentURL)
}

// onFrameNavigated records the URL committed in the main frame.
func (t *pageTracker) onFrameNavigated(ev *proto.PageFrameNavigated) {
	if ev.Frame == nil || ev.Frame.ParentID != "" || !t.isMainFrame(ev.Frame.ID) {
		return
	}

	t.mu.Lock()
	t.currentURL = ev.Frame.URL
	t.mu.Unlock()
}

// onDOMContentLoaded reports the page as visible.
func (t *pageTracker) onDOMContentLoaded(*proto.PageDomContentEventFired) {
	t.handler.PageVisible(t.ctx, t.CurrentURL())
}

// onLoad completes the progress and reports the page as visible once more,
// so markup built by scripts after DOMContentLoaded is scanned too.
func (t *pageTracker) onLoad(*proto.PageLoadEventFired) {
	t.mu.Lock()

	changed := t.progress != progressLoaded
	t.progress = progressLoaded

	t.mu.Unlock()

	if changed {
		t.handler.ProgressChanged(t.ctx, progressLoaded)
	}

	t.handler.PageVisible(t.ctx, t.CurrentURL())
}

// CurrentURL returns the last URL committed in the main frame.
func (t *pageTracker) CurrentURL() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.currentURL
}

// finishRequest removes a request from the pending set and reports the progress change.
func (t *pageTracker) finishRequest(requestID proto.NetworkRequestID) {
	t.mu.Lock()

	if _, known := t.pending[requestID]; !known {
		t.mu.Unlock()

		return
	}

	delete(t.pending, requestID)
	t.finished++

	progress, changed := t.updateProgressLocked(false)

	t.mu.Unlock()

	if changed {
		t.handler.ProgressChanged(t.ctx, progress)
	}
}

// updateProgressLocked recomputes the progress from the request counters.
// The caller must hold t.mu.
func (t *pageTracker) updateProgressLocked(navigationStarted bool) (int, bool) {
	if t.started == 0 || t.progress == progressLoaded {
		return t.progress, false
	}

	progress := progressNavigationStarted
	if !navigationStarted {
		progress += (progressBeforeLoad - progressNavigationStarted) * t.finished / t.started
	}

	progress = utils.ClampPercent(progress)
	if progress == t.progress {
		return progress, false
	}

	t.progress = progress

	return progress, true
}

// ErrorCode maps a Chrome network error text to a load error code.
func ErrorCode(errorText string) int {
	code := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(errorText)), "NET::")

	switch {
	case code == "ERR_NAME_NOT_RESOLVED", code == "ERR_NAME_RESOLUTION_FAILED":
		return ErrorCodeHostLookup
	case code == "ERR_TIMED_OUT", code == "ERR_CONNECTION_TIMED_OUT":
		return ErrorCodeTimeout
	case code == "ERR_TOO_MANY_REDIRECTS":
		return ErrorCodeRedirectLoop
	case strings.HasPrefix(code, "ERR_SSL_"), strings.HasPrefix(code, "ERR_CERT_"):
		return ErrorCodeFailedSSLHandshake
	case strings.HasPrefix(code, "ERR_CONNECTION_"),
		code == "ERR_ADDRESS_UNREACHABLE",
		code == "ERR_INTERNET_DISCONNECTED":
		return ErrorCodeConnect
	default:
		return ErrorCodeUnknown
	}
}
