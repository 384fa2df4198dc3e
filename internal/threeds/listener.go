package threeds

//go:generate $MOCKGEN -source=listener.go -destination=mocks/listener_mock.go

import (
	"context"
	"net/url"
)

// Listener receives the lifecycle and completion notifications of a session.
// Methods are called without any coordinator lock held and may be called
// from the view event goroutine or from a scan goroutine.
type Listener interface {
	// OnAuthorizationStarted is called when a new session begins.
	OnAuthorizationStarted(ctx context.Context, sessionID string)
	// OnProgressChanged is called on every page load progress change.
	OnProgressChanged(ctx context.Context, percent int)
	// OnPageLoadError is called when an ordinary page fails to load.
	OnPageLoadError(ctx context.Context, code int, description, rawURL string)
	// OnCompletedV1 is called once when a v1 session completes.
	OnCompletedV1(ctx context.Context, md, paRes string)
	// OnCompletedV2 is called once when a v2 session completes.
	OnCompletedV2(ctx context.Context, cRes, sessionData string)
}

// CallbackListener is an optional Listener extension notified when the callback
// page is reached and no result could be found for the session.
type CallbackListener interface {
	OnCallbackWithoutResult(ctx context.Context, rawURL string)
}

// ResultListener is an optional Listener extension receiving the full result
// right before the version-specific completion call.
type ResultListener interface {
	OnResult(ctx context.Context, result Result)
}

// View is the browser surface a coordinator drives.
type View interface {
	// Navigate loads the URL in the view.
	Navigate(ctx context.Context, rawURL string) error
	// CaptureMarkup returns the full markup of the current page.
	CaptureMarkup(ctx context.Context) (string, error)
}

// EventHandler consumes the page lifecycle events produced by a view.
type EventHandler interface {
	// IsCallbackURL reports whether the URL is the callback page of the current session.
	IsCallbackURL(rawURL string) bool
	// PageStarted is called when a main frame navigation starts.
	PageStarted(ctx context.Context, rawURL string)
	// PageVisible is called when the page content becomes visible.
	PageVisible(ctx context.Context, rawURL string)
	// PageFailed is called when a main frame navigation fails.
	PageFailed(ctx context.Context, code int, description, rawURL string)
	// ProgressChanged is called when the load progress changes.
	ProgressChanged(ctx context.Context, percent int)
	// CallbackIntercepted is called with the decoded body of a request sent to the callback URL,
	// before the request is allowed to proceed.
	CallbackIntercepted(ctx context.Context, rawURL string, form url.Values)
}
