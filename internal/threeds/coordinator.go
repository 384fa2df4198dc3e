package threeds

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/oshokin/d3s/internal/logger"
)

// State is the lifecycle state of a session.
type State uint8

const (
	// StateIdle means no session was started yet.
	StateIdle State = iota
	// StateInFlight means the session waits for a result.
	StateInFlight
	// StateCompleted means the result was delivered.
	StateCompleted
	// StateFailed means the request could not be sent.
	StateFailed
	// StateCanceled means a newer session replaced this one.
	StateCanceled
)

const (
	// DefaultCallbackURL is the callback prefix used when none is configured.
	DefaultCallbackURL = "https://www.google.com"
	// DefaultScanGracePeriod is how long the callback path waits for in-flight scans.
	DefaultScanGracePeriod = 1500 * time.Millisecond

	// scannedMarkupCacheSize is the number of markup digests remembered across sessions.
	scannedMarkupCacheSize = 64
	// placeholderCRes is the fixed CRes reported on callback arrival in placeholder mode.
	placeholderCRes = "cRes"
	// placeholderSessionData is the fixed session data reported in placeholder mode.
	placeholderSessionData = "threeDSSessionData"
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInFlight:
		return "in-flight"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StateCanceled:
		return "canceled"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Options configure a Coordinator.
type Options struct {
	// CallbackURL is the initial callback prefix. Empty means DefaultCallbackURL.
	CallbackURL string
	// ScanGracePeriod bounds the wait for in-flight scans when the callback is reached.
	// Zero disables the wait, a negative value means DefaultScanGracePeriod.
	ScanGracePeriod time.Duration
	// CallbackPlaceholder completes v2 sessions with fixed placeholder values
	// when the callback page is reached without a result.
	CallbackPlaceholder bool
}

// Coordinator runs 3-D Secure sessions on a view, one at a time.
// Starting a session cancels the previous one and every scan it started.
type Coordinator struct {
	view        View
	gracePeriod time.Duration
	placeholder bool
	scanned     *lru.Cache[string, struct{}]

	mu          sync.Mutex
	listener    Listener
	callbackURL string
	current     *session
	closed      bool

	// workers tracks every goroutine the coordinator starts.
	workers sync.WaitGroup
}

// session is a single authentication attempt.
type session struct {
	id     string
	mode   Mode
	ctx    context.Context //nolint:containedctx // Scans are bound to the session lifetime.
	cancel context.CancelFunc
	scans  *scanTracker

	// Guarded by Coordinator.mu.
	state            State
	currentURL       string
	callbackReported bool
}

// NewCoordinator creates a coordinator driving the view.
func NewCoordinator(view View, opts Options) (*Coordinator, error) {
	if view == nil {
		return nil, ErrNilView
	}

	scanned, err := lru.New[string, struct{}](scannedMarkupCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create markup cache: %w", err)
	}

	callbackURL := opts.CallbackURL
	if callbackURL == "" {
		callbackURL = DefaultCallbackURL
	}

	gracePeriod := opts.ScanGracePeriod
	if gracePeriod < 0 {
		gracePeriod = DefaultScanGracePeriod
	}

	return &Coordinator{
		view:        view,
		gracePeriod: gracePeriod,
		placeholder: opts.CallbackPlaceholder,
		scanned:     scanned,
		callbackURL: callbackURL,
	}, nil
}

// SetListener registers the listener. A nil listener drops all notifications.
func (c *Coordinator) SetListener(listener Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.listener = listener
}

// CallbackURL returns the current callback prefix.
func (c *Coordinator) CallbackURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.callbackURL
}

// State returns the state of the current session and its id.
func (c *Coordinator) State() (string, State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return "", StateIdle
	}

	return c.current.id, c.current.state
}

// AuthorizeV1 starts a 3-D Secure v1 session.
func (c *Coordinator) AuthorizeV1(ctx context.Context, acsURL, md, paReq string) (string, error) {
	return c.Authorize(ctx, Request{
		ACSURL: acsURL,
		MD:     md,
		PaReq:  paReq,
	})
}

// AuthorizeV2 starts a 3-D Secure v2 session. A non-empty callbackURL replaces the stored prefix.
func (c *Coordinator) AuthorizeV2(ctx context.Context, acsURL, cReq, sessionData, callbackURL string) (string, error) {
	return c.Authorize(ctx, Request{
		ACSURL:             acsURL,
		CReq:               cReq,
		ThreeDSSessionData: sessionData,
		CallbackURL:        callbackURL,
	})
}

// Authorize starts a session for the request and navigates the view to the ACS.
// The previous session is canceled first. It returns the id of the new session.
func (c *Coordinator) Authorize(ctx context.Context, req Request) (string, error) {
	sessionCtx, cancel := context.WithCancel(ctx)

	s := &session{
		id:     uuid.NewString(),
		mode:   req.Mode(),
		cancel: cancel,
		scans:  newScanTracker(),
		state:  StateInFlight,
	}

	s.ctx = logger.WithKV(sessionCtx, "session_id", s.id, "mode", s.mode.String())

	c.mu.Lock()

	if previous := c.current; previous != nil {
		if previous.state == StateInFlight {
			previous.state = StateCanceled
		}

		previous.cancel()
	}

	c.current = s

	callbackURL := c.callbackURL
	if req.CallbackURL != "" {
		callbackURL = req.CallbackURL
	}

	listener := c.listener

	c.mu.Unlock()

	logger.Infof(s.ctx, "Starting authorization at %s", req.ACSURL)

	if listener != nil {
		listener.OnAuthorizationStarted(s.ctx, s.id)
	}

	target, err := BuildNavigationURL(req, callbackURL)
	if err != nil {
		c.fail(s)

		return s.id, fmt.Errorf("failed to build navigation request: %w", err)
	}

	// A rejected request must not leave its prefix behind.
	c.mu.Lock()
	c.callbackURL = callbackURL
	c.mu.Unlock()

	logger.Debugf(s.ctx, "Navigating to ACS with %d bytes of query", len(target)-len(req.ACSURL))

	if err = c.view.Navigate(s.ctx, target); err != nil {
		c.fail(s)

		return s.id, fmt.Errorf("failed to navigate to ACS: %w", err)
	}

	return s.id, nil
}

// IsCallbackURL reports whether the URL matches the callback prefix.
func (c *Coordinator) IsCallbackURL(rawURL string) bool {
	return MatchesCallbackPrefix(rawURL, c.CallbackURL())
}

// PageStarted records the navigation of the current session.
func (c *Coordinator) PageStarted(ctx context.Context, rawURL string) {
	if c.IsCallbackURL(rawURL) {
		logger.Debugf(ctx, "Callback page %s started loading", rawURL)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return
	}

	c.current.currentURL = rawURL
}

// PageVisible scans an ordinary page or re-checks the session on the callback page.
// An empty URL refers to the last started navigation.
func (c *Coordinator) PageVisible(_ context.Context, rawURL string) {
	s := c.activeSession()
	if s == nil {
		return
	}

	if rawURL == "" {
		c.mu.Lock()
		rawURL = s.currentURL
		c.mu.Unlock()
	}

	if c.IsCallbackURL(rawURL) {
		c.goWorker(func() { c.recheckOnCallback(s, rawURL) })

		return
	}

	s.scans.begin()

	if !c.goWorker(func() {
		defer s.scans.end()

		c.scan(s, rawURL)
	}) {
		s.scans.end()
	}
}

// PageFailed forwards load errors of ordinary pages to the listener.
func (c *Coordinator) PageFailed(ctx context.Context, code int, description, rawURL string) {
	if c.IsCallbackURL(rawURL) {
		logger.Debugf(ctx, "Ignoring load error on callback page %s: %d %s", rawURL, code, description)

		return
	}

	logger.Warnf(ctx, "Page load error %d (%s) at %s", code, description, rawURL)

	if listener := c.currentListener(); listener != nil {
		listener.OnPageLoadError(ctx, code, description, rawURL)
	}
}

// ProgressChanged forwards the load progress to the listener.
func (c *Coordinator) ProgressChanged(ctx context.Context, percent int) {
	if listener := c.currentListener(); listener != nil {
		listener.OnProgressChanged(ctx, percent)
	}
}

// CallbackIntercepted completes the session from the callback form body when possible.
// Otherwise it waits up to the grace period for in-flight scans before returning,
// so the intercepted request is held while they finish.
func (c *Coordinator) CallbackIntercepted(_ context.Context, rawURL string, form url.Values) {
	s := c.activeSession()
	if s == nil {
		return
	}

	if res, ok := ExtractForm(form, s.mode); ok {
		logger.Debugf(s.ctx, "Result found in callback body of %s", rawURL)
		c.complete(s, res)

		return
	}

	c.waitForScans(s)
}

// Wait blocks until every goroutine started by the coordinator has returned.
func (c *Coordinator) Wait() {
	c.workers.Wait()
}

// Close cancels the current session and waits for its goroutines.
// Page events arriving after Close start no new work.
func (c *Coordinator) Close() {
	c.mu.Lock()

	c.closed = true

	if s := c.current; s != nil {
		if s.state == StateInFlight {
			s.state = StateCanceled
		}

		s.cancel()
	}

	c.mu.Unlock()

	c.Wait()
}

// scan captures the page markup and looks for the result fields.
func (c *Coordinator) scan(s *session, rawURL string) {
	if s.ctx.Err() != nil {
		return
	}

	markup, err := c.view.CaptureMarkup(s.ctx)
	if err != nil {
		if s.ctx.Err() == nil {
			logger.Warnf(s.ctx, "Failed to capture markup of %s: %v", rawURL, err)
		}

		return
	}

	digest := sha256.Sum256([]byte(markup))
	if found, _ := c.scanned.ContainsOrAdd(s.id+":"+hex.EncodeToString(digest[:]), struct{}{}); found {
		logger.Debugf(s.ctx, "Markup of %s already scanned", rawURL)

		return
	}

	res, ok := Extract(markup, s.mode)
	if !ok {
		logger.Debugf(s.ctx, "No result in markup of %s (%s)", rawURL, humanize.Bytes(uint64(len(markup))))

		return
	}

	logger.Debugf(s.ctx, "Result found in markup of %s", rawURL)
	c.complete(s, res)
}

// recheckOnCallback resolves a session whose view reached the callback page.
// A result found by the scans or the callback body has completed the session by now.
func (c *Coordinator) recheckOnCallback(s *session, rawURL string) {
	c.waitForScans(s)

	if c.placeholder && s.mode == ModeV2 {
		logger.Warnf(s.ctx, "Callback page %s reached without result, completing with placeholder values", rawURL)
		c.complete(s, Result{
			Mode:               ModeV2,
			CRes:               placeholderCRes,
			ThreeDSSessionData: placeholderSessionData,
			Placeholder:        true,
		})

		return
	}

	c.mu.Lock()

	if c.current != s || s.state != StateInFlight || s.callbackReported {
		c.mu.Unlock()

		return
	}

	s.callbackReported = true
	listener := c.listener

	c.mu.Unlock()

	logger.Warnf(s.ctx, "Callback page %s reached without result", rawURL)

	if callbackListener, ok := listener.(CallbackListener); ok {
		callbackListener.OnCallbackWithoutResult(s.ctx, rawURL)
	}
}

// complete moves the session from in-flight to completed and delivers the result.
// It is the only place a completion is emitted.
func (c *Coordinator) complete(s *session, res Result) {
	c.mu.Lock()

	if c.current != s || s.state != StateInFlight {
		c.mu.Unlock()

		return
	}

	s.state = StateCompleted
	listener := c.listener

	c.mu.Unlock()

	// Stops the remaining scans of the session.
	s.cancel()

	res.SessionID = s.id
	res.Mode = s.mode

	// The session context is canceled now, listeners get one that keeps its values only.
	ctx := context.WithoutCancel(s.ctx)

	logger.Infof(ctx, "Authorization completed")

	if listener == nil {
		return
	}

	if resultListener, ok := listener.(ResultListener); ok {
		resultListener.OnResult(ctx, res)
	}

	switch s.mode {
	case ModeV2:
		listener.OnCompletedV2(ctx, res.CRes, res.ThreeDSSessionData)
	default:
		listener.OnCompletedV1(ctx, res.MD, res.PaRes)
	}
}

// fail marks an in-flight session as failed.
func (c *Coordinator) fail(s *session) {
	c.mu.Lock()

	if s.state == StateInFlight {
		s.state = StateFailed
	}

	c.mu.Unlock()

	s.cancel()
}

// waitForScans waits until the session has no scan running, the grace period passes
// or the session is canceled.
func (c *Coordinator) waitForScans(s *session) {
	if c.gracePeriod <= 0 {
		return
	}

	timer := time.NewTimer(c.gracePeriod)
	defer timer.Stop()

	select {
	case <-s.scans.idle():
	case <-timer.C:
		logger.Debugf(s.ctx, "Scan grace period of %s elapsed", c.gracePeriod)
	case <-s.ctx.Done():
	}
}

// activeSession returns the current session if it still waits for a result.
func (c *Coordinator) activeSession() *session {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil || c.current.state != StateInFlight {
		return nil
	}

	return c.current
}

func (c *Coordinator) currentListener() Listener {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.listener
}

// goWorker runs fn in a tracked goroutine unless the coordinator is closed.
// The Add happens under c.mu so it never races with the Wait in Close.
func (c *Coordinator) goWorker(fn func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	c.workers.Add(1)

	go func() {
		defer c.workers.Done()

		fn()
	}()

	return true
}
