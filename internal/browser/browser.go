package browser

//go:generate $MOCKGEN -source=browser.go -destination=mocks/browser_mock.go

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/oshokin/d3s/internal/config"
	"github.com/oshokin/d3s/internal/logger"
	"github.com/oshokin/d3s/internal/threeds"
	http_transport "github.com/oshokin/d3s/internal/transport/http"
	"github.com/oshokin/d3s/internal/utils"
)

const (
	// browserCleanupDelay is the delay to wait for Chrome to release file locks before cleanup.
	browserCleanupDelay = 500 * time.Millisecond

	// tempProfilePattern is the name pattern of the temporary profile directory.
	tempProfilePattern = "d3s-profile-*"
)

var (
	// ErrNotAttached is returned when page events are requested before the page exists.
	ErrNotAttached = errors.New("browser page is not initialized")
	// ErrAlreadyAttached is returned when a second event handler is attached.
	ErrAlreadyAttached = errors.New("event handler is already attached")
)

// Browser is a 3-D Secure view backed by a real browser.
type Browser interface {
	threeds.View
	// Attach starts delivering page events to the handler.
	Attach(ctx context.Context, handler threeds.EventHandler) error
	// Alive reports whether the browser window is still open.
	Alive(ctx context.Context) bool
	// Close shuts the browser down and removes its profile.
	Close(ctx context.Context)
}

// Factory creates a browser for the configuration.
type Factory func(ctx context.Context, cfg *config.Config) (Browser, error)

// RodBrowser is a Browser driven by go-rod.
type RodBrowser struct {
	cfg            *config.Config
	browser        *rod.Browser
	page           *rod.Page
	router         *rod.HijackRouter
	callbackClient *http.Client
	// tempDir stores the temporary profile directory for cleanup.
	tempDir string

	attachMu     sync.Mutex
	attached     bool
	cancelEvents context.CancelFunc
	workers      sync.WaitGroup
	closeOnce    sync.Once
}

// NewFactory returns a Factory launching RodBrowser instances.
func NewFactory() Factory {
	return func(ctx context.Context, cfg *config.Config) (Browser, error) {
		return Launch(ctx, cfg)
	}
}

// Launch starts Chrome with a fresh profile and opens the page the session runs in.
//
//nolint:funlen // Launch options are applied one by one.
func Launch(ctx context.Context, cfg *config.Config) (*RodBrowser, error) {
	logger.Debug(ctx, "Initializing browser")

	// A fresh profile keeps cookies of previous challenges out of the session.
	tempDir, err := os.MkdirTemp("", tempProfilePattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary user data directory: %w", err)
	}

	logger.Debugf(ctx, "Using temporary profile directory: %s", tempDir)

	b := &RodBrowser{
		cfg:     cfg,
		tempDir: tempDir,
		callbackClient: http_transport.NewCallbackClient(
			utils.NewStaticUserAgentProvider(cfg.UserAgent, http_transport.DefaultUserAgent),
			cfg.ParsedMaxLogLength,
		),
	}

	l := launcher.New().
		Headless(cfg.Headless).
		UserDataDir(tempDir)

	switch chromePath, exists := launcher.LookPath(); {
	case cfg.BrowserBin != "":
		logger.Debugf(ctx, "Using configured browser binary at: %s", cfg.BrowserBin)
		l = l.Bin(cfg.BrowserBin)
	case exists:
		logger.Debugf(ctx, "Using system Chrome installation at: %s", chromePath)
		l = l.Bin(chromePath)
	default:
		logger.Info(ctx, "System Chrome not found, downloading Chromium")
	}

	controlURL, err := l.Launch()
	if err != nil {
		b.removeProfile(ctx)

		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	logger.Debugf(ctx, "Browser launched at: %s", controlURL)

	browserInstance := rod.New().ControlURL(controlURL)

	// Enable trace only in debug mode.
	if logger.IsDebugLevel() {
		logger.Debug(ctx, "Debug mode enabled - enabling browser trace")

		browserInstance = browserInstance.Trace(true)
	}

	if err = browserInstance.Connect(); err != nil {
		b.removeProfile(ctx)

		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	b.browser = browserInstance

	if cfg.Stealth {
		b.page, err = stealth.Page(b.browser)
	} else {
		b.page, err = b.browser.Page(proto.TargetCreateTarget{})
	}

	if err != nil {
		b.Close(ctx)

		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = http_transport.DefaultUserAgent
	}

	if err = b.page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: userAgent}); err != nil {
		b.Close(ctx)

		return nil, fmt.Errorf("failed to set user agent: %w", err)
	}

	logger.Debugf(ctx, "Browser initialized (headless: %t, stealth: %t)", cfg.Headless, cfg.Stealth)

	return b, nil
}

// Attach starts delivering page events to the handler and intercepting callback requests.
func (b *RodBrowser) Attach(ctx context.Context, handler threeds.EventHandler) error {
	if b.page == nil {
		return ErrNotAttached
	}

	b.attachMu.Lock()
	defer b.attachMu.Unlock()

	if b.attached {
		return ErrAlreadyAttached
	}

	eventsCtx, cancel := context.WithCancel(ctx)
	b.cancelEvents = cancel

	tracker := newPageTracker(eventsCtx, handler, b.page.FrameID)

	wait := b.page.Context(eventsCtx).EachEvent(
		tracker.onFrameNavigated,
		tracker.onDOMContentLoaded,
		tracker.onLoad,
		tracker.onRequestWillBeSent,
		tracker.onResponseReceived,
		tracker.onLoadingFinished,
		tracker.onLoadingFailed,
	)

	b.router = b.page.HijackRequests()

	interceptor := newCallbackInterceptor(eventsCtx, handler, b.cfg.CallbackPassthrough, b.callbackClient)
	if err := b.router.Add("*", "", interceptor.handle); err != nil {
		cancel()

		return fmt.Errorf("failed to intercept requests: %w", err)
	}

	b.workers.Add(2)

	go func() {
		defer b.workers.Done()

		wait()
	}()

	go func() {
		defer b.workers.Done()

		b.router.Run()
	}()

	b.attached = true

	return nil
}

// Navigate loads the URL in the page.
func (b *RodBrowser) Navigate(ctx context.Context, rawURL string) (err error) {
	if b.page == nil {
		return ErrNotAttached
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrNotAttached, r)
		}
	}()

	if err = b.page.Context(ctx).Navigate(rawURL); err != nil {
		return fmt.Errorf("failed to navigate: %w", err)
	}

	return nil
}

// CaptureMarkup returns the full markup of the current page.
func (b *RodBrowser) CaptureMarkup(ctx context.Context) (markup string, err error) {
	if b.page == nil {
		return "", ErrNotAttached
	}

	defer func() {
		if r := recover(); r != nil {
			markup, err = "", fmt.Errorf("%w: %v", ErrNotAttached, r)
		}
	}()

	return b.page.Context(ctx).HTML()
}

// Alive checks if the browser is still running.
func (b *RodBrowser) Alive(ctx context.Context) bool {
	if b.page == nil {
		return false
	}

	defer func() {
		// Recover from panic if browser is dead.
		if r := recover(); r != nil {
			logger.Debugf(ctx, "Browser panic recovered: %v", r)
		}
	}()

	// Fails once the window or the page is closed.
	_, err := b.page.Info()

	return err == nil
}

// Close stops event delivery, closes the browser and removes the profile directory.
func (b *RodBrowser) Close(ctx context.Context) {
	b.closeOnce.Do(func() {
		b.attachMu.Lock()
		cancel := b.cancelEvents
		router := b.router
		b.attachMu.Unlock()

		if router != nil {
			if err := router.Stop(); err != nil {
				logger.Debugf(ctx, "Request router stop error (expected): %v", err)
			}
		}

		if cancel != nil {
			cancel()
		}

		if b.browser != nil {
			// Close browser and wait for it to fully terminate.
			if err := b.browser.Close(); err != nil {
				logger.Debugf(ctx, "Browser close error (expected): %v", err)
			}
		}

		b.workers.Wait()
		b.removeProfile(ctx)
	})
}

// removeProfile deletes the temporary profile directory.
func (b *RodBrowser) removeProfile(ctx context.Context) {
	if b.tempDir == "" {
		return
	}

	// Give Chrome a moment to release file locks.
	time.Sleep(browserCleanupDelay)

	if err := os.RemoveAll(b.tempDir); err != nil {
		// This can fail on Windows or if Chrome hasn't fully exited.
		logger.Debugf(ctx, "Could not clean up temp directory %s: %v", b.tempDir, err)
	}
}
