package authorize

//go:generate $MOCKGEN -source=service.go -destination=mocks/service_mock.go

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/oshokin/d3s/internal/browser"
	"github.com/oshokin/d3s/internal/config"
	"github.com/oshokin/d3s/internal/logger"
	"github.com/oshokin/d3s/internal/threeds"
)

const (
	// browserPollInterval is the interval for checking that the browser window is still open.
	browserPollInterval = 1 * time.Second
)

var (
	// ErrAuthorizationTimeout is returned when the cardholder does not finish in time.
	ErrAuthorizationTimeout = errors.New("authorization timeout exceeded")

	// ErrBrowserClosed is returned when the browser is closed by the user.
	ErrBrowserClosed = errors.New("browser was closed by user")

	// ErrCallbackWithoutResult is returned when the callback page is reached but no result was found.
	ErrCallbackWithoutResult = errors.New("callback page reached without authorization result")
)

// Service runs 3-D Secure authorizations.
type Service interface {
	// Authorize opens the ACS page and waits for the authorization result.
	Authorize(ctx context.Context, req threeds.Request) (*threeds.Result, error)
}

// ServiceImpl runs 3-D Secure authorizations in a browser.
type ServiceImpl struct {
	cfg        *config.Config
	newBrowser browser.Factory
	// progressOutput receives the page load progress bar; nil disables it.
	progressOutput io.Writer
	pollInterval   time.Duration
}

// NewService creates a new authorization service.
func NewService(cfg *config.Config, newBrowser browser.Factory) *ServiceImpl {
	// The progress bar would interleave with debug output.
	var progressOutput io.Writer
	if logger.Level() == zap.InfoLevel {
		progressOutput = os.Stderr
	}

	return &ServiceImpl{
		cfg:            cfg,
		newBrowser:     newBrowser,
		progressOutput: progressOutput,
		pollInterval:   browserPollInterval,
	}
}

// Authorize opens the ACS page and waits for the authorization result.
func (s *ServiceImpl) Authorize(ctx context.Context, req threeds.Request) (*threeds.Result, error) {
	logger.Infof(ctx, "Starting %s authorization", req.Mode())

	b, err := s.newBrowser(ctx, s.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize browser: %w", err)
	}

	defer b.Close(ctx)

	coordinator, err := threeds.NewCoordinator(b, threeds.Options{
		CallbackURL:         s.cfg.CallbackURL,
		ScanGracePeriod:     s.cfg.ParsedScanGracePeriod,
		CallbackPlaceholder: s.cfg.CallbackPlaceholder,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session coordinator: %w", err)
	}

	defer coordinator.Close()

	listener := newSessionListener(s.progressOutput)
	defer listener.finish()

	coordinator.SetListener(listener)

	if err = b.Attach(ctx, coordinator); err != nil {
		return nil, fmt.Errorf("failed to attach to browser events: %w", err)
	}

	sessionID, err := coordinator.Authorize(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to start authorization: %w", err)
	}

	logger.Info(ctx, "Complete the challenge in the browser window")

	result, err := s.waitForResult(ctx, b, listener)
	if err != nil {
		return nil, fmt.Errorf("authorization %s failed: %w", sessionID, err)
	}

	return result, nil
}

// waitForResult waits until the session completes or cannot complete any more.
func (s *ServiceImpl) waitForResult(
	ctx context.Context,
	b browser.Browser,
	listener *sessionListener,
) (*threeds.Result, error) {
	timeout := s.cfg.ParsedAuthorizationTimeout
	if timeout <= 0 {
		timeout = config.DefaultAuthorizationTimeout
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case result := <-listener.results:
			return &result, nil
		case callbackURL := <-listener.callbacks:
			return nil, fmt.Errorf("%w: %s", ErrCallbackWithoutResult, callbackURL)
		case <-timer.C:
			return nil, fmt.Errorf("%w: waited for %v", ErrAuthorizationTimeout, timeout)
		case <-ticker.C:
			// Check if browser was closed.
			if !b.Alive(ctx) {
				return nil, ErrBrowserClosed
			}
		}
	}
}
