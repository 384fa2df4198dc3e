package authorize

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/d3s/internal/browser"
	mock_browser "github.com/oshokin/d3s/internal/browser/mocks"
	"github.com/oshokin/d3s/internal/config"
	"github.com/oshokin/d3s/internal/threeds"
)

const (
	testACSURL  = "https://acs.bank.test/pareq"
	testPageURL = "https://acs.bank.test/challenge"
)

// testConfig returns a validated configuration with short timings.
func testConfig() *config.Config {
	return &config.Config{
		CallbackURL:                config.DefaultCallbackURL,
		ParsedAuthorizationTimeout: 5 * time.Second,
		ParsedScanGracePeriod:      10 * time.Millisecond,
	}
}

// testHarness holds a service over a mocked browser.
type testHarness struct {
	service *ServiceImpl
	browser *mock_browser.MockBrowser

	mu      sync.Mutex
	handler threeds.EventHandler
	events  sync.WaitGroup
}

// newTestHarness creates a service whose browser records the attached event handler.
func newTestHarness(t *testing.T, cfg *config.Config) *testHarness {
	t.Helper()

	ctrl := gomock.NewController(t)
	h := &testHarness{browser: mock_browser.NewMockBrowser(ctrl)}

	h.service = NewService(cfg, func(context.Context, *config.Config) (browser.Browser, error) {
		return h.browser, nil
	})
	h.service.progressOutput = nil
	h.service.pollInterval = 5 * time.Millisecond

	h.browser.EXPECT().Attach(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, handler threeds.EventHandler) error {
			h.mu.Lock()
			defer h.mu.Unlock()

			h.handler = handler

			return nil
		}).AnyTimes()
	h.browser.EXPECT().Close(gomock.Any()).Times(1)

	t.Cleanup(h.events.Wait)

	return h
}

// onNavigate runs the page events the browser would produce after navigating.
func (h *testHarness) onNavigate(events func(ctx context.Context, handler threeds.EventHandler)) {
	h.browser.EXPECT().Navigate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) error {
			h.mu.Lock()
			handler := h.handler
			h.mu.Unlock()

			h.events.Add(1)

			go func() {
				defer h.events.Done()

				events(ctx, handler)
			}()

			return nil
		})
}

// TestNewService tests the NewService function.
func TestNewService(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	service := NewService(cfg, browser.NewFactory())

	assert.NotNil(t, service)
	assert.Equal(t, cfg, service.cfg)
	assert.NotNil(t, service.newBrowser)
	assert.Equal(t, browserPollInterval, service.pollInterval)
}

// TestServiceImpl_Authorize_FromMarkup tests a v1 result scanned from the page markup.
func TestServiceImpl_Authorize_FromMarkup(t *testing.T) {
	t.Parallel()

	h := newTestHarness(t, testConfig())

	h.browser.EXPECT().Alive(gomock.Any()).Return(true).AnyTimes()
	h.browser.EXPECT().CaptureMarkup(gomock.Any()).
		Return(`<input name="MD" value="MD123"><input name="PaRes" value="PARES789">`, nil)
	h.onNavigate(func(ctx context.Context, handler threeds.EventHandler) {
		handler.PageStarted(ctx, testPageURL)
		handler.ProgressChanged(ctx, 100)
		handler.PageVisible(ctx, testPageURL)
	})

	result, err := h.service.Authorize(context.Background(), threeds.Request{
		ACSURL: testACSURL,
		MD:     "MD123",
		PaReq:  "PAREQ456",
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, threeds.ModeV1, result.Mode)
	assert.Equal(t, "MD123", result.MD)
	assert.Equal(t, "PARES789", result.PaRes)
	assert.NotEmpty(t, result.SessionID)
	assert.False(t, result.Placeholder)
}

// TestServiceImpl_Authorize_FromCallbackBody tests a v2 result taken from the intercepted callback.
func TestServiceImpl_Authorize_FromCallbackBody(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.CallbackURL = "https://merchant.test/3ds"

	h := newTestHarness(t, cfg)

	h.browser.EXPECT().Alive(gomock.Any()).Return(true).AnyTimes()
	h.onNavigate(func(ctx context.Context, handler threeds.EventHandler) {
		handler.CallbackIntercepted(ctx, "https://merchant.test/3ds/return",
			url.Values{"cres": {"CRES1"}, "threeDSSessionData": {"DATA"}})
	})

	result, err := h.service.Authorize(context.Background(), threeds.Request{
		ACSURL:             testACSURL,
		CReq:               "CREQ",
		ThreeDSSessionData: "DATA",
	})
	require.NoError(t, err)

	assert.Equal(t, threeds.ModeV2, result.Mode)
	assert.Equal(t, "CRES1", result.CRes)
	assert.Equal(t, "DATA", result.ThreeDSSessionData)
}

// TestServiceImpl_Authorize_Placeholder tests the opt-in placeholder completion.
func TestServiceImpl_Authorize_Placeholder(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.CallbackPlaceholder = true

	h := newTestHarness(t, cfg)

	h.browser.EXPECT().Alive(gomock.Any()).Return(true).AnyTimes()
	h.onNavigate(func(ctx context.Context, handler threeds.EventHandler) {
		handler.PageVisible(ctx, "https://google.com/")
	})

	result, err := h.service.Authorize(context.Background(), threeds.Request{
		ACSURL:             testACSURL,
		CReq:               "CREQ",
		ThreeDSSessionData: "DATA",
	})
	require.NoError(t, err)

	assert.True(t, result.Placeholder)
	assert.Equal(t, "cRes", result.CRes)
	assert.Equal(t, "threeDSSessionData", result.ThreeDSSessionData)
}

// TestServiceImpl_Authorize_Failures tests the ways an authorization ends without a result.
func TestServiceImpl_Authorize_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		timeout     time.Duration
		alive       bool
		events      func(ctx context.Context, handler threeds.EventHandler)
		expectedErr error
	}{
		{
			name:  "callback without result",
			alive: true,
			events: func(ctx context.Context, handler threeds.EventHandler) {
				handler.PageFailed(ctx, -2, "net::ERR_NAME_NOT_RESOLVED", testPageURL)
				handler.PageVisible(ctx, "https://www.google.com/")
			},
			expectedErr: ErrCallbackWithoutResult,
		},
		{
			name:        "browser closed",
			alive:       false,
			events:      func(context.Context, threeds.EventHandler) {},
			expectedErr: ErrBrowserClosed,
		},
		{
			name:        "timeout",
			timeout:     20 * time.Millisecond,
			alive:       true,
			events:      func(context.Context, threeds.EventHandler) {},
			expectedErr: ErrAuthorizationTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig()
			if tt.timeout > 0 {
				cfg.ParsedAuthorizationTimeout = tt.timeout
			}

			h := newTestHarness(t, cfg)

			h.browser.EXPECT().Alive(gomock.Any()).Return(tt.alive).AnyTimes()
			h.onNavigate(tt.events)

			result, err := h.service.Authorize(context.Background(), threeds.Request{
				ACSURL:             testACSURL,
				CReq:               "CREQ",
				ThreeDSSessionData: "DATA",
			})
			require.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, result)
		})
	}
}

// TestServiceImpl_Authorize_ContextCanceled tests cancellation while waiting.
func TestServiceImpl_Authorize_ContextCanceled(t *testing.T) {
	t.Parallel()

	h := newTestHarness(t, testConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h.browser.EXPECT().Alive(gomock.Any()).Return(true).AnyTimes()
	h.onNavigate(func(context.Context, threeds.EventHandler) { cancel() })

	_, err := h.service.Authorize(ctx, threeds.Request{ACSURL: testACSURL, PaReq: "PAREQ"})
	require.ErrorIs(t, err, context.Canceled)
}

// TestServiceImpl_Authorize_InvalidRequest tests that an unsendable request never navigates.
func TestServiceImpl_Authorize_InvalidRequest(t *testing.T) {
	t.Parallel()

	h := newTestHarness(t, testConfig())

	_, err := h.service.Authorize(context.Background(), threeds.Request{ACSURL: "not a url", PaReq: "PAREQ"})
	require.ErrorIs(t, err, threeds.ErrInvalidACSURL)
	assert.Contains(t, err.Error(), "failed to start authorization")
}

// TestServiceImpl_Authorize_BrowserErrors tests browser setup failures.
func TestServiceImpl_Authorize_BrowserErrors(t *testing.T) {
	t.Parallel()

	errLaunch := errors.New("chrome not found")

	t.Run("launch failure", func(t *testing.T) {
		t.Parallel()

		service := NewService(testConfig(), func(context.Context, *config.Config) (browser.Browser, error) {
			return nil, errLaunch
		})

		_, err := service.Authorize(context.Background(), threeds.Request{ACSURL: testACSURL, PaReq: "PAREQ"})
		require.ErrorIs(t, err, errLaunch)
		assert.Contains(t, err.Error(), "failed to initialize browser")
	})

	t.Run("attach failure", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		b := mock_browser.NewMockBrowser(ctrl)

		b.EXPECT().Attach(gomock.Any(), gomock.Any()).Return(browser.ErrAlreadyAttached)
		b.EXPECT().Close(gomock.Any())

		service := NewService(testConfig(), func(context.Context, *config.Config) (browser.Browser, error) {
			return b, nil
		})

		_, err := service.Authorize(context.Background(), threeds.Request{ACSURL: testACSURL, PaReq: "PAREQ"})
		require.ErrorIs(t, err, browser.ErrAlreadyAttached)
	})
}

// TestSentinelErrors tests that all sentinel errors are defined and have proper messages.
func TestSentinelErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		err   error
		wants string
	}{
		{
			name:  "ErrAuthorizationTimeout",
			err:   ErrAuthorizationTimeout,
			wants: "authorization timeout exceeded",
		},
		{
			name:  "ErrBrowserClosed",
			err:   ErrBrowserClosed,
			wants: "browser was closed by user",
		},
		{
			name:  "ErrCallbackWithoutResult",
			err:   ErrCallbackWithoutResult,
			wants: "callback page reached without authorization result",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Error(t, tt.err)
			assert.Equal(t, tt.wants, tt.err.Error())
		})
	}
}
