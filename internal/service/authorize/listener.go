package authorize

import (
	"context"
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"

	"github.com/oshokin/d3s/internal/logger"
	"github.com/oshokin/d3s/internal/threeds"
	"github.com/oshokin/d3s/internal/utils"
)

// loggedValueLength is the number of result characters shown in logs.
const loggedValueLength = 16

// sessionListener logs session notifications, renders the load progress
// and hands the outcome over to the waiting service.
type sessionListener struct {
	output io.Writer

	mu  sync.Mutex
	bar *progressbar.ProgressBar

	results   chan threeds.Result
	callbacks chan string
}

func newSessionListener(output io.Writer) *sessionListener {
	return &sessionListener{
		output:    output,
		results:   make(chan threeds.Result, 1),
		callbacks: make(chan string, 1),
	}
}

// OnAuthorizationStarted implements threeds.Listener.
func (l *sessionListener) OnAuthorizationStarted(ctx context.Context, sessionID string) {
	logger.Infof(ctx, "Authorization session %s started", sessionID)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.output == nil {
		return
	}

	l.bar = progressbar.NewOptions(
		100,
		progressbar.OptionSetWriter(l.output),
		progressbar.OptionSetDescription("Loading ACS page"),
		progressbar.OptionClearOnFinish(),
	)
}

// OnProgressChanged implements threeds.Listener.
func (l *sessionListener) OnProgressChanged(ctx context.Context, percent int) {
	logger.Debugf(ctx, "Page load progress: %d%%", percent)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.bar == nil {
		return
	}

	if err := l.bar.Set(utils.ClampPercent(percent)); err != nil {
		logger.Debugf(ctx, "Failed to update progress bar: %v", err)
	}
}

// OnPageLoadError implements threeds.Listener.
func (l *sessionListener) OnPageLoadError(ctx context.Context, code int, description, rawURL string) {
	logger.Warnf(ctx, "Failed to load %s: %s (code %d)", rawURL, description, code)
}

// OnCompletedV1 implements threeds.Listener.
func (l *sessionListener) OnCompletedV1(ctx context.Context, md, paRes string) {
	logger.Infof(ctx, "3-D Secure v1 authorization completed (MD: %s, PaRes: %s)",
		utils.Abbreviate(md, loggedValueLength), utils.Abbreviate(paRes, loggedValueLength))
}

// OnCompletedV2 implements threeds.Listener.
func (l *sessionListener) OnCompletedV2(ctx context.Context, cRes, sessionData string) {
	logger.Infof(ctx, "3-D Secure v2 authorization completed (CRes: %s, threeDSSessionData: %s)",
		utils.Abbreviate(cRes, loggedValueLength), utils.Abbreviate(sessionData, loggedValueLength))
}

// OnResult implements threeds.ResultListener.
func (l *sessionListener) OnResult(ctx context.Context, result threeds.Result) {
	if result.Placeholder {
		logger.Warn(ctx, "Result holds placeholder values, the real CRes was not captured")
	}

	select {
	case l.results <- result:
	default:
		logger.Debug(ctx, "Result dropped, an earlier one is pending")
	}
}

// OnCallbackWithoutResult implements threeds.CallbackListener.
func (l *sessionListener) OnCallbackWithoutResult(ctx context.Context, rawURL string) {
	select {
	case l.callbacks <- rawURL:
	default:
		logger.Debugf(ctx, "Callback notification for %s dropped", rawURL)
	}
}

// finish completes the progress bar.
func (l *sessionListener) finish() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.bar == nil {
		return
	}

	_ = l.bar.Finish()
	l.bar = nil
}
