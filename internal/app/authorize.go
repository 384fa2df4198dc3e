package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/oshokin/d3s/internal/browser"
	"github.com/oshokin/d3s/internal/config"
	"github.com/oshokin/d3s/internal/logger"
	"github.com/oshokin/d3s/internal/service/authorize"
	"github.com/oshokin/d3s/internal/threeds"
)

// ExecuteAuthorizeCommand runs one authorization in a browser and writes the result.
func ExecuteAuthorizeCommand(ctx context.Context, cfg *config.Config, req threeds.Request) {
	s := authorize.NewService(cfg, browser.NewFactory())

	if err := runAuthorization(ctx, cfg, s, req, os.Stdout, time.Now); err != nil {
		logger.Fatalf(ctx, "Authorization failed: %v", err)
	}
}

// runAuthorization performs the authorization and writes the result document.
func runAuthorization(
	ctx context.Context,
	cfg *config.Config,
	s authorize.Service,
	req threeds.Request,
	stdout io.Writer,
	now func() time.Time,
) error {
	result, err := s.Authorize(ctx, req)
	if err != nil {
		return err
	}

	doc, err := NewResultDocument(result, now())
	if err != nil {
		return err
	}

	if err = WriteResult(cfg, doc, stdout); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	if cfg.OutputPath != "" {
		logger.Infof(ctx, "Result saved to %s", cfg.OutputPath)
	}

	if doc.Placeholder {
		logger.Warn(ctx, "Callback page was reached without a result, placeholder values were written")
	}

	return nil
}
