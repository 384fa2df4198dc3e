package browser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/d3s/internal/config"
	mock_threeds "github.com/oshokin/d3s/internal/threeds/mocks"
)

// TestRodBrowser_WithoutPage tests that a browser without a page fails safely.
func TestRodBrowser_WithoutPage(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	handler := mock_threeds.NewMockEventHandler(ctrl)

	b := &RodBrowser{cfg: &config.Config{}}
	ctx := context.Background()

	require.ErrorIs(t, b.Attach(ctx, handler), ErrNotAttached)
	require.ErrorIs(t, b.Navigate(ctx, "https://acs.bank.test"), ErrNotAttached)

	markup, err := b.CaptureMarkup(ctx)
	require.ErrorIs(t, err, ErrNotAttached)
	assert.Empty(t, markup)

	assert.False(t, b.Alive(ctx))

	assert.NotPanics(t, func() {
		b.Close(ctx)
		b.Close(ctx)
	})
}

// TestNewFactory tests that the factory is usable as a Browser source.
func TestNewFactory(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, NewFactory())
}

// TestConstants tests the browser constants.
func TestConstants(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 500, int(browserCleanupDelay.Milliseconds()))
	assert.Equal(t, "d3s-profile-*", tempProfilePattern)
	assert.Equal(t, 10, progressNavigationStarted)
	assert.Equal(t, 100, progressLoaded)
}
