package browser

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/drclip/internal/config"
)

func TestOptionsFromConfig(t *testing.T) {
	opts := OptionsFromConfig(config.BrowserConfig{
		Headless:  false,
		Bin:       "/usr/bin/chromium",
		NoSandbox: true,
		Timeout:   12 * time.Second,
	})

	assert.False(t, opts.Headless)
	assert.Equal(t, "/usr/bin/chromium", opts.Bin)
	assert.True(t, opts.NoSandbox)
	assert.Equal(t, 12*time.Second, opts.Timeout)
}

func TestSession_CloseIsIdempotent(t *testing.T) {
	var s *Session
	assert.NoError(t, s.Close())

	s = &Session{closed: true}
	assert.NoError(t, s.Close())
}

func TestSession_OpenPageAfterClose(t *testing.T) {
	s := &Session{closed: true}

	_, err := s.OpenPage(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session closed")
}

func TestPage_SleepHonorsContext(t *testing.T) {
	p := &Page{}

	require.NoError(t, p.Sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	err := p.Sleep(ctx, time.Hour)
	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}
