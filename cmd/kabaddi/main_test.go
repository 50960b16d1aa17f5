package main

import (
	"context"
	"testing"

	"github.com/a-marczewski/kabaddibot/internal/app"
	"github.com/a-marczewski/kabaddibot/internal/config"
	"github.com/a-marczewski/kabaddibot/internal/logging"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAppRunnerSetsContext(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	a, err := app.New(cfg, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	called := false
	run := newAppRunner(a, func(got *app.App, cmd *cobra.Command, args []string) {
		called = true
		assert.Same(t, a, got)
		assert.Same(t, cfg, config.FromContext(cmd.Context()))
		logger, ok := logging.LoggerFromContext(cmd.Context())
		require.True(t, ok)
		assert.Same(t, a.Core.Logger, logger)
		assert.Equal(t, []string{"x"}, args)
	})

	cmd := &cobra.Command{Use: "ask"}
	cmd.SetContext(context.Background())
	run(cmd, []string{"x"})
	assert.True(t, called)
}
