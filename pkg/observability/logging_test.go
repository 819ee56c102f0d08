package observability_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/pkg/observability"
)

func TestInitLogger(t *testing.T) {
	for _, format := range []string{"json", "text", ""} {
		logger := observability.InitLogger(observability.LogConfig{
			Level:  "debug",
			Format: format,
		})
		require.NotNil(t, logger, "format %q", format)
	}
}

func TestInitLogger_UnknownLevelDefaultsToInfo(t *testing.T) {
	logger := observability.InitLogger(observability.LogConfig{Level: "verbose"})
	require.NotNil(t, logger)
}
