package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/upr-lab/riskwise/pkg/cli/config"
)

func TestGeminiConfigure(t *testing.T) {
	t.Run("returns nil client without a project", func(t *testing.T) {
		client, err := config.NewGeminiForTest("", "us-central1").Configure(t.Context())
		gt.NoError(t, err).Required()
		gt.Value(t, client).Nil()
	})
}
