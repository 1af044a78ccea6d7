package observability

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestInitLogger_Level(t *testing.T) {
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	})

	t.Run("applies the configured level", func(t *testing.T) {
		InitLogger("patientflow-queue", "production", "debug")
		assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		InitLogger("patientflow-queue", "production", "chatty")
		assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	})
}
