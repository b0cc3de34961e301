package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fyyur/internal/logger"
)

func TestMissingDirectory(t *testing.T) {
	r := NewRunner(Options{Dir: "./does-not-exist", DSN: "postgres://localhost/fyyur"}, logger.Discard())

	assert.ErrorContains(t, r.Up(), "migrations directory does not exist")
	_, _, err := r.Version()
	assert.Error(t, err)
	assert.NoError(t, r.Close(), "closing an uninitialised runner is a no-op")
}
