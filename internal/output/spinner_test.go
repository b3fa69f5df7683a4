package output

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test binaries never run attached to a terminal, so these cover the
// direct-execution path.
func TestRunWithSpinner_NoTTY(t *testing.T) {
	if IsTTY() {
		t.Skip("stdout is a terminal")
	}

	t.Run("runs the action", func(t *testing.T) {
		ran := false
		err := RunWithSpinner(context.Background(), "working", func() error {
			ran = true
			return nil
		})
		assert.NoError(t, err)
		assert.True(t, ran)
	})

	t.Run("returns the action error", func(t *testing.T) {
		boom := errors.New("boom")
		err := RunWithSpinner(context.Background(), "working", func() error {
			return boom
		})
		assert.ErrorIs(t, err, boom)
	})
}
