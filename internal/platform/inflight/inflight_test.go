package inflight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker(t *testing.T) {
	t.Run("tracks overlapping calls", func(t *testing.T) {
		tr := New()
		assert.False(t, tr.Active("login"))

		first := tr.Begin("login")
		second := tr.Begin("login")
		assert.True(t, tr.Active("login"))

		first()
		assert.True(t, tr.Active("login"))
		second()
		assert.False(t, tr.Active("login"))
	})

	t.Run("done is safe to call twice", func(t *testing.T) {
		tr := New()
		done := tr.Begin("logout")
		other := tr.Begin("logout")

		done()
		done()
		assert.True(t, tr.Active("logout"))
		other()
		assert.False(t, tr.Active("logout"))
	})

	t.Run("operations are independent", func(t *testing.T) {
		tr := New()
		done := tr.Begin("promote")
		defer done()
		assert.False(t, tr.Active("unpromote"))
	})
}
