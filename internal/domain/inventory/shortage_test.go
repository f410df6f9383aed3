package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortfall(t *testing.T) {
	cases := []struct {
		needed, onHand, want int
	}{
		{needed: 5, onHand: 2, want: 3},
		{needed: 2, onHand: 5, want: 0},
		{needed: 3, onHand: 3, want: 0},
		{needed: 0, onHand: 0, want: 0},
		{needed: 4, onHand: 0, want: 4},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Shortfall(c.needed, c.onHand), "needed=%d onHand=%d", c.needed, c.onHand)
	}
}

func TestCanWithdraw(t *testing.T) {
	assert.True(t, CanWithdraw(3, 3))
	assert.False(t, CanWithdraw(4, 3))
	assert.False(t, CanWithdraw(0, 3))
}
