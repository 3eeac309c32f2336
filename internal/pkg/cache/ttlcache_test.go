package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLCache_SingleUse(t *testing.T) {
	c := New[string]()
	defer c.Close()

	c.Put("k", "seed", time.Minute)

	v, ok := c.Consume("k")
	assert.True(t, ok)
	assert.Equal(t, "seed", v)

	_, ok = c.Consume("k")
	assert.False(t, ok, "a second consume of the same key must fail")
}

func TestTTLCache_Expiry(t *testing.T) {
	c := New[string]()
	defer c.Close()

	c.Put("k", "seed", time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	_, ok := c.Consume("k")
	assert.False(t, ok, "an expired entry must not be consumable")
}

func TestTTLCache_MissingKey(t *testing.T) {
	c := New[string]()
	defer c.Close()

	_, ok := c.Consume("nope")
	assert.False(t, ok)
}
