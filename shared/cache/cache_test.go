package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riku-k061/travel-backend/shared/cache"
)

func TestSlot_GetSetInvalidate(t *testing.T) {
	slot := cache.NewSlot[[]string]()

	_, ok := slot.Get()
	assert.False(t, ok)

	slot.Set([]string{"a", "b"})

	value, ok := slot.Get()
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, value)

	slot.Invalidate()

	value, ok = slot.Get()
	assert.False(t, ok)
	assert.Nil(t, value)
}

func TestSlot_InvalidateEmptySlot(t *testing.T) {
	slot := cache.NewSlot[int]()

	slot.Invalidate()

	_, ok := slot.Get()
	assert.False(t, ok)
}
