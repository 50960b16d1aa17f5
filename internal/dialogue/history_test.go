package dialogue

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryCapacity(t *testing.T) {
	tests := []struct {
		capacity int
		expected int
	}{
		{0, MaxHistory},
		{-1, MaxHistory},
		{3, 3},
		{MaxHistory, MaxHistory},
		{50, MaxHistory},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.capacity), func(t *testing.T) {
			assert.Equal(t, tt.expected, NewHistory(tt.capacity).Cap())
		})
	}
}

func TestHistoryWraps(t *testing.T) {
	h := NewHistory(3)
	assert.Nil(t, h.Items())

	h.Add("a")
	h.Add("b")
	assert.Equal(t, []string{"a", "b"}, h.Items())

	h.Add("c")
	h.Add("d")
	h.Add("e")
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, []string{"c", "d", "e"}, h.Items())
	assert.Equal(t, []string{"d", "e"}, h.Recent(2))
	assert.Equal(t, []string{"c", "d", "e"}, h.Recent(10))
	assert.Nil(t, h.Recent(0))
}

func TestHistoryNeverExceedsMax(t *testing.T) {
	h := NewHistory(MaxHistory)
	for i := 0; i < 25; i++ {
		h.Add(fmt.Sprintf("q%d", i))
		assert.LessOrEqual(t, h.Len(), MaxHistory)
	}
	items := h.Items()
	assert.Equal(t, "q15", items[0])
	assert.Equal(t, "q24", items[len(items)-1])
}
