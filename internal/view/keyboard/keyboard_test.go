package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationButtons(t *testing.T) {
	assert.Nil(t, PaginationButtons("p:", 0, 1))

	first := PaginationButtons("p:", 0, 3)
	assert.Len(t, first, 2)
	assert.Equal(t, NoopCallback, first[0].CallbackData)
	assert.Equal(t, "p:1", first[1].CallbackData)

	middle := PaginationButtons("p:", 1, 3)
	assert.Len(t, middle, 3)
	assert.Equal(t, "p:0", middle[0].CallbackData)
	assert.Equal(t, "📄 2/3", middle[1].Text)

	last := PaginationButtons("p:", 2, 3)
	assert.Len(t, last, 2)
	assert.Equal(t, "p:1", last[0].CallbackData)
}

func TestPage(t *testing.T) {
	tests := []struct {
		name                      string
		total, size, page         int
		start, end, current, pages int
	}{
		{"empty", 0, 5, 3, 0, 0, 0, 1},
		{"first", 12, 5, 0, 0, 5, 0, 3},
		{"last partial", 12, 5, 2, 10, 12, 2, 3},
		{"beyond last", 12, 5, 9, 10, 12, 2, 3},
		{"negative", 12, 5, -1, 0, 5, 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, current, pages := Page(tt.total, tt.size, tt.page)
			assert.Equal(t, []int{tt.start, tt.end, tt.current, tt.pages}, []int{start, end, current, pages})
		})
	}
}

func TestGrid(t *testing.T) {
	kb := NewBuilder().Grid(2, Button("1", "a"), Button("2", "b"), Button("3", "c")).Build()
	assert.Len(t, kb.InlineKeyboard, 2)
	assert.Len(t, kb.InlineKeyboard[1], 1)
}
