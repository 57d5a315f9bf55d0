package specparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// at builds a layout line with each text starting at the given rune column.
func at(parts ...any) string {
	var line []rune
	for i := 0; i+1 < len(parts); i += 2 {
		col := parts[i].(int)
		for len(line) < col {
			line = append(line, ' ')
		}
		line = append(line, []rune(parts[i+1].(string))...)
	}
	return string(line)
}

func TestSplitFields(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []field
	}{
		{
			name: "empty",
			line: "   ",
			want: nil,
		},
		{
			name: "single spaces stay inside a field",
			line: "  1  Труба ПЭ  12",
			want: []field{
				{start: 2, end: 3, text: "1"},
				{start: 5, end: 13, text: "Труба ПЭ"},
				{start: 15, end: 17, text: "12"},
			},
		},
		{
			name: "tab separates",
			line: "a\tb c",
			want: []field{
				{start: 0, end: 1, text: "a"},
				{start: 2, end: 5, text: "b c"},
			},
		},
		{
			name: "non-breaking spaces count as spaces",
			line: "шт\u00a0\u00a0120",
			want: []field{
				{start: 0, end: 2, text: "шт"},
				{start: 4, end: 7, text: "120"},
			},
		},
		{
			name: "trailing spaces",
			line: "ab   ",
			want: []field{{start: 0, end: 2, text: "ab"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitFields(tt.line))
		})
	}
}

func TestNearestColumn(t *testing.T) {
	cols := []column{{start: 0, end: 4}, {start: 10, end: 20}}

	idx, ok := nearestColumn(cols, field{start: 12, end: 30}, 0)
	assert.True(t, ok)
	assert.Equal(t, 1, idx, "overlap wins")

	idx, ok = nearestColumn(cols, field{start: 5, end: 7}, 0)
	assert.True(t, ok)
	assert.Equal(t, 0, idx, "nearest centre")

	idx, ok = nearestColumn(cols, field{start: 5, end: 7}, 3)
	assert.False(t, ok)
	assert.Equal(t, 0, idx)

	_, ok = nearestColumn(nil, field{start: 5, end: 7}, 0)
	assert.False(t, ok)
}

func TestIsNumberingRow(t *testing.T) {
	assert.True(t, isNumberingRow(splitFields("1  2  3  4")))
	assert.False(t, isNumberingRow(splitFields("1  2")))
	assert.False(t, isNumberingRow(splitFields("1  Труба  3")))
}

func TestSquash(t *testing.T) {
	assert.Equal(t, "Труба ПЭ100 SDR17", squash("  Труба   ПЭ100\tSDR17 "))
	assert.Equal(t, "", squash("   "))
}

func TestAt(t *testing.T) {
	assert.Equal(t, "1   Труба", at(0, "1", 4, "Труба"))
}
