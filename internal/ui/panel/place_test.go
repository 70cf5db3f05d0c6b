package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlace(t *testing.T) {
	tests := []struct {
		name string
		bg   string
		fg   string
		x, y int
		want string
	}{
		{
			name: "inside",
			bg:   "aaaaa\nbbbbb\nccccc",
			fg:   "XY",
			x:    1, y: 1,
			want: "aaaaa\nbXYbb\nccccc",
		},
		{
			name: "multi-row",
			bg:   "aaaa\nbbbb\ncccc",
			fg:   "12\n34",
			x:    2, y: 1,
			want: "aaaa\nbb12\ncc34",
		},
		{
			name: "rows below bg dropped",
			bg:   "aaaa\nbbbb",
			fg:   "12\n34",
			x:    0, y: 1,
			want: "aaaa\n12bb",
		},
		{
			name: "short row padded",
			bg:   "a",
			fg:   "Z",
			x:    3, y: 0,
			want: "a  Z",
		},
		{
			name: "empty fg",
			bg:   "abc",
			fg:   "",
			x:    1, y: 0,
			want: "abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Place(tt.bg, tt.fg, tt.x, tt.y))
		})
	}
}

func TestOrigin(t *testing.T) {
	tests := []struct {
		name   string
		ax, ay float64
		wantX  int
		wantY  int
	}{
		{"centred under anchor", 40, 10, 30, 10},
		{"clamped to left margin", 5, 3, 2, 3},
		{"clamped to right edge", 79, 3, 58, 3},
		{"lifted to fit bottom", 40, 22, 30, 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := Origin(tt.ax, tt.ay, 20, 6, 80, 24, 2)
			assert.Equal(t, tt.wantX, x)
			assert.Equal(t, tt.wantY, y)
		})
	}
}
